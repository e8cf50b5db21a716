package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// LocalFile is a file on disk whose content type is sniffed from its bytes.
type LocalFile struct {
	path        string
	name        string
	size        int64
	contentType string
}

func Open(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(path); err == nil {
		contentType = mt.String()
	}

	return &LocalFile{
		path:        path,
		name:        filepath.Base(path),
		size:        info.Size(),
		contentType: contentType,
	}, nil
}

func OpenAll(paths []string) ([]*LocalFile, error) {
	result := make([]*LocalFile, 0, len(paths))
	for _, path := range paths {
		f, err := Open(path)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}

	return result, nil
}

func (f *LocalFile) Name() string        { return f.name }
func (f *LocalFile) Size() int64         { return f.size }
func (f *LocalFile) ContentType() string { return f.contentType }
func (f *LocalFile) Path() string        { return f.path }

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
