package saver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"go.uber.org/zap"
)

// DirSaver stores downloaded archives in a directory. An existing file is
// never overwritten; a numbered name is chosen instead.
type DirSaver struct {
	dir string
}

func CreateDirSaver(dir string) *DirSaver {
	if dir == "" {
		dir = "."
	}
	return &DirSaver{dir: dir}
}

func (s *DirSaver) Save(ctx context.Context, name string, data []byte) (string, error) {
	const funcName = "DirSaver.Save"

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid archive name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path, err := s.write(name, data)
	if err != nil {
		logger.Error("failed to save archive",
			zap.String("function", funcName),
			zap.String("name", name),
			zap.Error(err),
		)
		return "", err
	}

	logger.Info("archive saved",
		zap.String("function", funcName),
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	return path, nil
}

// write creates the first free variant of name: a.zip, a (1).zip, ...
func (s *DirSaver) write(name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(s.dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write %s: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close %s: %w", candidate, err)
		}

		return path, nil
	}

	return "", fmt.Errorf("save %s: too many existing copies", name)
}
