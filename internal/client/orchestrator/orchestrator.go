package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/supchaser/pdf-image-extractor/internal/app"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/client/progress"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"github.com/supchaser/pdf-image-extractor/internal/utils/validate"
	"go.uber.org/zap"
)

type Resolver interface {
	ResolveAll(refs []string) []string
}

type Options struct {
	MaxFileSize      int64
	ProgressInterval time.Duration
	ProgressStep     int
	ProgressCap      int
	// GraceDelay is how long 100% stays visible before the batch settles.
	GraceDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxFileSize:      validate.DefaultMaxFileSize,
		ProgressInterval: time.Second,
		ProgressStep:     10,
		ProgressCap:      90,
		GraceDelay:       10 * time.Millisecond,
	}
}

type listener struct {
	id int
	fn func(models.OperationState)
}

// Orchestrator drives extraction batches against the service and owns the
// resulting state. Only the latest batch can change what is displayed.
type Orchestrator struct {
	transport app.Transport
	resolver  Resolver
	saver     app.ArchiveSaver
	notifier  app.Notifier
	opts      Options

	mu           sync.Mutex
	machine      *machine
	ticker       *progress.Ticker
	downloads    int
	listeners    []listener
	nextListener int
}

func New(transport app.Transport, resolver Resolver, saver app.ArchiveSaver, notifier app.Notifier, opts Options) *Orchestrator {
	defaults := DefaultOptions()
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = defaults.MaxFileSize
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = defaults.ProgressInterval
	}
	if opts.ProgressStep <= 0 {
		opts.ProgressStep = defaults.ProgressStep
	}
	if opts.ProgressCap <= 0 || opts.ProgressCap > 100 {
		opts.ProgressCap = defaults.ProgressCap
	}
	if opts.GraceDelay < 0 {
		opts.GraceDelay = 0
	}

	return &Orchestrator{
		transport: transport,
		resolver:  resolver,
		saver:     saver,
		notifier:  notifier,
		opts:      opts,
		machine:   newMachine(),
	}
}

// State returns a snapshot of the current batch.
func (o *Orchestrator) State() models.OperationState {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change. Listeners
// run with the orchestrator locked and must not call back into it. The
// returned func removes the listener.
func (o *Orchestrator) Subscribe(fn func(models.OperationState)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextListener++
	id := o.nextListener
	o.listeners = append(o.listeners, listener{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		for i, l := range o.listeners {
			if l.id == id {
				o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// RunExtraction starts a preview extraction of files and returns at once. The
// returned channel is closed when this batch has settled, whether its outcome
// was applied or dropped because a newer batch superseded it.
func (o *Orchestrator) RunExtraction(ctx context.Context, files []models.FileHandle) <-chan struct{} {
	const funcName = "Orchestrator.RunExtraction"
	done := make(chan struct{})
	batch := &models.Batch{Files: files}

	o.mu.Lock()
	seq := o.machine.begin(batch.Names())
	previous := o.ticker
	o.ticker = nil
	o.publishLocked()
	o.mu.Unlock()

	// outside the lock: a pending tick waits on it
	previous.Stop()

	logger.Debug("extraction started",
		zap.String("function", funcName),
		zap.Uint64("seq", seq),
		zap.Strings("files", batch.Names()),
	)

	if err := validate.ValidateBatch(files, o.opts.MaxFileSize); err != nil {
		o.settleFailure(seq, err)
		close(done)
		return done
	}

	o.mu.Lock()
	if err := o.machine.validated(seq); err != nil {
		o.mu.Unlock()
		close(done)
		return done
	}
	ticker := progress.Start(o.opts.ProgressInterval, o.opts.ProgressStep, o.opts.ProgressCap, func(value int) {
		o.update(func(m *machine) error { return m.progress(seq, value) })
	})
	o.ticker = ticker
	o.publishLocked()
	o.mu.Unlock()

	go func() {
		defer close(done)

		result, err := o.transport.Submit(ctx, models.ExtractionRequest{Batch: batch, Mode: models.ModePreview})

		ticker.Stop()
		o.update(func(m *machine) error { return m.progress(seq, 100) })
		time.Sleep(o.opts.GraceDelay)

		if err != nil {
			o.settleFailure(seq, err)
			return
		}

		imageURLs := o.resolver.ResolveAll(result.ImageRefs)
		if o.update(func(m *machine) error { return m.succeed(seq, result, imageURLs) }) {
			logger.Info("extraction succeeded",
				zap.String("function", funcName),
				zap.Uint64("seq", seq),
				zap.Int("image_count", result.ImageCount),
			)
		} else {
			logger.Debug("dropped result of superseded extraction",
				zap.String("function", funcName),
				zap.Uint64("seq", seq),
			)
		}
	}()

	return done
}

// TriggerDownload extracts files in archive mode and saves the archive as
// extracted_images.zip. It does not change the extraction phase.
func (o *Orchestrator) TriggerDownload(ctx context.Context, files []models.FileHandle) (string, error) {
	return o.download(ctx, files, models.ArchiveName)
}

// TriggerDocumentDownload saves the images of a single document as
// {name}_images.zip.
func (o *Orchestrator) TriggerDocumentDownload(ctx context.Context, file models.FileHandle) (string, error) {
	if file == nil {
		return o.download(ctx, nil, models.ArchiveName)
	}
	return o.download(ctx, []models.FileHandle{file}, DocumentArchiveName(file.Name()))
}

func DocumentArchiveName(name string) string {
	name = filepath.Base(name)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".pdf") {
		name = strings.TrimSuffix(name, ext)
	}
	return name + "_images.zip"
}

func (o *Orchestrator) download(ctx context.Context, files []models.FileHandle, archiveName string) (string, error) {
	const funcName = "Orchestrator.download"

	if err := validate.ValidateBatch(files, o.opts.MaxFileSize); err != nil {
		o.notify(models.NoticeError, errs.Message(err))
		return "", err
	}

	o.setDownloading(1)
	defer o.setDownloading(-1)

	result, err := o.transport.Submit(ctx, models.ExtractionRequest{
		Batch: &models.Batch{Files: files},
		Mode:  models.ModeArchive,
	})
	if err != nil {
		logger.Error("archive download failed",
			zap.String("function", funcName),
			zap.String("archive", archiveName),
			zap.Error(err),
		)
		o.notify(models.NoticeError, errs.Message(err))
		return "", err
	}

	path, err := o.saver.Save(ctx, archiveName, result.Archive)
	if err != nil {
		logger.Error("failed to save archive",
			zap.String("function", funcName),
			zap.String("archive", archiveName),
			zap.Error(err),
		)
		o.notify(models.NoticeError, fmt.Sprintf("Failed to save %s: %s", archiveName, errs.Message(err)))
		return "", err
	}

	o.notify(models.NoticeInfo, fmt.Sprintf("Downloaded %d images to %s", result.ImageCount, path))

	return path, nil
}

// Reset returns to Idle. It is refused while a batch is in flight.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.machine.reset(); err != nil {
		return err
	}
	o.publishLocked()

	return nil
}

// update applies a transition and publishes it; it reports whether the
// transition was accepted.
func (o *Orchestrator) update(transition func(m *machine) error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := transition(o.machine); err != nil {
		return false
	}
	o.publishLocked()

	return true
}

func (o *Orchestrator) settleFailure(seq uint64, err error) {
	const funcName = "Orchestrator.settleFailure"

	if !o.update(func(m *machine) error { return m.fail(seq, err) }) {
		return
	}

	logger.Warn("extraction failed",
		zap.String("function", funcName),
		zap.Uint64("seq", seq),
		zap.Error(err),
	)
	o.notify(models.NoticeError, errs.Message(err))
}

func (o *Orchestrator) setDownloading(delta int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.downloads += delta
	o.machine.setDownloading(o.downloads > 0)
	o.publishLocked()
}

func (o *Orchestrator) snapshotLocked() models.OperationState {
	return o.machine.snapshot()
}

func (o *Orchestrator) publishLocked() {
	state := o.snapshotLocked()
	for _, l := range o.listeners {
		l.fn(state)
	}
}

func (o *Orchestrator) notify(level models.NoticeLevel, message string) {
	if o.notifier == nil {
		return
	}
	o.notifier.Notify(level, message)
}
