package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// UI writes user facing output. Notices go to stderr so stdout stays usable
// for piping image locations.
type UI struct {
	out io.Writer
	err io.Writer

	mu       sync.Mutex
	progress *mpb.Progress
	bar      *mpb.Bar
}

func NewUI(noColor bool) *UI {
	if noColor {
		color.NoColor = true
	}
	return &UI{
		out: os.Stdout,
		err: os.Stderr,
	}
}

func (ui *UI) Notify(level models.NoticeLevel, message string) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	ui.finishBar(false)
	switch level {
	case models.NoticeError:
		color.New(color.FgRed).Fprintf(ui.err, "✗ %s\n", message)
	default:
		color.New(color.FgGreen).Fprintf(ui.err, "✓ %s\n", message)
	}
}

func (ui *UI) Info(format string, args ...any) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	ui.finishBar(false)
	color.New(color.FgCyan).Fprintf(ui.err, "ℹ %s\n", fmt.Sprintf(format, args...))
}

// Render follows orchestrator state. It only draws the progress bar; the
// outcome is printed by the command once the batch settles.
func (ui *UI) Render(state models.OperationState) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	switch state.Phase {
	case models.PhaseValidating:
		ui.finishBar(false)
	case models.PhaseSubmitting:
		if ui.bar == nil {
			name := fmt.Sprintf("Extracting images from %d file(s)", len(state.Files))
			ui.progress = mpb.New(mpb.WithOutput(ui.err), mpb.WithWidth(40))
			ui.bar = ui.progress.AddBar(100,
				mpb.PrependDecorators(
					decor.Name(color.BlueString("→ "+name), decor.WC{C: decor.DSyncSpaceR}),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
			)
		}
		ui.bar.SetCurrent(int64(state.Progress))
	case models.PhaseSucceeded:
		ui.finishBar(true)
	default:
		ui.finishBar(false)
	}
}

func (ui *UI) Result(state models.OperationState) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	ui.finishBar(false)
	count := state.DisplayedCount()
	if count == 0 {
		color.New(color.FgYellow).Fprintf(ui.err, "⚠ No images found in %d file(s)\n", len(state.Files))
		return
	}

	color.New(color.FgGreen).Fprintf(ui.err, "✓ Extracted %d images from %d file(s)\n", count, len(state.Files))
	for _, u := range state.ImageURLs {
		fmt.Fprintln(ui.out, u)
	}
}

func (ui *UI) Records(records []models.ImageRecord) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	bold := color.New(color.FgCyan, color.Bold)
	for _, r := range records {
		bold.Fprintf(ui.out, "%-28s", r.ID)
		fmt.Fprintf(ui.out, " %s\n", r.URL)
	}
}

// finishBar completes or drops the active bar and waits for its last frame.
func (ui *UI) finishBar(complete bool) {
	if ui.bar == nil {
		return
	}
	if complete {
		ui.bar.SetCurrent(100)
	} else {
		ui.bar.Abort(false)
	}
	ui.progress.Wait()
	ui.bar = nil
	ui.progress = nil
}
