package orchestrator

import (
	"errors"
	"fmt"

	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
)

var errStale = errors.New("update belongs to a superseded batch")

// machine holds the lifecycle of the latest batch. It is not safe for
// concurrent use; the orchestrator serialises access.
type machine struct {
	state models.OperationState
	seq   uint64
}

func newMachine() *machine {
	return &machine{
		state: models.OperationState{Phase: models.PhaseIdle},
	}
}

func (m *machine) snapshot() models.OperationState {
	return m.state
}

func (m *machine) check(seq uint64, from ...models.Phase) error {
	if seq != m.seq {
		return errStale
	}
	for _, p := range from {
		if m.state.Phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalidTransition, m.state.Phase)
}

// begin starts a new batch. A batch still in flight is superseded: its
// sequence number goes stale and its later updates are dropped.
func (m *machine) begin(files []string) uint64 {
	m.seq++
	m.state = models.OperationState{
		Phase:       models.PhaseValidating,
		Seq:         m.seq,
		Files:       files,
		Downloading: m.state.Downloading,
	}
	return m.seq
}

func (m *machine) validated(seq uint64) error {
	if err := m.check(seq, models.PhaseValidating); err != nil {
		return err
	}
	m.state.Phase = models.PhaseSubmitting
	m.state.Progress = 0
	return nil
}

// progress only moves forward.
func (m *machine) progress(seq uint64, value int) error {
	if err := m.check(seq, models.PhaseSubmitting); err != nil {
		return err
	}
	value = min(value, 100)
	if value > m.state.Progress {
		m.state.Progress = value
	}
	return nil
}

func (m *machine) succeed(seq uint64, result *models.ExtractionResult, imageURLs []string) error {
	if err := m.check(seq, models.PhaseSubmitting); err != nil {
		return err
	}
	m.state.Phase = models.PhaseSucceeded
	m.state.Progress = 100
	m.state.Result = result
	m.state.ImageURLs = imageURLs
	m.state.Error = nil
	return nil
}

func (m *machine) fail(seq uint64, err error) error {
	if checkErr := m.check(seq, models.PhaseValidating, models.PhaseSubmitting); checkErr != nil {
		return checkErr
	}
	m.state.Phase = models.PhaseFailed
	m.state.Result = nil
	m.state.ImageURLs = nil
	m.state.Error = &models.ErrorDetail{
		Message: errs.Message(err),
		Err:     err,
	}
	return nil
}

// reset clears the outcome and bumps the sequence so a late response from a
// superseded batch cannot bring it back.
func (m *machine) reset() error {
	switch m.state.Phase {
	case models.PhaseIdle, models.PhaseSucceeded, models.PhaseFailed:
	default:
		return fmt.Errorf("%w: %s", errs.ErrInvalidTransition, m.state.Phase)
	}

	m.seq++
	m.state = models.OperationState{
		Phase:       models.PhaseIdle,
		Seq:         m.seq,
		Downloading: m.state.Downloading,
	}
	return nil
}

func (m *machine) setDownloading(downloading bool) {
	m.state.Downloading = downloading
}
