package models

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

type ErrorDetail struct {
	Message string
	Err     error
}

// OperationState is a snapshot of one batch lifecycle.
type OperationState struct {
	Phase       Phase
	Seq         uint64
	Progress    int
	Files       []string
	Result      *ExtractionResult
	ImageURLs   []string
	Error       *ErrorDetail
	Downloading bool
}

// DisplayedCount is the count presented to the user; it always comes from the
// backend count, never from the number of references.
func (s OperationState) DisplayedCount() int {
	if s.Result == nil {
		return 0
	}
	return s.Result.ImageCount
}

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)
