package errs

import (
	"errors"
	"fmt"
)

const GenericServiceMessage = "Failed to process PDF"

var (
	ErrEmptyBatch        = errors.New("no files provided")
	ErrFileTooLarge      = errors.New("file exceeds maximum size")
	ErrInvalidFileType   = errors.New("invalid file type (allowed: .pdf)")
	ErrTooManyFiles      = errors.New("too many files in request")
	ErrInvalidPDF        = errors.New("invalid or corrupted PDF file")
	ErrDocumentNotFound  = errors.New("pdf id not found or no images available")
	ErrImageNotFound     = errors.New("image not found or has been cleaned up")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// ValidationError is raised before a batch reaches the network.
type ValidationError struct {
	Message string
	Files   []string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NetworkError means no response was received at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-2xx backend response.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// DecodeError means the response body did not have the shape the request mode
// asked for. It reads as a ServiceError with the generic message.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return GenericServiceMessage
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) As(target any) bool {
	se, ok := target.(**ServiceError)
	if !ok {
		return false
	}
	*se = &ServiceError{StatusCode: e.StatusCode, Message: GenericServiceMessage}
	return true
}

// FetchError is returned when a resolved image location cannot be fetched.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var se *ServiceError
	if errors.As(err, &se) {
		if se.Message == "" {
			return GenericServiceMessage
		}
		return se.Message
	}

	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Failed to process files. Please try again."
	}

	return err.Error()
}
