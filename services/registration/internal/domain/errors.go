package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFinalStep = errors.New("submission is only possible at the last step")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidRole  = errors.New("role must be vendor or supplier")
)

// ValidationError carries every failed rule of one step, in rule order.
type ValidationError struct {
	Step     int
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, strings.Join(e.Messages, "; "))
}

// AttachmentError rejects a file before it reaches the draft.
type AttachmentError struct {
	Field  string
	Reason string
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %s: %s", e.Field, e.Reason)
}

// SubmissionError wraps a failure reported by the registration backend.
// The draft is left as it was, so the same wizard can be submitted again.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
