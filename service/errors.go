package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures for the caller.
type ErrorKind string

const (
	// ErrKindTimeout: an external collaborator exceeded its deadline.
	ErrKindTimeout ErrorKind = "collaborator_timeout"
	// ErrKindCollaborator: an external collaborator returned an explicit failure.
	ErrKindCollaborator ErrorKind = "collaborator_failure"
)

// Pipeline stages, used to report where a request failed.
const (
	StageEmbed    = "embed"
	StageSearch   = "search"
	StageGenerate = "generate"
)

// PipelineError is a structured request failure: which stage failed, whether
// it was a timeout or a collaborator error, and the underlying cause.
type PipelineError struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s at stage %q: %v", e.Kind, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// wrapStageError classifies an error from an external call. Deadline
// overruns become timeouts, everything else a collaborator failure.
func wrapStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	kind := ErrKindCollaborator
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrKindTimeout
	}
	return &PipelineError{Kind: kind, Stage: stage, Err: err}
}

// IsTimeout reports whether err is a pipeline timeout.
func IsTimeout(err error) bool {
	var pe *PipelineError
	return errors.As(err, &pe) && pe.Kind == ErrKindTimeout
}
