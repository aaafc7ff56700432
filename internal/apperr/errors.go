// Package apperr defines the error taxonomy shared by the gitcommit packages.
//
// Errors local to a single line or file are recovered by the caller (logged and
// skipped). Repository, render and message-write errors abort the run.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRepository           = errors.New("repository error")
	ErrLineParse            = errors.New("line parse error")
	ErrRender               = errors.New("render error")
	ErrMaterialize          = errors.New("materialize error")
	ErrNotStaged            = errors.New("file has no staged copy")
	ErrModifiedSinceStaging = errors.New("file modified since it was staged")
)

// RepositoryError reports an invalid or unreadable repository root.
type RepositoryError struct {
	Path   string
	Op     string
	Err    error
	Output string
}

func (e *RepositoryError) Error() string {
	msg := fmt.Sprintf("repository %s", e.Path)
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s failed", msg, e.Op)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RepositoryError) Unwrap() []error { return []error{ErrRepository, e.Err} }

// NewRepositoryError creates a RepositoryError.
func NewRepositoryError(path, op string, err error, output string) *RepositoryError {
	return &RepositoryError{Path: path, Op: op, Err: err, Output: output}
}

// LineParseError reports a single malformed line. It never aborts a file.
type LineParseError struct {
	Line int
	Err  error
}

func (e *LineParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineParseError) Unwrap() []error { return []error{ErrLineParse, e.Err} }

// Render stages.
const (
	StageLoad    = "load"
	StageExecute = "execute"
	StageWrite   = "write"
)

// RenderError reports a failure to produce the commit message.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render (%s): %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Err} }

// MaterializeError reports a failed write of a rewritten file.
type MaterializeError struct {
	Path string
	Mode string
	Err  error
}

func (e *MaterializeError) Error() string {
	return fmt.Sprintf("materialize %s (%s): %v", e.Path, e.Mode, e.Err)
}

func (e *MaterializeError) Unwrap() []error { return []error{ErrMaterialize, e.Err} }

// Stage names the pipeline stage an error belongs to, for user-facing messages.
func Stage(err error) string {
	switch {
	case errors.Is(err, ErrRepository):
		return "repository access"
	case errors.Is(err, ErrLineParse):
		return "parsing"
	case errors.Is(err, ErrRender):
		return "rendering"
	case errors.Is(err, ErrMaterialize):
		return "writing"
	default:
		return ""
	}
}
