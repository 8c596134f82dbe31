package core

import "github.com/pkg/errors"

// InvariantViolation is raised when the Snapshot's projected line content
// disagrees with the blob's actual line content after a mutation. It is
// always fatal: a silent miscount would corrupt every downstream statistic,
// so it is never recovered from.
type InvariantViolation struct {
	Path   string
	Commit string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return errors.Errorf("invariant violation at %s (commit %s): %s", e.Path, e.Commit, e.Reason).Error()
}

// NewInvariantViolation builds an InvariantViolation for the given path and commit.
func NewInvariantViolation(path, commit, reason string) error {
	return &InvariantViolation{Path: path, Commit: commit, Reason: reason}
}

// PreconditionViolation is raised when an operation is attempted against a
// Snapshot in a state that violates its documented preconditions: `new` on
// an existing path, `del`/`ren` on an absent path, `ren` targeting an
// existing path. It indicates either a bug in DiffResolver or corrupt input.
type PreconditionViolation struct {
	Op     string
	Path   string
	Reason string
}

func (e *PreconditionViolation) Error() string {
	return errors.Errorf("precondition violation in %s(%s): %s", e.Op, e.Path, e.Reason).Error()
}

// NewPreconditionViolation builds a PreconditionViolation.
func NewPreconditionViolation(op, path, reason string) error {
	return &PreconditionViolation{Op: op, Path: path, Reason: reason}
}

// SourceError wraps a failure coming from the version-control collaborator:
// it failed to read a blob, enumerate commits, or produce a diff.
type SourceError struct {
	Commit string
	cause  error
}

func (e *SourceError) Error() string {
	return errors.Wrapf(e.cause, "source error at commit %s", e.Commit).Error()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *SourceError) Unwrap() error { return e.cause }

// NewSourceError wraps cause as a SourceError for the given commit.
func NewSourceError(commit string, cause error) error {
	return &SourceError{Commit: commit, cause: cause}
}

// UsageError is returned on a missing or extra CLI argument. The caller
// prints its Error() alongside a usage line and exits with status 1.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// NewUsageError builds a UsageError.
func NewUsageError(reason string) error {
	return &UsageError{Reason: reason}
}
