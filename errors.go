package recast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// ErrEmptyRequired is returned when a required field's raw or casted value
// matched the field's empty set.
var ErrEmptyRequired = errors.New("required value is empty")

// ErrDefaultPanic marks a failure inside a field's default function.
var ErrDefaultPanic = errors.New("default function panicked")

// ErrNotASequence is returned when a ListOf or HasMany field receives a raw
// value that is not an ordered sequence.
var ErrNotASequence = errors.New("value is not a sequence")

// ErrNotACastUnit is returned when a cast unit has a shape the invoker does
// not recognize.
var ErrNotACastUnit = errors.New("unsupported cast unit")

// ErrSchemaMismatch is returned when a schema's record type does not match
// the mapper's type parameter.
var ErrSchemaMismatch = errors.New("schema record type mismatch")

// ErrUnknownFormat is returned by DetectSource when the payload matches no
// supported source format.
var ErrUnknownFormat = errors.New("cannot detect source format")

// FieldError pinpoints the first field that failed during a Cast call. Path
// holds the keys from the record root down to the failing leaf; list and
// HasMany elements contribute their decimal index as a path segment.
type FieldError struct {
	Path   []string
	Reason error
}

func (e *FieldError) Error() string {
	return strings.Join(e.Path, ".") + ": " + e.Reason.Error()
}

func (e *FieldError) Unwrap() error { return e.Reason }

// wrapField prepends seg to err's path, creating a FieldError if err is not
// one already. The inner reason is never rewritten, so errors.Is still sees
// the original cause.
func wrapField(seg string, err error) *FieldError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{Path: append([]string{seg}, fe.Path...), Reason: fe.Reason}
	}
	return &FieldError{Path: []string{seg}, Reason: err}
}

// ContractViolationError reports a cast unit whose return value falls outside
// the Ok/Fail/Empty contract. It is raised as a panic, never returned: a
// malformed cast unit is a bug in schema construction, not bad input data.
type ContractViolationError struct {
	Unit string
	Got  any
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("cast unit %s returned a value outside the Result contract: %s",
		e.Unit, strings.TrimSpace(spew.Sdump(e.Got)))
}
