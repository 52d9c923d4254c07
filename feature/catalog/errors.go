package catalog

import (
	"errors"
	"fmt"
)

// ErrSourceLoad matches every SourceLoadError.
var ErrSourceLoad = errors.New("catalog source could not be loaded")

// SourceLoadError reports a catalog source that was skipped.
type SourceLoadError struct {
	Source string
	Err    error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("catalog source %s skipped: %v", e.Source, e.Err)
}

func (e *SourceLoadError) Unwrap() error { return e.Err }

func (e *SourceLoadError) Is(target error) bool { return target == ErrSourceLoad }
