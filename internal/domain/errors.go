package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadable     = errors.New("file is unreadable")
	ErrNotUTF8        = errors.New("file is not valid UTF-8")
	ErrEmptyCorpus    = errors.New("corpus has no analyzable documents")
	ErrCorpusNotFound = errors.New("corpus not found")
	ErrReportNotFound = errors.New("no report for corpus")
	ErrUnknownMetric  = errors.New("unknown metric")
)

// ReadError is an input failure for one document. It is kept apart from
// analysis failures so callers can report it per file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
