package cat

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNilWriter reports a Request without an output writer.
	ErrNilWriter = errors.New("writer is nil")
	// ErrNilStdin reports a Request that names standard input but has no Stdin.
	ErrNilStdin = errors.New("stdin is nil")
)

// SourceOpenError reports a source that could not be opened.
type SourceOpenError struct {
	Source string
	Err    error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, causeText(e.Err))
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// SourceReadError reports an I/O failure while reading a source.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, causeText(e.Err))
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// WriteError reports a failure writing to the output.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: %v", causeText(e.Err))
}

func (e *WriteError) Unwrap() error { return e.Err }

// causeText drops the operation and path from *fs.PathError causes, since the
// source name is already part of the message.
func causeText(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
