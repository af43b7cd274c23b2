package models

import (
	"errors"
	"fmt"
)

// FileFormatError reports a missing or malformed mesh or material file.
// Loaders never return a partially built mesh alongside it.
type FileFormatError struct {
	Path string
	Line int // 1-based; 0 when the error is not tied to a line
	Err  error
}

func (e *FileFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileFormatError) Unwrap() error {
	return e.Err
}

// Loader failure causes wrapped by FileFormatError.
var (
	ErrIndexRange      = errors.New("vertex index out of range")
	ErrUnsupportedType = errors.New("unsupported mesh format")
)

func formatErr(path string, line int, format string, args ...any) error {
	return &FileFormatError{Path: path, Line: line, Err: fmt.Errorf(format, args...)}
}
