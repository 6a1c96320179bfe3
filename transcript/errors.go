package transcript

import (
	"errors"
	"fmt"
)

// Sentinel errors for package transcript.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Input errors
	ErrInputNotFound  = errors.New("transcript not found")
	ErrLineUnreadable = errors.New("transcript line unreadable")

	// Line shape errors
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMalformedLine   = errors.New("malformed line")
	ErrSizeUnparseable = errors.New("file size is not a non-negative integer")
)

// ParseError reports the transcript line that could not be classified.
type ParseError struct {
	Line int    // 1-based line number
	Text string // raw line text
	Err  error  // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
