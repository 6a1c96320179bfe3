package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single transcript line. Real listings are short; the
// limit only guards against feeding a binary file by mistake.
const maxLineSize = 1024 * 1024

// Open opens the transcript at path for reading.
// A missing file is reported as ErrInputNotFound.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Events returns the events of the transcript read from r, one per non-blank
// line. The sequence stops after the first error, which is always a *ParseError.
func Events(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		line := 0
		for sc.Scan() {
			line++
			text := strings.TrimRight(sc.Text(), "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}
			ev, err := ParseLine(text, line)
			if err != nil {
				yield(Event{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Event{}, &ParseError{
				Line: line + 1,
				Err:  fmt.Errorf("%w: %w", ErrLineUnreadable, err),
			})
		}
	}
}

// Collect drains Events(r) into a slice.
func Collect(r io.Reader) ([]Event, error) {
	var events []Event
	for ev, err := range Events(r) {
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// ParseLine classifies a single transcript line. line is only used for error
// reporting and is copied into the returned Event.
func ParseLine(text string, line int) (Event, error) {
	fail := func(err error) (Event, error) {
		return Event{}, &ParseError{Line: line, Text: text, Err: err}
	}

	if strings.HasPrefix(text, "$") {
		rest, ok := strings.CutPrefix(text, "$ ")
		if !ok {
			return fail(ErrUnknownCommand)
		}
		cmd, arg, hasArg := strings.Cut(rest, " ")
		switch cmd {
		case "cd":
			if arg != RootDir && arg != ParentDir && !validName(arg) {
				return fail(ErrMalformedLine)
			}
			return Event{Kind: ChangeDir, Name: arg, Line: line}, nil
		case "ls":
			if hasArg {
				return fail(ErrMalformedLine)
			}
			return Event{Kind: List, Line: line}, nil
		default:
			return fail(ErrUnknownCommand)
		}
	}

	if name, ok := strings.CutPrefix(text, "dir "); ok {
		if !validName(name) {
			return fail(ErrMalformedLine)
		}
		return Event{Kind: DirEntry, Name: name, Line: line}, nil
	}

	sizeText, name, ok := strings.Cut(text, " ")
	if !ok || !validName(name) {
		return fail(ErrMalformedLine)
	}
	size, err := strconv.ParseUint(sizeText, 10, 64)
	if err != nil {
		return fail(ErrSizeUnparseable)
	}
	return Event{Kind: FileEntry, Name: name, Size: size, Line: line}, nil
}

// validName reports whether name is a single path segment without
// surrounding whitespace.
func validName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return !strings.Contains(name, "/")
}
