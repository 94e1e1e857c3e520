package trynext

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultMaxLine is the longest line a Lines producer accepts when no
// maximum is given.
const DefaultMaxLine = bufio.MaxScanTokenSize

// Lines produces newline-delimited lines read from an io.Reader, without
// their line terminators.
//
// End of input is terminal. A read failure, or a line longer than the
// configured maximum, is permanent: that call and every later call return the
// same error, wrapped with a "lines:" prefix.
type Lines struct {
	scanner *bufio.Scanner
	maxLen  int
	line    int
	done    bool
	err     error
}

// NewLines returns a Lines producer reading from r. Lines longer than maxLen
// bytes, not counting the line terminator, fail the producer. A maxLen of
// zero or less selects DefaultMaxLine.
func NewLines(r io.Reader, maxLen int) *Lines {
	if maxLen <= 0 {
		maxLen = DefaultMaxLine
	}

	// The scanner buffer also holds the terminator, up to "\r\n"
	bufLen := maxLen + 2
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, min(bufLen, 4096)), bufLen)
	return &Lines{
		scanner: s,
		maxLen:  maxLen,
	}
}

// Line returns the number of lines produced so far.
func (l *Lines) Line() int {
	return l.line
}

// TryNext implements Producer.
func (l *Lines) TryNext() (string, bool, error) {
	if l.err != nil {
		return "", false, l.err
	}
	if l.done {
		return "", false, nil
	}

	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			l.err = fmt.Errorf("lines: line %d: %w", l.line+1, err)
			return "", false, l.err
		}
		l.done = true
		return "", false, nil
	}

	text := l.scanner.Text()
	if len(text) > l.maxLen {
		l.err = fmt.Errorf("lines: line %d: %w", l.line+1, bufio.ErrTooLong)
		return "", false, l.err
	}

	l.line++
	return text, true, nil
}
