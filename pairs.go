package trynext

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/caffix/stringset"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

var (
	// ErrMissingSeparator is reported for a line without an '='.
	ErrMissingSeparator = errors.New("missing '=' separator")
	// ErrEmptyKey is reported when nothing precedes the '='.
	ErrEmptyKey = errors.New("empty key")
	// ErrDuplicateKey is reported for a key already present in ParseState.Keys.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnterminatedQuote is reported for a value opening a quote it never closes.
	ErrUnterminatedQuote = errors.New("unterminated quoted value")
)

// Pair is a single key=value assignment.
type Pair struct {
	Key   string
	Value string
	// Line is the 1-based line number within the source.
	Line int
}

// String returns the pair in key=value form.
func (p Pair) String() string {
	return p.Key + "=" + p.Value
}

// SyntaxError describes a line that could not be parsed as a Pair.
type SyntaxError struct {
	Source string
	Line   int
	Text   string
	Reason error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("pairs: line %d: %v", e.Line, e.Reason)
	}
	return fmt.Sprintf("pairs: %s:%d: %v", e.Source, e.Line, e.Reason)
}

// Unwrap returns the reason, one of the Err* sentinels.
func (e *SyntaxError) Unwrap() error {
	return e.Reason
}

// ParseState is the caller-owned context of a Pairs producer.
type ParseState struct {
	// Strict makes syntax errors fail the call instead of being skipped.
	Strict bool

	// Lines counts every source line consumed, across all producers
	// sharing this state.
	Lines int

	// Keys holds the keys produced so far. The set folds case, so keys
	// that differ only in case are duplicates. When nil, duplicate keys
	// are not detected.
	Keys *stringset.Set

	// Skipped collects the syntax errors passed over in lenient mode.
	Skipped *multierror.Error

	// Logger receives a debug event for every skipped line. May be nil.
	Logger *zerolog.Logger
}

// NewParseState returns a ParseState with duplicate key detection enabled.
// Call Close when the state is no longer needed.
func NewParseState(strict bool) *ParseState {
	return &ParseState{
		Strict: strict,
		Keys:   stringset.New(),
	}
}

// Close releases the key set.
func (s *ParseState) Close() {
	if s.Keys != nil {
		s.Keys.Close()
	}
}

func (s *ParseState) logger() *zerolog.Logger {
	if s.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return s.Logger
}

// Pairs parses key=value lines pulled from a line producer.
//
// Blank lines and lines starting with '#' are ignored. An optional "export"
// keyword followed by white space is dropped, key and value are trimmed, and
// a value enclosed in matching single or double quotes has the quotes removed.
// Duplicate keys are detected without regard to case, so PATH and path
// collide.
//
// Pairs is exhausted whenever its source is, so it inherits the source's
// exhaustion policy. Source errors are returned unchanged under the source's
// own error policy. A syntax error in strict mode fails that call only: the
// producer stays active and the next call continues with the following line.
// In lenient mode syntax errors are recorded in ParseState.Skipped and the
// line is passed over.
type Pairs struct {
	name string
	src  Producer[string]
	line int
}

// NewPairs returns a Pairs producer reading lines from src. The name is used
// in error messages and may be empty.
func NewPairs(name string, src Producer[string]) *Pairs {
	return &Pairs{
		name: name,
		src:  src,
	}
}

// TryNextWith implements ContextProducer.
func (p *Pairs) TryNextWith(st *ParseState) (Pair, bool, error) {
	for {
		text, ok, err := p.src.TryNext()
		if err != nil {
			return Pair{}, false, err
		}
		if !ok {
			return Pair{}, false, nil
		}

		p.line++
		st.Lines++

		pair, skip, reason := parsePair(text)
		if skip {
			continue
		}
		if reason == nil && st.Keys != nil {
			if st.Keys.Has(pair.Key) {
				reason = ErrDuplicateKey
			} else {
				st.Keys.Insert(pair.Key)
			}
		}
		if reason != nil {
			serr := &SyntaxError{
				Source: p.name,
				Line:   p.line,
				Text:   text,
				Reason: reason,
			}
			if st.Strict {
				return Pair{}, false, serr
			}

			st.Skipped = multierror.Append(st.Skipped, serr)
			st.logger().Debug().
				Str("source", p.name).
				Int("line", p.line).
				Err(reason).
				Msg("skipping line")
			continue
		}

		pair.Line = p.line
		return pair, true, nil
	}
}

func parsePair(text string) (Pair, bool, error) {
	line := strings.TrimSpace(text)
	if line == "" || strings.HasPrefix(line, "#") {
		return Pair{}, true, nil
	}
	if rest, ok := strings.CutPrefix(line, "export"); ok && rest != "" && unicode.IsSpace(rune(rest[0])) {
		line = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}

	k, v, found := strings.Cut(line, "=")
	if !found {
		return Pair{}, false, ErrMissingSeparator
	}

	key := strings.TrimSpace(k)
	if key == "" {
		return Pair{}, false, ErrEmptyKey
	}

	value, err := unquote(strings.TrimSpace(v))
	if err != nil {
		return Pair{}, false, err
	}
	return Pair{Key: key, Value: value}, false, nil
}

func unquote(v string) (string, error) {
	if v == "" || (v[0] != '"' && v[0] != '\'') {
		return v, nil
	}
	if len(v) < 2 || v[len(v)-1] != v[0] {
		return "", ErrUnterminatedQuote
	}
	return v[1 : len(v)-1], nil
}
