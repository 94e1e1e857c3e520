package trynext

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEnv = `# database settings
DB_HOST = localhost
export DB_PORT=5432

DB_USER="admin user"
DB_PASS='s3cr=t'
EMPTY=
`

func TestPairsParsesLines(t *testing.T) {
	st := NewParseState(true)
	defer st.Close()

	p := NewPairs("sample.env", NewLines(strings.NewReader(sampleEnv), 0))
	pairs, err := drainWith[Pair, ParseState](p, st)
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Key: "DB_HOST", Value: "localhost", Line: 2},
		{Key: "DB_PORT", Value: "5432", Line: 3},
		{Key: "DB_USER", Value: "admin user", Line: 5},
		{Key: "DB_PASS", Value: "s3cr=t", Line: 6},
		{Key: "EMPTY", Value: "", Line: 7},
	}, pairs)
	assert.Equal(t, 7, st.Lines)
	assert.Equal(t, 5, st.Keys.Len())
	assert.Nil(t, st.Skipped.ErrorOrNil())
}

func TestPairsStrictErrorKeepsProducerActive(t *testing.T) {
	st := NewParseState(true)
	defer st.Close()

	p := NewPairs("", NewSlice([]string{"A=1", "garbage", "B=2"}))

	v, ok, err := p.TryNextWith(st)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A=1", v.String())

	_, ok, err = p.TryNextWith(st)
	assert.False(t, ok)
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Line)
	assert.Equal(t, "garbage", serr.Text)
	assert.ErrorIs(t, err, ErrMissingSeparator)
	assert.EqualError(t, err, "pairs: line 2: missing '=' separator")

	v, ok, err = p.TryNextWith(st)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Pair{Key: "B", Value: "2", Line: 3}, v)

	_, ok, err = p.TryNextWith(st)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPairsLenientSkipsAndRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	st := NewParseState(false)
	defer st.Close()
	st.Logger = &logger

	lines := []string{
		"A=1",
		"=novalue",
		"B='open",
		"A=again",
		"no separator",
		"C=3",
	}
	pairs, err := drainWith[Pair, ParseState](NewPairs("in", NewSlice(lines)), st)
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Key: "A", Value: "1", Line: 1},
		{Key: "C", Value: "3", Line: 6},
	}, pairs)

	skipped := st.Skipped.WrappedErrors()
	require.Len(t, skipped, 4)
	assert.ErrorIs(t, skipped[0], ErrEmptyKey)
	assert.ErrorIs(t, skipped[1], ErrUnterminatedQuote)
	assert.ErrorIs(t, skipped[2], ErrDuplicateKey)
	assert.ErrorIs(t, skipped[3], ErrMissingSeparator)
	assert.EqualError(t, skipped[2], "pairs: in:4: duplicate key")

	assert.Equal(t, 4, strings.Count(buf.String(), "skipping line"))
	assert.Contains(t, buf.String(), `"line":5`)
}

func TestPairsSharedStateAcrossSources(t *testing.T) {
	st := NewParseState(true)
	defer st.Close()

	first := NewPairs("a.env", NewSlice([]string{"X=1", "Y=2"}))
	second := NewPairs("b.env", NewSlice([]string{"Z=3", "X=4"}))

	_, err := drainWith[Pair, ParseState](first, st)
	require.NoError(t, err)

	pairs, err := drainWith[Pair, ParseState](second, st)
	assert.Equal(t, []Pair{{Key: "Z", Value: "3", Line: 1}}, pairs)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.EqualError(t, err, "pairs: b.env:2: duplicate key")
	assert.Equal(t, 4, st.Lines)
}

func TestPairsWithoutKeySet(t *testing.T) {
	st := &ParseState{Strict: true}

	pairs, err := drainWith[Pair, ParseState](NewPairs("", NewSlice([]string{"K=1", "K=2"})), st)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}

func TestPairsSourceErrorPassesThrough(t *testing.T) {
	st := &ParseState{}
	boom := errors.New("source error")
	src := &sourceStub{data: []string{"K=1"}, err: boom}

	pairs, err := drainWith[Pair, ParseState](NewPairs("", src), st)
	assert.Len(t, pairs, 1)
	assert.Same(t, boom, err)
	assert.Nil(t, st.Skipped.ErrorOrNil())
}

func TestPairsFollowsQueueExhaustion(t *testing.T) {
	st := &ParseState{}
	q := NewQueue[string]()
	p := NewPairs("", q)

	_, ok, err := p.TryNextWith(st)
	require.NoError(t, err)
	assert.False(t, ok)

	q.Append("# comment", "K=v")
	v, ok, err := p.TryNextWith(st)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Pair{Key: "K", Value: "v", Line: 2}, v)
}

func TestParsePairQuotes(t *testing.T) {
	cases := []struct {
		in    string
		value string
		err   error
	}{
		{in: `K="x"`, value: "x"},
		{in: `K='x'`, value: "x"},
		{in: `K=""`, value: ""},
		{in: `K="`, err: ErrUnterminatedQuote},
		{in: `K="x'`, err: ErrUnterminatedQuote},
		{in: `K=a"b"`, value: `a"b"`},
	}

	for _, c := range cases {
		p, skip, err := parsePair(c.in)
		assert.False(t, skip, c.in)
		if c.err != nil {
			assert.ErrorIs(t, err, c.err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.value, p.Value, c.in)
	}
}

func TestPairsDuplicateKeysIgnoreCase(t *testing.T) {
	st := NewParseState(true)
	defer st.Close()

	p := NewPairs("", NewSlice([]string{"path=a", "PATH=b"}))

	v, ok, err := p.TryNextWith(st)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Pair{Key: "path", Value: "a", Line: 1}, v)

	_, ok, err = p.TryNextWith(st)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.EqualError(t, err, "pairs: line 2: duplicate key")
}

func TestParsePairExportPrefix(t *testing.T) {
	cases := []struct {
		in  string
		key string
	}{
		{in: "export K=v", key: "K"},
		{in: "export\tK=v", key: "K"},
		{in: "export  \t K=v", key: "K"},
		{in: "export=v", key: "export"},
		{in: "exporter=v", key: "exporter"},
	}

	for _, c := range cases {
		p, skip, err := parsePair(c.in)
		require.NoError(t, err, c.in)
		assert.False(t, skip, c.in)
		assert.Equal(t, c.key, p.Key, c.in)
	}
}
