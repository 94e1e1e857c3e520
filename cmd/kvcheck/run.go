package main

import (
	"fmt"
	"io"
	"os"

	"github.com/caffix/trynext"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// run checks every file and returns all the errors observed, including the
// lines skipped in lenient mode.
func run(cfg config, files []string, out io.Writer, logger zerolog.Logger) error {
	st := trynext.NewParseState(cfg.Strict)
	defer st.Close()
	st.Logger = &logger

	var result error
	for _, name := range files {
		n, err := checkFile(name, cfg.MaxLine, st, out)
		if err != nil {
			logger.Error().Err(err).Str("file", name).Msg("check failed")
			result = multierror.Append(result, err)
			continue
		}
		logger.Debug().Str("file", name).Int("pairs", n).Msg("file checked")
	}

	if skipped := st.Skipped.ErrorOrNil(); skipped != nil {
		logger.Warn().Int("count", len(st.Skipped.Errors)).Msg("lines skipped")
		result = multierror.Append(result, skipped)
	}

	logger.Info().
		Int("files", len(files)).
		Int("lines", st.Lines).
		Int("keys", st.Keys.Len()).
		Msg("check complete")
	return result
}

// checkFile writes the pairs of a single file to out and stops at the first error.
func checkFile(name string, maxLine int, st *trynext.ParseState, out io.Writer) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var n int
	p := trynext.NewPairs(name, trynext.NewLines(f, maxLine))
	for {
		pair, ok, err := p.TryNextWith(st)
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		if _, err := fmt.Fprintln(out, pair); err != nil {
			return n, err
		}
		n++
	}
}
