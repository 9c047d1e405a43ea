package cmdrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/config"
)

const (
	nonZeroExitCode = 1
	zeroExitCode    = 0
)

// StdinPath selects standard input as the source.
const StdinPath = "-"

// ErrBadLines is returned when a source holds lines that could not be decoded.
var ErrBadLines = errors.New("source has bad lines")

func newParser(cfg *config.Config) (*typedcsv.Parser, error) {
	d, err := cfg.ParserDelimiters()
	if err != nil {
		return nil, err
	}
	schema, err := cfg.Schema()
	if err != nil {
		return nil, err
	}
	return typedcsv.NewParser(schema, d)
}

func newReader(src io.Reader, p *typedcsv.Parser, cfg *config.Config) *typedcsv.Reader {
	r := typedcsv.NewReader(src, p)
	r.Offset = cfg.Reader.Offset
	r.SkipEmptyLines = cfg.Reader.SkipEmptyLines
	r.MaxLineSize = cfg.Reader.MaxLineSize
	return r
}

// openSource opens path for reading. The caller closes the returned file.
func openSource(path string) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return f, nil
}

// badLineReporter logs bad lines until limit is reached, then logs once that it stopped.
type badLineReporter struct {
	source string
	limit  int
	count  int
}

// report logs err if it describes a single bad line and tells whether it did.
// An over-long line is not one: the reader cannot resume after it.
func (r *badLineReporter) report(ctx context.Context, err error) bool {
	var perr *typedcsv.ParseError
	if !errors.As(err, &perr) || errors.Is(err, typedcsv.ErrLineTooLong) {
		return false
	}
	r.count++
	if r.count > r.limit {
		if r.count == r.limit+1 {
			log.Ctx(ctx).Warn().
				Str("source", r.source).
				Int("limit", r.limit).
				Msg("too many bad lines: further lines are counted but not logged")
		}
		return true
	}
	ev := log.Ctx(ctx).Warn().
		Str("source", r.source).
		Int("line", perr.Line)
	if perr.Field > 0 {
		ev = ev.Int("field", perr.Field)
	}
	if perr.Column > 0 {
		ev = ev.Int("column", perr.Column)
	}
	ev.Err(perr.Err).Msg("bad line")
	return true
}
