package cmdrun

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/oleg578/typedcsv/internal/config"
	"github.com/oleg578/typedcsv/internal/render"
)

// RunParse decodes the file at path and renders every row to out.
func RunParse(ctx context.Context, cfg *config.Config, path string, out io.Writer) (int, error) {
	src, err := openSource(path)
	if err != nil {
		return nonZeroExitCode, err
	}
	defer src.Close()
	return Parse(ctx, cfg, path, src, out)
}

// Parse decodes src and renders every row to out. With the skip policy bad
// lines are logged and left out, with the abort policy the first one ends the run.
func Parse(ctx context.Context, cfg *config.Config, name string, src io.Reader, out io.Writer) (int, error) {
	if err := cfg.Check(); err != nil {
		return nonZeroExitCode, err
	}
	p, err := newParser(cfg)
	if err != nil {
		return nonZeroExitCode, fmt.Errorf("create parser: %w", err)
	}
	d, err := cfg.ParserDelimiters()
	if err != nil {
		return nonZeroExitCode, err
	}
	rnd, err := render.New(cfg.Output.Format, out, p.Schema(), d)
	if err != nil {
		return nonZeroExitCode, fmt.Errorf("create renderer: %w", err)
	}

	r := newReader(src, p, cfg)
	reporter := &badLineReporter{source: name, limit: cfg.Validate.MaxReported}
	rows := 0
	for {
		if err := ctx.Err(); err != nil {
			return nonZeroExitCode, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if reporter.report(ctx, err) && cfg.OnError == config.OnErrorSkip {
				continue
			}
			// Rows read before the failing line are still written.
			err = fmt.Errorf("read %s: %w", name, err)
			if flushErr := rnd.Flush(); flushErr != nil {
				return nonZeroExitCode, errors.Join(err, flushErr)
			}
			return nonZeroExitCode, err
		}
		if err := rnd.Render(row); err != nil {
			return nonZeroExitCode, fmt.Errorf("render: %w", err)
		}
		rows++
	}
	if err := rnd.Flush(); err != nil {
		return nonZeroExitCode, fmt.Errorf("flush output: %w", err)
	}

	ev := log.Ctx(ctx).Debug()
	if reporter.count > 0 {
		ev = log.Ctx(ctx).Info()
	}
	ev.Str("source", name).
		Int("rows", rows).
		Int("skipped", reporter.count).
		Msg("parse finished")
	return zeroExitCode, nil
}
