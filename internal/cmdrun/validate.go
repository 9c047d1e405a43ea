package cmdrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/config"
)

// Summary is the validation outcome of one source.
type Summary struct {
	Source   string
	Rows     int
	BadLines int
	// FirstError is the first bad line, or the error that stopped reading.
	FirstError error
	// Failed is set when the source could not be read to the end.
	Failed bool
}

func (s Summary) ok() bool {
	return s.BadLines == 0 && !s.Failed
}

// RunValidate checks every file in paths concurrently and prints one summary line per file.
// The exit code is non-zero when any file has bad lines or could not be read.
func RunValidate(ctx context.Context, cfg *config.Config, paths []string, out io.Writer) (int, error) {
	summaries, err := Validate(ctx, cfg, paths)
	if err != nil {
		return nonZeroExitCode, err
	}
	printSummaries(out, summaries)
	for _, s := range summaries {
		if !s.ok() {
			return nonZeroExitCode, nil
		}
	}
	return zeroExitCode, nil
}

// Validate decodes each source with up to cfg.Validate.Jobs workers. Summaries keep the order of paths.
func Validate(ctx context.Context, cfg *config.Config, paths []string) ([]Summary, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no sources to validate")
	}
	p, err := newParser(cfg)
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	summaries := make([]Summary, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Validate.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			s, err := validateFile(gctx, cfg, p, path)
			summaries[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// validateFile returns a non-nil error only when the run was cancelled.
func validateFile(ctx context.Context, cfg *config.Config, p *typedcsv.Parser, path string) (Summary, error) {
	s := Summary{Source: path}
	src, err := openSource(path)
	if err != nil {
		s.Failed, s.FirstError = true, err
		log.Ctx(ctx).Error().Str("source", path).Err(err).Msg("cannot validate")
		return s, nil
	}
	defer src.Close()

	r := newReader(src, p, cfg)
	reporter := &badLineReporter{source: path, limit: cfg.Validate.MaxReported}
	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if s.FirstError == nil {
				s.FirstError = err
			}
			if !reporter.report(ctx, err) {
				s.Failed = true
				log.Ctx(ctx).Error().Str("source", path).Err(err).Msg("cannot validate")
				break
			}
			s.BadLines++
			continue
		}
		s.Rows++
	}

	log.Ctx(ctx).Debug().
		Str("source", path).
		Int("rows", s.Rows).
		Int("bad_lines", s.BadLines).
		Msg("validation finished")
	return s, nil
}

func printSummaries(w io.Writer, summaries []Summary) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Source", "Rows", "Bad lines", "Status", "First error"})
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, s := range summaries {
		status := "ok"
		switch {
		case s.Failed:
			status = "failed"
		case s.BadLines > 0:
			status = "invalid"
		}
		firstErr := ""
		if s.FirstError != nil {
			firstErr = s.FirstError.Error()
		}
		t.Append([]string{s.Source, strconv.Itoa(s.Rows), strconv.Itoa(s.BadLines), status, firstErr})
	}
	t.Render()
}
