// Package config holds the settings of the typedcsv command and turns them into
// parser objects.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/logger"
)

const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputText  = "text"
	OutputCSV   = "csv"
)

const (
	defaultJobs        = 4
	defaultMaxReported = 400
	defaultMaxLineSize = 1 << 20
)

var (
	ErrInvalidConfig = errors.New("invalid config")

	errNoColumns = errors.New("at least one column is required")
)

type Log struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
}

// Delimiters keeps the separators in their textual form, see ParseDelimiter.
type Delimiters struct {
	Quote  string `mapstructure:"quote" yaml:"quote" json:"quote,omitempty"`
	Column string `mapstructure:"column" yaml:"column" json:"column,omitempty"`
	Line   string `mapstructure:"line" yaml:"line" json:"line,omitempty"`
}

type Reader struct {
	Offset         int  `mapstructure:"offset" yaml:"offset" json:"offset,omitempty"`
	SkipEmptyLines bool `mapstructure:"skip_empty_lines" yaml:"skip_empty_lines" json:"skip_empty_lines,omitempty"`
	MaxLineSize    int  `mapstructure:"max_line_size" yaml:"max_line_size" json:"max_line_size,omitempty"`
}

type Output struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
}

type Validate struct {
	Jobs        int `mapstructure:"jobs" yaml:"jobs" json:"jobs,omitempty"`
	MaxReported int `mapstructure:"max_reported" yaml:"max_reported" json:"max_reported,omitempty"`
}

type Config struct {
	Log        Log        `mapstructure:"log" yaml:"log" json:"log"`
	Delimiters Delimiters `mapstructure:"delimiters" yaml:"delimiters" json:"delimiters"`
	// Columns are "name:type" or "name:time:layout" descriptors.
	Columns  []string `mapstructure:"columns" yaml:"columns" json:"columns"`
	Reader   Reader   `mapstructure:"reader" yaml:"reader" json:"reader"`
	OnError  string   `mapstructure:"on_error" yaml:"on_error" json:"on_error"`
	Output   Output   `mapstructure:"output" yaml:"output" json:"output"`
	Validate Validate `mapstructure:"validate" yaml:"validate" json:"validate"`
}

func NewConfig() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: logger.FormatText,
		},
		Delimiters: Delimiters{
			Quote:  `"`,
			Column: ",",
			Line:   `\n`,
		},
		Reader: Reader{
			MaxLineSize: defaultMaxLineSize,
		},
		OnError: OnErrorAbort,
		Output: Output{
			Format: OutputTable,
		},
		Validate: Validate{
			Jobs:        defaultJobs,
			MaxReported: defaultMaxReported,
		},
	}
}

// DecodeHook converts flag and environment strings into the config field types.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Decode fills c from a generic settings map, as read from a config file.
func (c *Config) Decode(input map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DecodeHook(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Check reports every problem found in c, joined into one error.
func (c *Config) Check() error {
	var errs []error

	if _, err := c.ParserDelimiters(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Schema(); err != nil {
		errs = append(errs, err)
	}
	switch c.OnError {
	case OnErrorAbort, OnErrorSkip:
	default:
		errs = append(errs, fmt.Errorf("on_error %q: must be %s or %s", c.OnError, OnErrorAbort, OnErrorSkip))
	}
	switch c.Output.Format {
	case OutputTable, OutputJSON, OutputText, OutputCSV:
	default:
		errs = append(errs, fmt.Errorf("output format %q is not supported", c.Output.Format))
	}
	if c.Reader.Offset < 0 {
		errs = append(errs, fmt.Errorf("reader offset %d: must not be negative", c.Reader.Offset))
	}
	if c.Reader.MaxLineSize <= 0 {
		errs = append(errs, fmt.Errorf("reader max_line_size %d: must be positive", c.Reader.MaxLineSize))
	}
	if c.Validate.Jobs < 1 {
		errs = append(errs, fmt.Errorf("validate jobs %d: must be at least 1", c.Validate.Jobs))
	}
	if c.Validate.MaxReported < 0 {
		errs = append(errs, fmt.Errorf("validate max_reported %d: must not be negative", c.Validate.MaxReported))
	}
	if _, err := logger.New(io.Discard, c.Log.Level, c.Log.Format); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParserDelimiters converts the textual delimiters. The three bytes must differ.
func (c *Config) ParserDelimiters() (typedcsv.Delimiters, error) {
	quote, err := ParseDelimiter(c.Delimiters.Quote)
	if err != nil {
		return typedcsv.Delimiters{}, fmt.Errorf("quote delimiter: %w", err)
	}
	column, err := ParseDelimiter(c.Delimiters.Column)
	if err != nil {
		return typedcsv.Delimiters{}, fmt.Errorf("column delimiter: %w", err)
	}
	line, err := ParseDelimiter(c.Delimiters.Line)
	if err != nil {
		return typedcsv.Delimiters{}, fmt.Errorf("line delimiter: %w", err)
	}

	d := typedcsv.Delimiters{Quote: quote, Comma: column, Line: line}
	full := typedcsv.NewSplitter(d).Delimiters()
	if full.Quote == full.Comma || full.Quote == full.Line || full.Comma == full.Line {
		return typedcsv.Delimiters{}, fmt.Errorf("delimiters %q, %q and %q must differ", full.Quote, full.Comma, full.Line)
	}
	return d, nil
}

// Schema builds the column schema from the column descriptors.
func (c *Config) Schema() (*typedcsv.Schema, error) {
	if len(c.Columns) == 0 {
		return nil, errNoColumns
	}
	cols := make([]typedcsv.Column, 0, len(c.Columns))
	for _, desc := range c.Columns {
		col, err := ParseColumn(desc)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	schema, err := typedcsv.NewSchema(cols...)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

// ParseColumn parses "name:type" or "name:time:layout". Layouts may contain colons.
func ParseColumn(desc string) (typedcsv.Column, error) {
	parts := strings.SplitN(desc, ":", 3)
	if len(parts) < 2 {
		return typedcsv.Column{}, fmt.Errorf("column %q: expected name:type", desc)
	}
	name := strings.TrimSpace(parts[0])
	kind, err := typedcsv.ParseKind(parts[1])
	if err != nil {
		return typedcsv.Column{}, fmt.Errorf("column %q: %w", desc, err)
	}
	if len(parts) == 3 {
		if kind != typedcsv.KindTime {
			return typedcsv.Column{}, fmt.Errorf("column %q: only time columns take a layout", desc)
		}
		return typedcsv.TimeCol(name, parts[2]), nil
	}
	return typedcsv.Col(name, kind), nil
}
