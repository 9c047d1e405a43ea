package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oleg578/typedcsv/internal/config"
	"github.com/oleg578/typedcsv/internal/logger"
)

var (
	Version    string
	Commit     string
	CommitDate string
)

const envPrefix = "TYPEDCSV"

// ExitError carries a non-zero exit code for a run that already reported its outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// configKeys maps config keys to the flags that override them.
var configKeys = map[string]string{
	"log.level":               "log-level",
	"log.format":              "log-format",
	"delimiters.quote":        "quote",
	"delimiters.column":       "sep",
	"delimiters.line":         "line-sep",
	"columns":                 "columns",
	"reader.offset":           "offset",
	"reader.skip_empty_lines": "skip-empty-lines",
	"reader.max_line_size":    "max-line-size",
	"on_error":                "on-error",
	"output.format":           "format",
	"validate.jobs":           "jobs",
	"validate.max_reported":   "max-reported",
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				CommitDate = setting.Value
			}
		}
	}
	if Version != "" {
		return fmt.Sprintf("%s %s %s", Version, Commit, CommitDate)
	}
	return fmt.Sprintf("%s %s", Commit, CommitDate)
}

// NewRootCmd builds the command tree. Each call returns fresh flags and config.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	cfg := config.NewConfig()

	root := &cobra.Command{
		Use:           "typedcsv",
		Short:         "Parse and validate delimited text files against a typed column schema",
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfgFile, cfg); err != nil {
				return err
			}
			l, err := logger.SetDefaultContextLogger(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			log.Logger = l
			cmd.SetContext(l.WithContext(cmd.Context()))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolP("help", "", false, "help for typedcsv")
	pf.StringVar(&cfgFile, "config", "", "config file")
	pf.String("log-format", cfg.Log.Format, "logging format [text|json]")
	pf.String("log-level", cfg.Log.Level,
		fmt.Sprintf(
			"logging level %s|%s|%s|%s",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
	)
	pf.String("quote", cfg.Delimiters.Quote, "quote character: a character, an escape like \\t or a name like apostrophe")
	pf.String("sep", cfg.Delimiters.Column, "column separator: a character, an escape like \\t or a name like tab")
	pf.String("line-sep", cfg.Delimiters.Line, "line separator: a character, an escape like \\n or a name like pipe")
	pf.StringSlice("columns", nil, "column schema as name:type or name:time:layout, comma separated")
	pf.Int("offset", cfg.Reader.Offset, "number of leading lines to skip, such as a header")
	pf.Bool("skip-empty-lines", cfg.Reader.SkipEmptyLines, "pass over blank lines instead of reporting them")
	pf.Int("max-line-size", cfg.Reader.MaxLineSize, "longest accepted line in bytes")
	pf.Int("max-reported", cfg.Validate.MaxReported, "number of bad lines logged per source")

	root.AddCommand(newParseCmd(cfg), newValidateCmd(cfg), newShowConfigCmd(cfg))

	root.InitDefaultCompletionCmd()
	root.InitDefaultHelpCmd()
	for _, c := range root.Commands() {
		if c.Name() == "completion" || c.Name() == "help" {
			c.DisableFlagParsing = true
			for _, subc := range c.Commands() {
				subc.DisableFlagParsing = true
			}
		}
	}
	return root
}

// loadConfig layers flags over environment over the config file over defaults into cfg.
// Validation is left to the run functions so show-config can print an incomplete config.
func loadConfig(cmd *cobra.Command, cfgFile string, cfg *config.Config) error {
	v := viper.New()
	for key, name := range configKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading from config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	decoderCfg := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = config.DecodeHook()
		dc.ErrorUnused = true
	}
	if err := v.Unmarshal(cfg, decoderCfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
