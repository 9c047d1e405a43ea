package cmdrun

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oleg578/typedcsv/internal/config"
)

// RunShowConfig prints cfg as YAML.
func RunShowConfig(cfg *config.Config, out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
