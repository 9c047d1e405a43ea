package config

import (
	"errors"
	"fmt"
	"strings"
)

var errBadDelimiter = errors.New("delimiter must be a single ASCII character")

var delimiterNames = map[string]byte{
	"tab":        '\t',
	"comma":      ',',
	"semicolon":  ';',
	"colon":      ':',
	"pipe":       '|',
	"space":      ' ',
	"newline":    '\n',
	"lf":         '\n',
	"cr":         '\r',
	"quote":      '"',
	"apostrophe": '\'',
}

var delimiterEscapes = map[string]byte{
	`\t`: '\t',
	`\n`: '\n',
	`\r`: '\r',
	`\\`: '\\',
}

// ParseDelimiter accepts one ASCII character, an escape such as `\t`, or a name
// such as "tab". An empty value yields 0 which selects the default delimiter.
func ParseDelimiter(v string) (byte, error) {
	if v == "" {
		return 0, nil
	}
	if len(v) == 1 {
		if v[0] > 0x7f {
			return 0, fmt.Errorf("%q: %w", v, errBadDelimiter)
		}
		return v[0], nil
	}
	if b, ok := delimiterEscapes[v]; ok {
		return b, nil
	}
	if b, ok := delimiterNames[strings.ToLower(strings.TrimSpace(v))]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%q: %w", v, errBadDelimiter)
}
