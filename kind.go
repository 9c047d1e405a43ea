package typedcsv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/xhit/go-str2duration/v2"
)

// Kind is the declared type of a schema column.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindInt64
	KindUint64
	KindFloat64
	KindFloat32
	KindBool
	KindDecimal
	KindDuration
	KindTime
	KindUUID
	// KindCustom columns decode with a caller supplied DecodeFunc.
	KindCustom
)

var (
	errEmptyField = errors.New("empty field")
	errNotDecimal = errors.New("not a decimal number")
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInt:      "int",
	KindInt64:    "int64",
	KindUint64:   "uint64",
	KindFloat64:  "float64",
	KindFloat32:  "float32",
	KindBool:     "bool",
	KindDecimal:  "decimal",
	KindDuration: "duration",
	KindTime:     "time",
	KindUUID:     "uuid",
	KindCustom:   "custom",
}

var kindAliases = map[string]Kind{
	"text":      KindString,
	"str":       KindString,
	"integer":   KindInt,
	"long":      KindInt64,
	"uint":      KindUint64,
	"number":    KindFloat64,
	"double":    KindFloat64,
	"float":     KindFloat32,
	"boolean":   KindBool,
	"numeric":   KindDecimal,
	"interval":  KindDuration,
	"timestamp": KindTime,
	"date":      KindTime,
}

// String returns the canonical kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind name such as "string", "float64" or "number".
// KindCustom cannot be named; it is created with Custom.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, kn := range kindNames {
		if kn == n && k != KindCustom {
			return k, nil
		}
	}
	if k, ok := kindAliases[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown column type %q", name)
}

// DecodeFunc converts one trimmed raw field into a column value.
type DecodeFunc func(raw string) (any, error)

// FormatFunc renders a column value as field text.
type FormatFunc func(v any) (string, error)

// decoderFor returns the decode function of a built-in kind. layout is used by KindTime only.
func decoderFor(k Kind, layout string) (DecodeFunc, error) {
	switch k {
	case KindString:
		return decodeString, nil
	case KindInt:
		return nonEmpty(func(s string) (any, error) {
			return strconv.ParseInt(s, 10, strconv.IntSize)
		}, func(v any) any { return int(v.(int64)) }), nil
	case KindInt64:
		return nonEmpty(func(s string) (any, error) {
			return strconv.ParseInt(s, 10, 64)
		}, nil), nil
	case KindUint64:
		return nonEmpty(func(s string) (any, error) {
			return strconv.ParseUint(s, 10, 64)
		}, nil), nil
	case KindFloat64:
		return nonEmpty(func(s string) (any, error) {
			if !isDecimalFloat(s) {
				return nil, errNotDecimal
			}
			return cast.ToFloat64E(s)
		}, nil), nil
	case KindFloat32:
		return nonEmpty(func(s string) (any, error) {
			if !isDecimalFloat(s) {
				return nil, errNotDecimal
			}
			return cast.ToFloat32E(s)
		}, nil), nil
	case KindBool:
		return nonEmpty(func(s string) (any, error) {
			return cast.ToBoolE(s)
		}, nil), nil
	case KindDecimal:
		return nonEmpty(func(s string) (any, error) {
			return decimal.NewFromString(s)
		}, nil), nil
	case KindDuration:
		return nonEmpty(func(s string) (any, error) {
			return str2duration.ParseDuration(s)
		}, nil), nil
	case KindTime:
		if layout != "" {
			return nonEmpty(func(s string) (any, error) {
				return time.Parse(layout, s)
			}, nil), nil
		}
		return nonEmpty(func(s string) (any, error) {
			return cast.ToTimeInDefaultLocationE(s, time.UTC)
		}, nil), nil
	case KindUUID:
		return nonEmpty(func(s string) (any, error) {
			return uuid.Parse(s)
		}, nil), nil
	}
	return nil, fmt.Errorf("column type %s has no built-in decoder", k)
}

func decodeString(raw string) (any, error) {
	return raw, nil
}

// isDecimalFloat reports whether s is spelled with digits, a sign, a point and an
// exponent only. NaN, infinities and hex floats are not data values.
func isDecimalFloat(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// nonEmpty rejects empty fields before calling parse and optionally narrows the parsed value.
func nonEmpty(parse func(string) (any, error), narrow func(any) any) DecodeFunc {
	return func(raw string) (any, error) {
		if raw == "" {
			return nil, errEmptyField
		}
		v, err := parse(raw)
		if err != nil {
			return nil, err
		}
		if narrow != nil {
			v = narrow(v)
		}
		return v, nil
	}
}

// formatterFor returns the format function of a built-in kind.
func formatterFor(k Kind, layout string) FormatFunc {
	switch k {
	case KindTime:
		if layout == "" {
			layout = time.RFC3339Nano
		}
		return func(v any) (string, error) {
			t, ok := v.(time.Time)
			if !ok {
				return "", fmt.Errorf("%w: %T is not time.Time", ErrColumnType, v)
			}
			return t.Format(layout), nil
		}
	case KindFloat64:
		return func(v any) (string, error) {
			f, ok := v.(float64)
			if !ok {
				return cast.ToStringE(v)
			}
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case KindFloat32:
		return func(v any) (string, error) {
			f, ok := v.(float32)
			if !ok {
				return cast.ToStringE(v)
			}
			return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
		}
	}
	return formatAny
}

// formatAny renders strings, numbers, booleans and fmt.Stringer values such as
// decimal.Decimal, uuid.UUID and time.Duration.
func formatAny(v any) (string, error) {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return cast.ToStringE(v)
}
