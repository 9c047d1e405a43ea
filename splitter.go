package typedcsv

// splitState is the state of the field splitter while scanning one line.
type splitState uint8

const (
	// statePlain reads unquoted field bytes.
	statePlain splitState = iota
	// stateQuoted reads bytes inside a quoted run.
	stateQuoted
)

func (s splitState) String() string {
	switch s {
	case statePlain:
		return "plain"
	case stateQuoted:
		return "quoted"
	}
	return "unknown"
}

// Splitter splits single lines into trimmed fields using a fixed delimiter set.
// A Splitter is immutable and safe for concurrent use.
type Splitter struct {
	delims Delimiters
}

// NewSplitter returns a Splitter for d, with zero delimiters replaced by the defaults.
func NewSplitter(d Delimiters) *Splitter {
	return &Splitter{delims: d.withDefaults()}
}

// Delimiters returns the effective delimiter set.
func (s *Splitter) Delimiters() Delimiters {
	return s.delims
}

// Split splits line into fields. lineNum is the 1-based line number reported in errors.
func (s *Splitter) Split(line string, lineNum int) ([]string, error) {
	return splitFields(line, lineNum, s.delims.Quote, s.delims.Comma)
}

// SplitFields splits one line, already stripped of its line separator, into
// whitespace-trimmed fields. Quoted fields may contain the column separator, and
// a doubled quote inside a quoted run stands for one literal quote. Malformed
// lines return a *ParseError wrapping ErrMisplacedQuote, ErrTrailingCharsAfterQuote
// or ErrUnterminatedQuotedField.
func SplitFields(line string, lineNum int, d Delimiters) ([]string, error) {
	d = d.withDefaults()
	return splitFields(line, lineNum, d.Quote, d.Comma)
}

func splitFields(raw string, lineNum int, quote, comma byte) ([]string, error) {
	// The separator is never trimmed off the line, so tab separated lines keep empty edge fields.
	lead, end := 0, len(raw)
	for lead < end && raw[lead] != comma && isSpace(raw[lead]) {
		lead++
	}
	for end > lead && raw[end-1] != comma && isSpace(raw[end-1]) {
		end--
	}
	line := raw[lead:end]

	fields := make([]string, 0, 8)
	buf := make([]byte, 0, len(line))
	state := statePlain
	// filled is set once the current unquoted field holds a non-whitespace byte.
	filled := false
	// escapePending is the one-quote lookahead: the previous quote was followed by another quote.
	escapePending := false

	fail := func(pos int, err error) error {
		return &ParseError{Line: lineNum, Field: len(fields) + 1, Column: lead + pos + 1, Err: err}
	}

	for i := 0; i < len(line); i++ {
		b := line[i]

		if state == statePlain {
			switch {
			case b == comma:
				fields = append(fields, trimSpace(string(buf)))
				buf = buf[:0]
				filled = false
			case b == quote:
				if filled {
					return nil, fail(i, ErrMisplacedQuote)
				}
				// Only whitespace was buffered; the quoted run starts the field.
				buf = buf[:0]
				state = stateQuoted
			default:
				if !isSpace(b) {
					filled = true
				}
				buf = append(buf, b)
			}
			continue
		}

		if b != quote {
			buf = append(buf, b)
			continue
		}
		switch {
		case escapePending:
			buf = append(buf, quote)
			escapePending = false
		case i == len(line)-1:
			state = statePlain
		case line[i+1] == quote:
			escapePending = true
		default:
			if pos := nonBlankBefore(line, i+1, comma); pos >= 0 {
				return nil, fail(pos, ErrTrailingCharsAfterQuote)
			}
			state = statePlain
		}
	}

	if state != statePlain {
		return nil, fail(len(line), ErrUnterminatedQuotedField)
	}
	fields = append(fields, trimSpace(string(buf)))
	return fields, nil
}

// nonBlankBefore returns the index of the first non-whitespace byte of line at or
// after from and before the next comma, or -1 when that span is blank.
func nonBlankBefore(line string, from int, comma byte) int {
	for i := from; i < len(line); i++ {
		b := line[i]
		if b == comma {
			return -1
		}
		if !isSpace(b) {
			return i
		}
	}
	return -1
}
