package typedcsv

const (
	// DefaultQuote is the field quote used when Delimiters.Quote is zero.
	DefaultQuote byte = '"'
	// DefaultComma is the column separator used when Delimiters.Comma is zero.
	DefaultComma byte = ','
	// DefaultLine is the line separator used when Delimiters.Line is zero.
	DefaultLine byte = '\n'
)

// Delimiters is the set of single-byte separators used for one parsing session.
// Zero fields fall back to the defaults. The bytes may coincide; the resulting
// behaviour is then the caller's responsibility.
type Delimiters struct {
	// Quote encloses fields that contain the column separator. Default is '"'.
	Quote byte
	// Comma separates columns. Default is ','.
	Comma byte
	// Line separates records. Default is '\n'.
	Line byte
}

// DefaultDelimiters returns the comma separated, double quoted, newline terminated set.
func DefaultDelimiters() Delimiters {
	return Delimiters{Quote: DefaultQuote, Comma: DefaultComma, Line: DefaultLine}
}

func (d Delimiters) withDefaults() Delimiters {
	if d.Quote == 0 {
		d.Quote = DefaultQuote
	}
	if d.Comma == 0 {
		d.Comma = DefaultComma
	}
	if d.Line == 0 {
		d.Line = DefaultLine
	}
	return d
}

// isSpace reports whether b is ASCII whitespace.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// trimSpace removes leading and trailing ASCII whitespace, keeping interior whitespace.
func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}
