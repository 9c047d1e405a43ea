package typedcsv

import "errors"

var errNilSchema = errors.New("typedcsv: parser schema cannot be nil")

// Parser turns raw lines into typed rows. It pairs a Splitter with a Schema and,
// like both, is immutable and safe for concurrent use.
type Parser struct {
	splitter *Splitter
	schema   *Schema
}

// NewParser returns a Parser decoding lines with schema, split with d.
func NewParser(schema *Schema, d Delimiters) (*Parser, error) {
	if schema == nil {
		return nil, errNilSchema
	}
	if schema.Len() == 0 {
		return nil, errEmptySchema
	}
	return &Parser{splitter: NewSplitter(d), schema: schema}, nil
}

// Schema returns the row schema.
func (p *Parser) Schema() *Schema {
	return p.schema
}

// Delimiters returns the effective delimiter set.
func (p *Parser) Delimiters() Delimiters {
	return p.splitter.Delimiters()
}

// ParseLine splits and decodes one line. A line holding nothing but whitespace
// fails with ErrEmptyLine before splitting is attempted.
func (p *Parser) ParseLine(line string, lineNum int) (Row, error) {
	if isBlank(line, p.splitter.delims.Comma) {
		return Row{}, &ParseError{Line: lineNum, Err: ErrEmptyLine}
	}
	fields, err := p.splitter.Split(line, lineNum)
	if err != nil {
		return Row{}, err
	}
	return p.schema.Decode(fields, lineNum)
}

// isBlank reports whether line holds only whitespace other than the column separator.
func isBlank(line string, comma byte) bool {
	for i := 0; i < len(line); i++ {
		if line[i] == comma || !isSpace(line[i]) {
			return false
		}
	}
	return true
}
