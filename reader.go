package typedcsv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	defaultBufferSize  = 1 << 10 // 1024 bytes
	defaultMaxLineSize = 1 << 20 // 1 MiB
)

// Reader is a line cursor: it cuts the source on the parser's line separator
// and decodes each line with the Parser. A malformed line is reported by Read
// and the next call continues with the following line, so the caller decides
// whether to skip, log or abort.
type Reader struct {
	src    *bufio.Scanner
	parser *Parser

	// Offset is the number of leading lines skipped before the first row, such as a header.
	// The source must hold at least one line past Offset when Offset is positive.
	Offset int
	// SkipEmptyLines makes Read pass over blank lines instead of reporting ErrEmptyLine.
	SkipEmptyLines bool
	// MaxLineSize bounds the length of one line in bytes. Zero means 1 MiB.
	// It is fixed by the first call to Read.
	MaxLineSize int

	line     int
	started  bool
	finished bool
}

// NewReader creates a Reader that consumes lines from r and decodes them with p,
// panicking if r or p is nil.
func NewReader(r io.Reader, p *Parser) *Reader {
	if r == nil {
		panic("typedcsv: reader source cannot be nil")
	}
	if p == nil {
		panic("typedcsv: reader parser cannot be nil")
	}
	return &Reader{
		src:    bufio.NewScanner(r),
		parser: p,
	}
}

// Line returns the 1-based number of the last line read, counting skipped lines.
func (r *Reader) Line() int {
	return r.line
}

// Read decodes the next line. It returns io.EOF when no lines remain, and a
// *ParseError for a line that cannot be decoded.
func (r *Reader) Read() (Row, error) {
	if r == nil || r.src == nil || r.finished {
		return Row{}, io.EOF
	}
	if !r.started {
		if err := r.start(); err != nil {
			r.finished = true
			return Row{}, err
		}
	}

	comma := r.parser.Delimiters().Comma
	for {
		text, ok, err := r.next()
		if err != nil {
			r.finished = true
			return Row{}, err
		}
		if !ok {
			r.finished = true
			if r.Offset > 0 && r.line <= r.Offset {
				return Row{}, fmt.Errorf("%w: offset %d, source has %d lines", ErrOffsetOutOfRange, r.Offset, r.line)
			}
			return Row{}, io.EOF
		}
		if r.SkipEmptyLines && isBlank(text, comma) {
			continue
		}
		return r.parser.ParseLine(text, r.line)
	}
}

// ReadAll exhausts the reader, repeatedly calling Read to collect rows until io.EOF
// and returning the accumulated rows plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (rows []Row, err error) {
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// start sizes the scanner and skips the first Offset lines.
func (r *Reader) start() error {
	r.started = true
	if r.Offset < 0 {
		return fmt.Errorf("%w: offset %d is below zero", ErrOffsetOutOfRange, r.Offset)
	}
	maxLine := r.MaxLineSize
	if maxLine <= 0 {
		maxLine = defaultMaxLineSize
	}
	r.src.Buffer(make([]byte, 0, min(defaultBufferSize, maxLine)), maxLine)
	r.src.Split(splitOn(r.parser.Delimiters().Line))

	for r.line < r.Offset {
		_, ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: offset %d, source has %d lines", ErrOffsetOutOfRange, r.Offset, r.line)
		}
	}
	return nil
}

// next returns the next raw line and advances the line counter.
func (r *Reader) next() (string, bool, error) {
	if !r.src.Scan() {
		err := r.src.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			return "", false, &ParseError{Line: r.line + 1, Err: ErrLineTooLong}
		}
		if err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	r.line++
	return r.src.Text(), true, nil
}

// splitOn returns a bufio.SplitFunc cutting lines on sep. A final line without a
// separator is returned as is.
func splitOn(sep byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, sep); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
