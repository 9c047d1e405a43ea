package typedcsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var (
	errNilWriter      = errors.New("typedcsv: writer is nil")
	errWriterNoTarget = errors.New("typedcsv: writer destination cannot be nil")
	// ErrLineSeparatorInField is returned when a field holds the line separator, which no line can carry.
	ErrLineSeparatorInField = errors.New("typedcsv: field contains the line separator")
)

// Writer emits records as delimited lines that Parser reads back field for field.
// Each record is assembled in full before it reaches the buffered destination, so
// a rejected record leaves no partial line behind.
type Writer struct {
	dst  *bufio.Writer
	line []byte

	// Delimiters selects the quote, column and line separator bytes. Zero bytes use the defaults.
	Delimiters Delimiters
	// UseCRLF ends lines with "\r\n" when the line separator is '\n'.
	UseCRLF bool
	// AlwaysQuote quotes every field.
	AlwaysQuote bool

	err error
}

// NewWriter returns a Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:        bufio.NewWriterSize(w, defaultBufferSize),
		Delimiters: DefaultDelimiters(),
	}
}

// Reset switches the destination to dst and clears the sticky error. Settings are kept.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits one record followed by the line separator. A record made of a
// single blank field is quoted, otherwise it would read back as an empty line.
func (w *Writer) Write(record []string) error {
	if err := w.ready(); err != nil {
		return err
	}

	line, err := w.appendRecord(w.line[:0], record)
	if err != nil {
		return err
	}
	w.line = line
	if _, err := w.dst.Write(line); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteRow formats row with its column formatters and writes it as one record.
func (w *Writer) WriteRow(row Row) error {
	fields, err := row.Strings()
	if err != nil {
		return err
	}
	return w.Write(fields)
}

// WriteAll writes records in order, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered lines to the destination.
func (w *Writer) Flush() error {
	if err := w.ready(); err != nil {
		return err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first write or flush error.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) ready() error {
	switch {
	case w == nil:
		return errNilWriter
	case w.dst == nil:
		return errWriterNoTarget
	}
	return w.err
}

// appendRecord appends the encoded record and its line terminator to buf.
func (w *Writer) appendRecord(buf []byte, record []string) ([]byte, error) {
	d := w.Delimiters.withDefaults()
	lone := len(record) == 1 && isBlank(record[0], d.Comma)

	for i, field := range record {
		for j := 0; j < len(field); j++ {
			if field[j] == d.Line {
				return buf, fmt.Errorf("%w: field %d", ErrLineSeparatorInField, i+1)
			}
		}
		if i > 0 {
			buf = append(buf, d.Comma)
		}
		if w.AlwaysQuote || lone || needsQuote(field, d) {
			buf = appendQuoted(buf, field, d.Quote)
		} else {
			buf = append(buf, field...)
		}
	}

	if w.UseCRLF && d.Line == '\n' {
		return append(buf, '\r', '\n'), nil
	}
	return append(buf, d.Line), nil
}

// appendQuoted appends field enclosed in quote, doubling every quote inside it.
func appendQuoted(buf []byte, field string, quote byte) []byte {
	buf = append(buf, quote)
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			buf = append(buf, quote)
		}
		buf = append(buf, field[i])
	}
	return append(buf, quote)
}

// needsQuote reports whether field must be quoted to survive splitting.
func needsQuote(field string, d Delimiters) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case d.Quote, d.Comma, '\r':
			return true
		}
	}
	return false
}
