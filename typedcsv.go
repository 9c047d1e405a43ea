// # TypedCSV: Strict Line-Oriented Delimited Text Decoding for Go
//
// TypedCSV reads delimited text one line at a time and decodes every line into a
// fixed-arity row whose columns have declared types. Quoting is strict: a quote
// must open a field, every quoted run must be closed on the same line, and only
// whitespace may sit between a closing quote and the next separator.
//
// # Features
//
// - Field splitter with configurable quote and column separator bytes (`SplitFields`, `Splitter`).
// - Schema-driven decoding into immutable `Row` values with generic accessors (`Get`).
// - Line cursor over any `io.Reader` with a configurable line separator and start offset (`Reader`).
// - Row writer that emits lines the splitter reads back unchanged (`Writer`).
// - Structured errors via `ParseError`, `ArityError` and `CoercionError`, each matching a sentinel through `errors.Is`.
//
// # Getting Started
//
//	schema, _ := typedcsv.NewSchema(
//		typedcsv.Col("product", typedcsv.KindString),
//		typedcsv.Col("price", typedcsv.KindFloat64),
//	)
//	p, _ := typedcsv.NewParser(schema, typedcsv.Delimiters{Comma: ';'})
//	row, err := p.ParseLine(`"bolts; hex";3.5`, 1)
package typedcsv
