// Package csvparsers implements a streaming, statically typed row parser
// for delimiter-separated text.
//
// A Reader is bound to an already open input stream and a record type
// fixed at the call site.  Each line of input becomes one value of the
// record type: the line is split on a single-character separator into
// exactly as many fields as the record declares, and each field is
// converted with the parser registered for its type.  Nothing is read
// ahead of the current line, so arbitrarily large inputs are processed in
// constant memory.
//
//	type Entry struct {
//		ID   int
//		Name string
//	}
//
//	r, err := csvparsers.NewReader[Entry](file)
//	if err != nil {
//		// handle error
//	}
//	for entry, err := range r.Rows() {
//		// entry is an Entry parsed from one line
//	}
//
// Iteration can also be driven explicitly through a Cursor, a single-pass
// forward-only handle with Begin/End/Advance/Current operations, which is
// what Rows is built on.
//
// Parsers for additional field types may be added with RegisterParser.
// When the column layout is only known at run time, NewRowReader accepts
// an ordered list of Field descriptors instead of a struct type, and
// ParseFields builds such a list from a compact "name:type" spec string.
//
// The package reads lines separated by '\n' or "\r\n" and knows nothing
// else about the input format: there is no quoting, no escaping and no
// multi-character separator support.  Opening, closing and positioning the
// input stream is the caller's responsibility.
//
// The sub-package pgcopy streams parsed rows into a PostgreSQL table, and
// the CLI in cmd/csvp pretty-prints or bulk-loads delimited files using a
// run-time column spec.
package csvparsers
