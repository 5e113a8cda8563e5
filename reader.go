package csvparsers

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"reflect"
	"strings"
)

// DefaultSeparator is the field separator used when none is configured.
const DefaultSeparator byte = ','

// An Option configures a Reader.
type Option func(*config)

type config struct {
	sep    byte
	header bool
}

// WithSeparator sets the single-character field separator.  The default
// is a comma.
func WithSeparator(sep byte) Option {
	return func(c *config) { c.sep = sep }
}

// WithHeader makes the reader consume the first line as a header row and
// bind columns to fields by name instead of by position.  Header names
// are matched against field names (or csv struct tags) exactly; columns
// with no matching field are ignored, and fields with no matching column
// parse from empty text.
func WithHeader() Option {
	return func(c *config) { c.header = true }
}

// A Reader converts lines read from an input stream into values of a
// record type.  It owns no row state of its own: each ReadRow call reads
// exactly one line, so the only thing that changes between calls is the
// position of the underlying stream.
//
// The Reader does not open, close or rewind the stream, and the stream
// must not be shared with another Reader while iteration is in progress.
type Reader[Record any] struct {
	in     *bufio.Reader
	sep    byte
	header bool

	schema  *schema
	binding []int // header mode: input column per field, -1 for absent
	line    int
}

// NewReader binds a Reader to an input stream.  The record type is fixed
// at the call site: a struct whose exported fields, in declaration order,
// are the column types, or any single type with a registered parser.
//
// NewReader panics if in is nil and returns an error if Record contains a
// field type with no registered parser.  No input is read until the first
// row is requested.
func NewReader[Record any](in io.Reader, opts ...Option) (*Reader[Record], error) {
	sch, err := schemaFor(reflect.TypeOf((*Record)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return newReader[Record](in, sch, opts), nil
}

// NewRowReader binds a Reader whose record type is Row, with the column
// layout given by an explicit ordered list of field descriptors instead
// of a struct type.  It returns an error if a descriptor's type has no
// registered parser.
func NewRowReader(in io.Reader, fields []Field, opts ...Option) (*Reader[Row], error) {
	sch, err := rowSchemaFor(fields)
	if err != nil {
		return nil, err
	}
	return newReader[Row](in, sch, opts), nil
}

func newReader[Record any](in io.Reader, sch *schema, opts []Option) *Reader[Record] {
	if in == nil {
		panic("csvparsers: input stream cannot be nil")
	}
	cfg := config{sep: DefaultSeparator}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reader[Record]{
		in:     bufio.NewReader(in),
		sep:    cfg.sep,
		header: cfg.header,
		schema: sch,
	}
}

// Columns returns the field names of the record type, in column order.
func (r *Reader[Record]) Columns() []string {
	names := make([]string, len(r.schema.fields))
	for i, f := range r.schema.fields {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values of a record, in column order.
func (r *Reader[Record]) Values(rec Record) []any {
	vals := make([]any, len(r.schema.fields))
	switch r.schema.kind {
	case rowSchema:
		copy(vals, any(rec).(Row))
	case scalarSchema:
		vals[0] = rec
	default:
		rv := reflect.ValueOf(rec)
		for i, f := range r.schema.fields {
			vals[i] = rv.FieldByIndex(f.index).Interface()
		}
	}
	return vals
}

// HasNext reports whether the underlying stream has input left.  It is a
// best-effort predicate based on a single peeked byte: it never consumes
// input and calling it repeatedly has no effect on the stream position.
func (r *Reader[Record]) HasNext() bool {
	_, err := r.in.Peek(1)
	return err == nil
}

// ReadRow reads the next line and converts it into one record.
//
// The line is split on the separator into exactly as many fields as the
// record declares: a line with too few segments parses the missing fields
// from empty text, and content past the last declared field is discarded.
// Conversion failures are reported as a *FieldError naming the line and
// field; the line is consumed either way.
//
// ReadRow returns ErrEndOfStream if the stream is exhausted at entry.
func (r *Reader[Record]) ReadRow() (Record, error) {
	var zero Record
	if !r.HasNext() {
		return zero, ErrEndOfStream
	}
	if r.header && r.binding == nil {
		if err := r.readHeader(); err != nil {
			return zero, err
		}
		if !r.HasNext() {
			return zero, ErrEndOfStream
		}
	}

	line, err := r.readLine()
	if err != nil {
		return zero, err
	}
	return r.decode(line)
}

// ReadAll exhausts the reader, collecting records until end of stream and
// returning the first conversion or read error encountered.
func (r *Reader[Record]) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.ReadRow()
		if errors.Is(err, ErrEndOfStream) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// Rows returns a single-use iterator over the remaining records.  A
// conversion failure is yielded alongside the zero record and iteration
// continues with the next line, so callers choose whether a bad row stops
// the loop.
func (r *Reader[Record]) Rows() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.ReadRow()
			if errors.Is(err, ErrEndOfStream) {
				return
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

// readLine consumes one line including its terminator, accepting both
// "\n" and "\r\n".  A final line without a terminator is still a line.
func (r *Reader[Record]) readLine() (string, error) {
	s, err := r.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	r.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// readHeader consumes the header line and binds each field to the column
// whose header matches its name.
func (r *Reader[Record]) readHeader() error {
	line, err := r.readLine()
	if err != nil {
		return err
	}
	names := strings.Split(line, string(r.sep))
	r.binding = make([]int, len(r.schema.fields))
	for i, f := range r.schema.fields {
		r.binding[i] = -1
		for j, name := range names {
			if name == f.Name {
				r.binding[i] = j
				break
			}
		}
	}
	return nil
}

func (r *Reader[Record]) decode(line string) (Record, error) {
	var zero Record
	segs := r.splitRow(line)

	switch r.schema.kind {
	case scalarSchema:
		f := r.schema.fields[0]
		v, err := f.parse(segs[0])
		if err != nil {
			return zero, r.fieldError(0, err)
		}
		return v.(Record), nil
	case rowSchema:
		row := make(Row, len(segs))
		for i, f := range r.schema.fields {
			v, err := f.parse(segs[i])
			if err != nil {
				return zero, r.fieldError(i, err)
			}
			row[i] = v
		}
		return any(row).(Record), nil
	default:
		rv := reflect.New(r.schema.typ).Elem()
		for i, f := range r.schema.fields {
			v, err := f.parse(segs[i])
			if err != nil {
				return zero, r.fieldError(i, err)
			}
			rv.FieldByIndex(f.index).Set(reflect.ValueOf(v))
		}
		return rv.Interface().(Record), nil
	}
}

// splitRow cuts a line into exactly one segment per declared field.  In
// positional mode each field takes the text up to the next separator, so
// a short line leaves trailing fields empty and a long line's extra
// segments are never looked at.  In header mode segments are taken from
// the columns bound by the header line.
func (r *Reader[Record]) splitRow(line string) []string {
	n := len(r.schema.fields)
	segs := make([]string, n)

	if r.binding != nil {
		cols := strings.Split(line, string(r.sep))
		for i, col := range r.binding {
			if col >= 0 && col < len(cols) {
				segs[i] = cols[col]
			}
		}
		return segs
	}

	rest := line
	exhausted := false
	for i := range segs {
		if exhausted {
			continue
		}
		if j := strings.IndexByte(rest, r.sep); j >= 0 {
			segs[i] = rest[:j]
			rest = rest[j+1:]
		} else {
			segs[i] = rest
			exhausted = true
		}
	}
	return segs
}

func (r *Reader[Record]) fieldError(i int, err error) error {
	return &FieldError{
		Line:   r.line,
		Column: i + 1,
		Field:  r.schema.fields[i].Name,
		Err:    err,
	}
}
