package csvparsers

import (
	"errors"
	"strings"
	"testing"
)

type entry struct {
	ID   int
	Name string
}

// newTestReader builds a reader over a literal input, failing the test on
// schema errors.
func newTestReader[Record any](t *testing.T, input string, opts ...Option) *Reader[Record] {
	t.Helper()
	r, err := NewReader[Record](strings.NewReader(input), opts...)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

// readOne reads a single row, failing the test on error.
func readOne[Record any](t *testing.T, r *Reader[Record]) Record {
	t.Helper()
	rec, err := r.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow: %v", err)
	}
	return rec
}

func TestReaderTypedRows(t *testing.T) {
	r := newTestReader[entry](t, "1,hello\n2,world\n")

	first := readOne(t, r)
	if first != (entry{1, "hello"}) {
		t.Errorf("first row = %+v, want {1 hello}", first)
	}
	second := readOne(t, r)
	if second != (entry{2, "world"}) {
		t.Errorf("second row = %+v, want {2 world}", second)
	}
	if r.HasNext() {
		t.Error("HasNext should be false after the last row")
	}
	if _, err := r.ReadRow(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("ReadRow past end = %v, want ErrEndOfStream", err)
	}
}

func TestReaderRowCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rows  int
	}{
		{name: "empty input", input: "", rows: 0},
		{name: "one line no terminator", input: "1,a", rows: 1},
		{name: "one line", input: "1,a\n", rows: 1},
		{name: "three lines", input: "1,a\n2,b\n3,c\n", rows: 3},
		{name: "crlf terminators", input: "1,a\r\n2,b\r\n", rows: 2},
		{name: "blank line counts", input: "1,a\n\n2,b\n", rows: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader[entry](t, tt.input)
			records, err := r.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if len(records) != tt.rows {
				t.Errorf("got %d rows, want %d", len(records), tt.rows)
			}
		})
	}
}

func TestReaderShortLine(t *testing.T) {
	type pair struct {
		A, B int
	}
	r := newTestReader[pair](t, "5\n")

	row := readOne(t, r)
	if row != (pair{5, 0}) {
		t.Errorf("row = %+v, want {5 0}: missing fields parse from empty text", row)
	}
}

func TestReaderExcessSegmentsDiscarded(t *testing.T) {
	r := newTestReader[int](t, "7,8,9\n")

	row := readOne(t, r)
	if row != 7 {
		t.Errorf("row = %d, want 7: content past the last field is discarded", row)
	}
	if r.HasNext() {
		t.Error("extra segments must not leak into a next row")
	}
}

func TestReaderCustomSeparator(t *testing.T) {
	r := newTestReader[entry](t, "1;one\n2;two\n", WithSeparator(';'))

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []entry{{1, "one"}, {2, "two"}}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestReaderHasNextIsIdempotent(t *testing.T) {
	r := newTestReader[entry](t, "1,a\n")

	for i := 0; i < 5; i++ {
		if !r.HasNext() {
			t.Fatalf("HasNext call %d = false, want true", i+1)
		}
	}
	if row := readOne(t, r); row != (entry{1, "a"}) {
		t.Errorf("row = %+v after repeated HasNext, want {1 a}", row)
	}
}

func TestReaderFieldError(t *testing.T) {
	r := newTestReader[entry](t, "1,a\noops,b\n")

	readOne(t, r)
	_, err := r.ReadRow()
	var ferr *FieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("ReadRow error = %v, want *FieldError", err)
	}
	if ferr.Line != 2 || ferr.Column != 1 || ferr.Field != "ID" {
		t.Errorf("FieldError location = line %d field %q column %d, want line 2 field \"ID\" column 1",
			ferr.Line, ferr.Field, ferr.Column)
	}
	// The bad line is consumed, so the stream is now exhausted.
	if r.HasNext() {
		t.Error("HasNext should be false after the failed row was consumed")
	}
}

func TestReaderStructTags(t *testing.T) {
	type tagged struct {
		ID       int    `csv:"id"`
		Name     string `csv:"full_name"`
		Internal string `csv:"-"`
	}
	r := newTestReader[tagged](t, "1,Alice\n")

	cols := r.Columns()
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "full_name" {
		t.Errorf("Columns() = %v, want [id full_name]", cols)
	}
	row := readOne(t, r)
	if row.ID != 1 || row.Name != "Alice" || row.Internal != "" {
		t.Errorf("row = %+v, want {1 Alice \"\"}", row)
	}
}

func TestReaderHeaderMode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []entry
	}{
		{
			name:  "columns in declaration order",
			input: "ID,Name\n1,one\n2,two\n",
			want:  []entry{{1, "one"}, {2, "two"}},
		},
		{
			name:  "columns reordered",
			input: "Name,ID\none,1\ntwo,2\n",
			want:  []entry{{1, "one"}, {2, "two"}},
		},
		{
			name:  "unknown column ignored",
			input: "ID,Extra,Name\n1,x,one\n",
			want:  []entry{{1, "one"}},
		},
		{
			name:  "missing column parses empty",
			input: "ID\n1\n",
			want:  []entry{{1, ""}},
		},
		{
			name:  "header only",
			input: "ID,Name\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader[entry](t, tt.input, WithHeader())
			records, err := r.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if len(records) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(records), len(tt.want))
			}
			for i, rec := range records {
				if rec != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, rec, tt.want[i])
				}
			}
		})
	}
}

func TestReaderRowsIterator(t *testing.T) {
	r := newTestReader[entry](t, "1,a\nbad,b\n3,c\n")

	var rows []entry
	var errs int
	for rec, err := range r.Rows() {
		if err != nil {
			errs++
			continue
		}
		rows = append(rows, rec)
	}
	if errs != 1 {
		t.Errorf("got %d row errors, want 1", errs)
	}
	want := []entry{{1, "a"}, {3, "c"}}
	if len(rows) != len(want) {
		t.Fatalf("got %d good rows, want %d", len(rows), len(want))
	}
	for i, rec := range rows {
		if rec != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestRowReader(t *testing.T) {
	fields := []Field{
		FieldOf[int]("id"),
		FieldOf[string]("name"),
		ParseField("shout", func(s string) (string, error) {
			return strings.ToUpper(s), nil
		}),
	}
	r, err := NewRowReader(strings.NewReader("1,alice,hi\n"), fields)
	if err != nil {
		t.Fatalf("NewRowReader: %v", err)
	}

	row, err := r.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow: %v", err)
	}
	if len(row) != 3 || row[0] != 1 || row[1] != "alice" || row[2] != "HI" {
		t.Errorf("row = %v, want [1 alice HI]", row)
	}
}

func TestReaderValues(t *testing.T) {
	r := newTestReader[entry](t, "1,a\n")

	vals := r.Values(readOne(t, r))
	if len(vals) != 2 || vals[0] != 1 || vals[1] != "a" {
		t.Errorf("Values = %v, want [1 a]", vals)
	}
}

func TestNewReaderRejectsBadRecordTypes(t *testing.T) {
	if _, err := NewReader[struct{ C chan int }](strings.NewReader("")); err == nil {
		t.Error("expected error for a field type with no parser")
	}
	if _, err := NewReader[map[string]int](strings.NewReader("")); err == nil {
		t.Error("expected error for a non-struct type with no parser")
	}
	if _, err := NewReader[struct{}](strings.NewReader("")); err == nil {
		t.Error("expected error for a struct with no parseable fields")
	}
	if _, err := NewRowReader(strings.NewReader(""), nil); err == nil {
		t.Error("expected error for an empty field list")
	}
}

func TestNewReaderNilStreamPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil input stream")
		}
	}()
	NewReader[entry](nil)
}
