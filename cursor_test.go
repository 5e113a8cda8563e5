package csvparsers

import (
	"errors"
	"testing"
)

func TestCursorIteratesInOrder(t *testing.T) {
	r := newTestReader[entry](t, "1,hello\n2,world\n")

	var rows []entry
	for c := Begin(r); c.NotEqual(End[entry]()); c.Advance() {
		row, err := c.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		rows = append(rows, row)
	}

	want := []entry{{1, "hello"}, {2, "world"}}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		if row != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
}

func TestCursorEmptyInput(t *testing.T) {
	r := newTestReader[entry](t, "")

	c := Begin(r)
	if c.NotEqual(End[entry]()) {
		t.Error("Begin over empty input should equal End")
	}
	if !c.Exhausted() {
		t.Error("cursor should be exhausted")
	}
	if _, err := c.Current(); !errors.Is(err, ErrNoCurrentRow) {
		t.Errorf("Current on exhausted cursor = %v, want ErrNoCurrentRow", err)
	}
}

func TestCursorIllegalAdvance(t *testing.T) {
	c := End[entry]()

	for i := 0; i < 3; i++ {
		ok, err := c.Advance()
		if ok || !errors.Is(err, ErrIllegalAdvance) {
			t.Errorf("Advance %d on exhausted cursor = (%v, %v), want (false, ErrIllegalAdvance)", i+1, ok, err)
		}
	}
}

func TestCursorExhaustionIsTerminal(t *testing.T) {
	r := newTestReader[entry](t, "1,a\n")

	c := Begin(r)
	if ok, err := c.Advance(); ok || err != nil {
		t.Fatalf("Advance past last row = (%v, %v), want (false, nil)", ok, err)
	}
	if !c.Exhausted() {
		t.Fatal("cursor should be exhausted after the last row")
	}
	if ok, err := c.Advance(); ok || !errors.Is(err, ErrIllegalAdvance) {
		t.Errorf("Advance on exhausted cursor = (%v, %v), want (false, ErrIllegalAdvance)", ok, err)
	}
}

func TestCursorSentinelEquality(t *testing.T) {
	r := newTestReader[entry](t, "1,a\n")

	active := Begin(r)
	if !active.NotEqual(End[entry]()) {
		t.Error("an active cursor must not equal End")
	}
	if End[entry]().NotEqual(End[entry]()) {
		t.Error("two End sentinels must be equal")
	}
	if active.NotEqual(active) {
		t.Error("a cursor must equal itself")
	}

	// Drain it: equality with the sentinel flips exactly once.
	active.Advance()
	if active.NotEqual(End[entry]()) {
		t.Error("a drained cursor must equal End")
	}
}

func TestCursorConversionFailure(t *testing.T) {
	r := newTestReader[entry](t, "1,a\nbad,b\n3,c\n")

	c := Begin(r)
	row, _ := c.Current()
	if row != (entry{1, "a"}) {
		t.Fatalf("first row = %+v, want {1 a}", row)
	}

	// The bad line keeps the cursor active on its previous row and
	// reports the conversion error.
	ok, err := c.Advance()
	if !ok {
		t.Fatal("cursor should stay active after a conversion failure")
	}
	var ferr *FieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("Advance error = %v, want *FieldError", err)
	}
	if c.Err() == nil {
		t.Error("Err should report the conversion failure")
	}
	if row, _ := c.Current(); row != (entry{1, "a"}) {
		t.Errorf("current row = %+v, want previous row {1 a}", row)
	}

	// Advancing again moves past the bad line.
	if ok, err := c.Advance(); !ok || err != nil {
		t.Fatalf("Advance past bad line = (%v, %v), want (true, nil)", ok, err)
	}
	if c.Err() != nil {
		t.Error("Err should be cleared by a successful advance")
	}
	if row, _ := c.Current(); row != (entry{3, "c"}) {
		t.Errorf("current row = %+v, want {3 c}", row)
	}
}

func TestCursorBeginDoesNotOwnReader(t *testing.T) {
	r := newTestReader[entry](t, "1,a\n2,b\n")

	// Two phases of one iteration chain over the same reader: the cursor
	// only caches one row, the reader keeps the stream position.
	c := Begin(r)
	if row, _ := c.Current(); row != (entry{1, "a"}) {
		t.Fatalf("primed row = %+v, want {1 a}", row)
	}
	if !r.HasNext() {
		t.Error("reader should still have the second line buffered")
	}
}
