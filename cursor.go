package csvparsers

import "errors"

// A Cursor is a single-pass, forward-only iteration handle over a Reader.
// It is either active, bound to a reader and holding the most recently
// parsed row, or exhausted, bound to nothing.  Exhaustion is terminal.
//
// The cursor does not own the reader: the reader, and transitively the
// input stream, must outlive every cursor built from it.
type Cursor[Record any] struct {
	reader  *Reader[Record]
	current Record
	err     error
}

// Begin returns an active cursor bound to r, primed with the first row.
// If the stream is already empty the cursor starts out exhausted, equal
// to End.  A conversion failure on the first row leaves the cursor active
// with a zero current row; the error is available from Err.
func Begin[Record any](r *Reader[Record]) *Cursor[Record] {
	c := &Cursor[Record]{reader: r}
	c.Advance()
	return c
}

// End returns the canonical exhausted cursor, the sentinel that iteration
// is tested against.
func End[Record any]() *Cursor[Record] {
	return &Cursor[Record]{}
}

// Advance moves the cursor to the next row.
//
// It reports (true, nil) when a fresh row was cached, and (false, nil)
// when the stream ran out and the cursor transitioned to the exhausted
// state.  Advancing a cursor that is already exhausted is a protocol
// violation and reports (false, ErrIllegalAdvance); it never silently
// no-ops.
//
// A row that fails field conversion reports (true, *FieldError): the bad
// line has been consumed, the cursor stays active with its previous row,
// and the caller decides whether to advance past it or stop.
func (c *Cursor[Record]) Advance() (bool, error) {
	if c.reader == nil {
		return false, ErrIllegalAdvance
	}
	if !c.reader.HasNext() {
		c.exhaust()
		return false, nil
	}
	row, err := c.reader.ReadRow()
	if err != nil {
		if errors.Is(err, ErrEndOfStream) {
			c.exhaust()
			return false, nil
		}
		c.err = err
		return true, err
	}
	c.current = row
	c.err = nil
	return true, nil
}

// Current returns the cached row.  Dereferencing an exhausted cursor
// returns the zero record and ErrNoCurrentRow rather than stale data.
func (c *Cursor[Record]) Current() (Record, error) {
	if c.reader == nil {
		var zero Record
		return zero, ErrNoCurrentRow
	}
	return c.current, nil
}

// Err returns the conversion error recorded by the last Advance, if any.
func (c *Cursor[Record]) Err() error {
	return c.err
}

// Exhausted reports whether the cursor has reached its terminal state.
func (c *Cursor[Record]) Exhausted() bool {
	return c.reader == nil
}

// NotEqual reports whether two cursors differ for the purpose of loop
// termination.  Cursors are compared by reader identity: all exhausted
// cursors are equal to each other and to End, and an active cursor is
// equal only to a cursor bound to the same reader.  Comparing two
// independently primed cursors over one reader is not a supported use.
func (c *Cursor[Record]) NotEqual(other *Cursor[Record]) bool {
	if other == nil {
		return c.reader != nil
	}
	return c.reader != other.reader
}

func (c *Cursor[Record]) exhaust() {
	var zero Record
	c.reader = nil
	c.current = zero
	c.err = nil
}
