// Package pgcopy streams parsed rows into a PostgreSQL table.
//
// A Source adapts a csvparsers.Reader to the pgx COPY protocol, so a
// delimited file is loaded in a single pass without being materialized in
// memory:
//
//	r, _ := csvparsers.NewReader[Entry](file)
//	count, err := pgcopy.CopyAll(ctx, conn, pgx.Identifier{"entries"}, nil, r)
package pgcopy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	csvparsers "github.com/richardrobinson0924/CSVParsers"
)

// Conn is the subset of a pgx connection needed to run COPY FROM.  Both
// *pgx.Conn and *pgxpool.Pool satisfy it.
type Conn interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// A Source drives a reader one row per Next call, exposing each row's
// field values in column order.  It implements pgx.CopyFromSource.
type Source[Record any] struct {
	reader  *csvparsers.Reader[Record]
	current Record
	err     error
}

var _ pgx.CopyFromSource = (*Source[struct{ ID int }])(nil)

// NewSource wraps a reader for use as a pgx.CopyFromSource.  The source
// assumes exclusive use of the reader until the copy completes.
func NewSource[Record any](r *csvparsers.Reader[Record]) *Source[Record] {
	return &Source[Record]{reader: r}
}

// Next advances to the next row.  It reports false at end of input or on
// the first error; a conversion error aborts the copy rather than load a
// partial row.
func (s *Source[Record]) Next() bool {
	if s.err != nil {
		return false
	}
	row, err := s.reader.ReadRow()
	if err != nil {
		if !errors.Is(err, csvparsers.ErrEndOfStream) {
			s.err = err
		}
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's field values in column order.
func (s *Source[Record]) Values() ([]any, error) {
	return s.reader.Values(s.current), nil
}

// Err returns the error that stopped Next, if any.
func (s *Source[Record]) Err() error {
	return s.err
}

// CopyAll bulk-loads every remaining row of the reader into a table.  A
// nil columns slice uses the reader's column names.  It returns the
// number of rows written.
func CopyAll[Record any](ctx context.Context, conn Conn, table pgx.Identifier, columns []string, r *csvparsers.Reader[Record]) (int64, error) {
	if columns == nil {
		columns = r.Columns()
	}
	return conn.CopyFrom(ctx, table, columns, NewSource(r))
}
