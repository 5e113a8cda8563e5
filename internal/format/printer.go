package format

import (
	"fmt"
	"io"
	"time"
)

// A RowPrinter writes one line per row to an output writer, each field
// rendered as name=value with colors taken from the Colorizer.
//
// The internal printing helpers do not return errors: output failure is
// exceptional here and the only sensible outcome is to stop, so they
// panic with a *PrinterError which the exported methods recover into an
// ordinary error return.
type RowPrinter struct {
	Out       io.Writer
	Colorizer *Colorizer
}

// A PrinterError contains an error that occurred while sending output.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer error: %s", e.Err)
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

// catchPrinterError recovers a panicking *PrinterError into err.
func catchPrinterError(err *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*PrinterError)
		if !ok {
			panic(r)
		}
		*err = perr
	}
}

// PrintHeader writes the column names on one line.
func (p *RowPrinter) PrintHeader(names []string) (err error) {
	defer catchPrinterError(&err)
	for i, name := range names {
		if i > 0 {
			p.printBytes([]byte("  "))
		}
		p.printColored(p.Colorizer.nameCode(), []byte(name))
	}
	p.printBytes([]byte{'\n'})
	return nil
}

// PrintRow writes one row on one line, pairing each column name with its
// rendered value.
func (p *RowPrinter) PrintRow(names []string, values []any) (err error) {
	defer catchPrinterError(&err)
	for i, v := range values {
		if i > 0 {
			p.printBytes([]byte("  "))
		}
		p.printColored(p.Colorizer.nameCode(), []byte(names[i]))
		p.printBytes([]byte{'='})
		p.printColored(p.Colorizer.kindCode(KindOf(v)), []byte(renderValue(v)))
	}
	p.printBytes([]byte{'\n'})
	return nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (p *RowPrinter) printColored(code, b []byte) {
	if code != nil {
		p.printBytes(code)
	}
	p.printBytes(b)
	if code != nil {
		p.printBytes(p.Colorizer.resetCode())
	}
}

func (p *RowPrinter) printBytes(b []byte) {
	if _, err := p.Out.Write(b); err != nil {
		panic(&PrinterError{Err: err})
	}
}
