package csvparsers

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-module/carbon/v2"
)

// A parseFunc converts one raw field to a value of its registered type.
type parseFunc func(string) (any, error)

var (
	parsersMu sync.RWMutex
	parsers   = map[reflect.Type]parseFunc{}
)

// RegisterParser makes T usable as a field type, replacing any parser
// previously registered for T.  The parser receives the raw field text,
// exactly as delimited by the separator.
//
// Registration is global, like the set of built-in parsers it extends.
// Readers look parsers up when they are constructed, so a registration
// only affects readers created after it.
func RegisterParser[T any](parse func(string) (T, error)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers[t] = func(s string) (any, error) {
		return parse(s)
	}
}

func parserFor(t reflect.Type) (parseFunc, bool) {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	p, ok := parsers[t]
	return p, ok
}

// Built-in parsers follow the extraction convention of formatted input
// streams: numeric, boolean and temporal parsers accept surrounding ASCII
// whitespace, and every parser maps the empty field to the type's zero
// value.  The string parser returns the field verbatim.
func init() {
	RegisterParser(func(s string) (string, error) { return s, nil })
	RegisterParser(func(s string) ([]byte, error) { return []byte(s), nil })

	RegisterParser(boolParser)
	RegisterParser(intParser[int](strconv.IntSize))
	RegisterParser(intParser[int8](8))
	RegisterParser(intParser[int16](16))
	RegisterParser(intParser[int32](32))
	RegisterParser(intParser[int64](64))
	RegisterParser(uintParser[uint](strconv.IntSize))
	RegisterParser(uintParser[uint8](8))
	RegisterParser(uintParser[uint16](16))
	RegisterParser(uintParser[uint32](32))
	RegisterParser(uintParser[uint64](64))
	RegisterParser(floatParser[float32](32))
	RegisterParser(floatParser[float64](64))

	RegisterParser(durationParser)
	RegisterParser(timeParser)
	RegisterParser(carbonParser)
}

func boolParser(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func intParser[T int | int8 | int16 | int32 | int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(s, 10, bits)
		return T(n), err
	}
}

func uintParser[T uint | uint8 | uint16 | uint32 | uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseUint(s, 10, bits)
		return T(n), err
	}
}

func floatParser[T float32 | float64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, bits)
		return T(f), err
	}
}

func durationParser(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// timeParser delegates to carbon so that fields can hold dates in any of
// the common layouts ("2006-01-02", RFC 3339, "2006-01-02 15:04:05", ...)
// without per-file layout configuration.
func timeParser(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	c := carbon.Parse(s)
	if c.Error != nil {
		return time.Time{}, c.Error
	}
	return c.ToStdTime(), nil
}

func carbonParser(s string) (carbon.Carbon, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return carbon.Carbon{}, nil
	}
	c := carbon.Parse(s)
	return c, c.Error
}
