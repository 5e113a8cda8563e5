// Package format renders parsed rows as colorized terminal output.
package format

import (
	"time"

	"github.com/golang-module/carbon/v2"
)

// A Kind classifies a field value for colorizing.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Time
)

// KindOf classifies a parsed field value.  Values of unknown types render
// like strings.
func KindOf(v any) Kind {
	switch v.(type) {
	case string, []byte:
		return String
	case bool:
		return Bool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Number
	case time.Time, time.Duration, carbon.Carbon:
		return Time
	default:
		return String
	}
}

// A Colorizer maps column names and field kinds to ANSI color codes.  A
// nil *Colorizer produces uncolored output.
type Colorizer struct {
	NameColorCode  []byte
	KindColorCodes [4][]byte
	ResetCode      []byte
}

func (c *Colorizer) nameCode() []byte {
	if c == nil {
		return nil
	}
	return c.NameColorCode
}

func (c *Colorizer) kindCode(k Kind) []byte {
	if c == nil {
		return nil
	}
	return c.KindColorCodes[k]
}

func (c *Colorizer) resetCode() []byte {
	if c == nil {
		return nil
	}
	return c.ResetCode
}

// DefaultColorizer uses the conventional 4-bit palette: cyan names, green
// strings, yellow numbers, magenta booleans, blue timestamps.
var DefaultColorizer = Colorizer{
	NameColorCode: []byte("\033[36m"),
	KindColorCodes: [4][]byte{
		String: []byte("\033[32m"),
		Number: []byte("\033[33m"),
		Bool:   []byte("\033[35m"),
		Time:   []byte("\033[34m"),
	},
	ResetCode: []byte("\033[0m"),
}
