package csvparsers

import (
	"fmt"
	"reflect"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParseFields builds an ordered list of field descriptors from a compact
// column spec string, for use with NewRowReader:
//
//	fields, err := csvparsers.ParseFields("id:int, name:string, joined:date")
//
// Each column is "name" or "name:type"; a column without a type is text.
// Recognized types are string (text), int, uint, float, bool, date
// (time), duration and bytes.
func ParseFields(spec string) ([]Field, error) {
	ast, err := specParser.ParseString("", spec)
	if err != nil {
		return nil, fmt.Errorf("csvparsers: invalid field spec: %w", err)
	}
	fields := make([]Field, len(ast.Columns))
	for i, col := range ast.Columns {
		typeName := col.Type
		if typeName == "" {
			typeName = "string"
		}
		t, ok := specTypes[typeName]
		if !ok {
			return nil, fmt.Errorf("csvparsers: unknown column type %q (column %q)", col.Type, col.Name)
		}
		fields[i] = Field{Name: col.Name, typ: t}
	}
	return fields, nil
}

// Spec grammar AST

type astSpec struct {
	Columns []*astColumn `parser:"@@ (',' @@)*"`
}

type astColumn struct {
	Name string `parser:"@Ident"`
	Type string `parser:"(':' @Ident)?"`
}

var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[:,]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	specParser = participle.MustBuild[astSpec](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
	)
)

var specTypes = map[string]reflect.Type{
	"string":   reflect.TypeOf(""),
	"text":     reflect.TypeOf(""),
	"int":      reflect.TypeOf(int(0)),
	"uint":     reflect.TypeOf(uint(0)),
	"float":    reflect.TypeOf(float64(0)),
	"bool":     reflect.TypeOf(false),
	"date":     reflect.TypeOf(time.Time{}),
	"time":     reflect.TypeOf(time.Time{}),
	"duration": reflect.TypeOf(time.Duration(0)),
	"bytes":    reflect.TypeOf([]byte(nil)),
}
