package csvparsers

import (
	"fmt"
	"reflect"
)

// A Row is a record whose column layout is defined at run time by a list
// of Field descriptors: one value per declared field, in declaration
// order.
type Row []any

// A Field describes one column of a row: a name and a conversion from raw
// field text to a typed value.  Fields are the run-time counterpart of a
// record struct's typed fields, used with NewRowReader when the column
// layout is not known at compile time.
type Field struct {
	Name string

	typ   reflect.Type
	parse parseFunc
}

// FieldOf describes a column of type T under the given name, converted
// with the parser registered for T.
func FieldOf[T any](name string) Field {
	return Field{
		Name: name,
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// ParseField describes a column of type T converted with the given
// function instead of the registered parser for T.
func ParseField[T any](name string, parse func(string) (T, error)) Field {
	return Field{
		Name: name,
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
		parse: func(s string) (any, error) {
			return parse(s)
		},
	}
}

// A schema is the ordered list of field conversions for a record type,
// together with instructions for materializing a record from the
// converted values.
type schema struct {
	fields []boundField
	kind   schemaKind
	typ    reflect.Type
}

type boundField struct {
	Field
	index []int // struct field index, nil unless kind == structSchema
}

type schemaKind int

const (
	structSchema schemaKind = iota // one exported struct field per column
	scalarSchema                   // the whole record is a single column
	rowSchema                      // record is a Row built from explicit Fields
)

// schemaFor derives the schema of a record type.  A type with a registered
// parser is a single-column record; otherwise it must be a struct whose
// exported fields all have registered parsers.  Struct tags rename
// (`csv:"name"`) or skip (`csv:"-"`) fields.
func schemaFor(t reflect.Type) (*schema, error) {
	if p, ok := parserFor(t); ok {
		return &schema{
			fields: []boundField{{Field: Field{Name: t.Name(), typ: t, parse: p}}},
			kind:   scalarSchema,
			typ:    t,
		}, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("csvparsers: record type %s is not a struct and has no registered parser", t)
	}

	var fields []boundField
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("csv"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		p, ok := parserFor(sf.Type)
		if !ok {
			return nil, fmt.Errorf("csvparsers: no parser registered for type %s (field %s.%s)", sf.Type, t.Name(), sf.Name)
		}
		fields = append(fields, boundField{
			Field: Field{Name: name, typ: sf.Type, parse: p},
			index: sf.Index,
		})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("csvparsers: record type %s declares no parseable fields", t)
	}
	return &schema{fields: fields, kind: structSchema, typ: t}, nil
}

// rowSchemaFor builds a schema from explicit field descriptors, resolving
// registered parsers for descriptors made with FieldOf.
func rowSchemaFor(fields []Field) (*schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("csvparsers: at least one field is required")
	}
	bound := make([]boundField, len(fields))
	for i, f := range fields {
		if f.parse == nil {
			p, ok := parserFor(f.typ)
			if !ok {
				return nil, fmt.Errorf("csvparsers: no parser registered for type %s (field %q)", f.typ, f.Name)
			}
			f.parse = p
		}
		bound[i] = boundField{Field: f}
	}
	return &schema{fields: bound, kind: rowSchema}, nil
}
