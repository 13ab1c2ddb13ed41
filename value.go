package fmtbuf

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/exp/constraints"
)

type kind uint8

const (
	kindNull kind = iota
	kindBool
	kindChar
	kindInt
	kindUint
	kindString
	kindStringer
	kindPointer
	kindSlice
	kindRecord
)

// Value is one renderable argument: a closed union over the kinds the
// engine knows how to serialize. The zero Value renders as "null".
// Scalar constructors do not allocate; composite constructors (Slice,
// Record, Struct) allocate their descriptors and should be built outside
// allocation-sensitive regions.
type Value struct {
	kind   kind
	b      bool
	i      int64
	u      uint64 // unsigned integers and pointer addresses
	r      rune
	s      string
	name   string // pointer, slice element, or record type name
	str    fmt.Stringer
	elems  []Value
	fields []Field
}

// Field is a named member of a record Value.
type Field struct {
	Name  string
	Value Value
}

// Null returns a Value rendering as "null".
func Null() Value { return Value{} }

// Bool returns a Value rendering as "true" or "false".
func Bool(v bool) Value { return Value{kind: kindBool, b: v} }

// Char returns a Value rendering as the single rune, encoded at the target
// buffer's unit width.
func Char(r rune) Value { return Value{kind: kindChar, r: r} }

// Int returns a Value rendering a signed integer in decimal.
func Int[T constraints.Signed](v T) Value { return Value{kind: kindInt, i: int64(v)} }

// Uint returns a Value rendering an unsigned integer in decimal.
func Uint[T constraints.Unsigned](v T) Value { return Value{kind: kindUint, u: uint64(v)} }

// String returns a Value rendering the string's characters, transcoded when
// the target unit width differs from UTF-8.
func String(s string) Value { return Value{kind: kindString, s: s} }

// Ptr returns a Value rendering p as "<pointee>*(0xHEX)", or
// "<pointee>*(null)" when p is nil. Hex is uppercase without padding.
func Ptr[T any](p *T) Value {
	name := typeName(reflect.TypeOf((*T)(nil)).Elem()) + "*"
	var addr uint64
	if p != nil {
		addr = uint64(reflect.ValueOf(p).Pointer())
	}
	return Value{kind: kindPointer, name: name, u: addr}
}

// Pointer returns a pointer Value with an explicit type name and address,
// for callers formatting foreign addresses. By convention name ends in "*".
// A zero address renders as "(null)".
func Pointer(name string, addr uintptr) Value {
	return Value{kind: kindPointer, name: name, u: uint64(addr)}
}

// Slice returns a Value rendering as "<elem>[v0, v1, …]"; an empty slice
// renders as "<elem>[]". Elements are converted as by Any.
func Slice[E any](elems ...E) Value {
	name := typeName(reflect.TypeOf((*E)(nil)).Elem())
	vals := make([]Value, len(elems))
	for i, e := range elems {
		vals[i] = Any(e)
	}
	return Value{kind: kindSlice, name: name, elems: vals}
}

// Record returns a Value rendering as "<name>{ f0: v0, f1: v1 }".
// A record with no fields renders as "<name>{}".
func Record(name string, fields ...Field) Value {
	return Value{kind: kindRecord, name: name, fields: fields}
}

// Struct builds a record Value from v's exported fields in declaration
// order. Nil (including a nil pointer at any depth) renders as "null";
// that check runs before the custom-rendering dispatch. A type implementing
// fmt.Stringer renders via its own String method instead of by fields.
func Struct(v any) Value {
	if v == nil {
		return Null()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Null()
		}
		rv = rv.Elem()
	}
	if s, ok := v.(fmt.Stringer); ok {
		return Value{kind: kindStringer, str: s}
	}
	if rv.Kind() != reflect.Struct {
		return reflectValue(rv)
	}
	return recordOf(rv)
}

// Any converts an ordinary Go value to a Value. Scalars convert directly
// and without allocation; fmt.Stringer implementations render themselves;
// pointers, slices, arrays, and structs go through reflection. Note that
// int32 is an integer here — rune rendering requires the explicit Char
// constructor. Use Ptr or Pointer to force address rendering for a type
// that also implements fmt.Stringer.
func Any(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int8:
		return Int(x)
	case int16:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case uint:
		return Uint(x)
	case uint8:
		return Uint(x)
	case uint16:
		return Uint(x)
	case uint32:
		return Uint(x)
	case uint64:
		return Uint(x)
	case uintptr:
		return Uint(x)
	case string:
		return String(x)
	}
	if s, ok := v.(fmt.Stringer); ok {
		// Null wins over custom rendering for typed nil pointers.
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Null()
		}
		return Value{kind: kindStringer, str: s}
	}
	return reflectValue(reflect.ValueOf(v))
}

func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.String:
		return String(rv.String())
	case reflect.Pointer:
		name := typeName(rv.Type().Elem()) + "*"
		if rv.IsNil() {
			return Value{kind: kindPointer, name: name}
		}
		return Value{kind: kindPointer, name: name, u: uint64(rv.Pointer())}
	case reflect.Slice, reflect.Array:
		name := typeName(rv.Type().Elem())
		elems := make([]Value, rv.Len())
		for i := range elems {
			elems[i] = reflectValue(rv.Index(i))
		}
		return Value{kind: kindSlice, name: name, elems: elems}
	case reflect.Struct:
		if rv.CanInterface() {
			if s, ok := rv.Interface().(fmt.Stringer); ok {
				return Value{kind: kindStringer, str: s}
			}
		}
		return recordOf(rv)
	case reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return Any(rv.Interface())
	default:
		// Unsupported kinds (floats, maps, funcs, channels) render as
		// their type name rather than failing the whole composition.
		return String(rv.Type().String())
	}
}

func recordOf(rv reflect.Value) Value {
	t := rv.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, Field{Name: sf.Name, Value: reflectValue(rv.Field(i))})
	}
	return Value{kind: kindRecord, name: typeName(t), fields: fields}
}

// typeNames caches rendered type names: reflect.Type.String rebuilds its
// result on every call, and compositions tend to format the same handful of
// types over and over. A global concurrent map keeps the cache shared across
// goroutine-local composers.
var typeNames = xsync.NewMap[reflect.Type, string]()

// typeName returns t's name without its package qualifier. Composite type
// names (slices, maps, pointers) keep whatever qualifiers they carry.
func typeName(t reflect.Type) string {
	if name, ok := typeNames.Load(t); ok {
		return name
	}
	name := t.String()
	if i := strings.LastIndexByte(name, '.'); i >= 0 && !strings.ContainsAny(name, "[] *") {
		name = name[i+1:]
	}
	typeNames.Store(t, name)
	return name
}
