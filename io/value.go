package io

import (
	"fmt"
	"math/big"
)

// Kind is the coarse tag of a decoded Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindFloat
	KindInt
	KindBytes
	// KindSeparator tags the decoded literal value of a SECTION_SEP
	// token ("---"). It never appears as a schema-validated value.
	KindSeparator
	// KindUndefined marks the result of validating an absent,
	// optional member with no configured default.
	KindUndefined
	// KindArray and KindObject are the validated-value shapes
	// produced by the array and object TypeDefs (§3 "Validated
	// value"): an ordered sequence and an order-preserving mapping.
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBytes:
		return "bytes"
	case KindSeparator:
		return "separator"
	case KindUndefined:
		return "undefined"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// KeyedValue is one entry of a validated object value, in the order
// declared by the member's Schema.
type KeyedValue struct {
	Key   string
	Value Value
}

// Value is a tagged variant over the decoded literal forms the
// tokenizer and validators exchange: string, boolean, null, finite
// number, arbitrary-precision integer, byte sequence, or the "---"
// separator literal. Values are immutable once constructed.
type Value struct {
	kind  Kind
	str   string
	boo   bool
	flt   float64
	big   *big.Int
	bytes []byte
	arr   []Value
	obj   []KeyedValue
}

func Null() Value           { return Value{kind: KindNull} }
func Bool(b bool) Value     { return Value{kind: KindBool, boo: b} }
func StringVal(s string) Value { return Value{kind: KindString, str: s} }
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }
func BigInt(i *big.Int) Value {
	if i == nil {
		i = new(big.Int)
	}
	return Value{kind: KindInt, big: i}
}
func IntVal(i int64) Value      { return BigInt(big.NewInt(i)) }
func BytesVal(b []byte) Value   { return Value{kind: KindBytes, bytes: b} }
func Separator() Value          { return Value{kind: KindSeparator, str: "---"} }
func Undefined() Value          { return Value{kind: KindUndefined} }
func ArrayValue(vals []Value) Value      { return Value{kind: KindArray, arr: vals} }
func ObjectValue(entries []KeyedValue) Value { return Value{kind: KindObject, obj: entries} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

func (v Value) AsBool() (bool, bool)      { return v.boo, v.kind == KindBool }
func (v Value) AsString() (string, bool)  { return v.str, v.kind == KindString }
func (v Value) AsFloat() (float64, bool)  { return v.flt, v.kind == KindFloat }
func (v Value) AsBigInt() (*big.Int, bool) {
	if v.kind != KindInt {
		return nil, false
	}
	return v.big, true
}
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }
func (v Value) AsObject() ([]KeyedValue, bool) { return v.obj, v.kind == KindObject }

// Get returns the value of the named member of an object-kind
// Value, matching the teacher's GValue.Get accessor.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, e := range v.obj {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// IsNumeric reports whether the value is a float or an integer.
func (v Value) IsNumeric() bool { return v.kind == KindFloat || v.kind == KindInt }

// Number returns the value as a float64 for any numeric kind, losing
// precision for arbitrary-precision integers outside float64 range.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.flt, true
	case KindInt:
		f := new(big.Float).SetInt(v.big)
		out, _ := f.Float64()
		return out, true
	}
	return 0, false
}

// String renders the value the way an open-string token would have
// carried it, for use as a synthesized map key (see ast.go's colon
// handling) and in error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boo {
			return "true"
		}
		return "false"
	case KindString:
		return v.str
	case KindFloat:
		return fmt.Sprintf("%g", v.flt)
	case KindInt:
		return v.big.String()
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(v.bytes))
	case KindSeparator:
		return "---"
	case KindArray:
		return fmt.Sprintf("array(%d)", len(v.arr))
	case KindObject:
		return fmt.Sprintf("object(%d)", len(v.obj))
	default:
		return ""
	}
}

// Definitions is the external collaborator exposing named-value
// substitution during schema validation. The core consumes but does
// not own or construct one; callers supply an implementation backed
// by whatever header/definitions section their document model keeps.
type Definitions interface {
	GetV(name string) (Node, bool)
}
