package io

import (
	"math"
	"math/big"
)

type numberKind uint8

const (
	numGeneric numberKind = iota // int, number, float: any finite number
	numUint                      // uint: any finite number >= 0
	numFixedSigned
	numFixedUnsigned
	numBigint
	numUnsupported
)

type numberTypeDef struct {
	name string
	kind numberKind
	bits int
}

func init() {
	registerType([]string{"int", "number", "float"}, &numberTypeDef{name: "int", kind: numGeneric})
	registerType([]string{"uint"}, &numberTypeDef{name: "uint", kind: numUint})
	registerType([]string{"int8"}, &numberTypeDef{name: "int8", kind: numFixedSigned, bits: 8})
	registerType([]string{"int16"}, &numberTypeDef{name: "int16", kind: numFixedSigned, bits: 16})
	registerType([]string{"int32"}, &numberTypeDef{name: "int32", kind: numFixedSigned, bits: 32})
	registerType([]string{"uint8"}, &numberTypeDef{name: "uint8", kind: numFixedUnsigned, bits: 8})
	registerType([]string{"uint16"}, &numberTypeDef{name: "uint16", kind: numFixedUnsigned, bits: 16})
	registerType([]string{"uint32"}, &numberTypeDef{name: "uint32", kind: numFixedUnsigned, bits: 32})
	registerType([]string{"bigint"}, &numberTypeDef{name: "bigint", kind: numBigint})
	// int64/uint64/float32/float64 are registered names that always
	// fail: per spec.md §4.4.3 and the §9 Open Question, float32 and
	// float64 appear in both a supported and unsupported branch of
	// the source and must be treated as unsupported (the later,
	// more specific branch wins).
	registerType([]string{"int64"}, &numberTypeDef{name: "int64", kind: numUnsupported})
	registerType([]string{"uint64"}, &numberTypeDef{name: "uint64", kind: numUnsupported})
	registerType([]string{"float32"}, &numberTypeDef{name: "float32", kind: numUnsupported})
	registerType([]string{"float64"}, &numberTypeDef{name: "float64", kind: numUnsupported})
}

func (n *numberTypeDef) GetType() string { return n.name }

func fixedRange(bits int, unsigned bool) (*big.Int, *big.Int) {
	if unsigned {
		hi := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		hi.Sub(hi, big.NewInt(1))
		return big.NewInt(0), hi
	}
	hi := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	lo := new(big.Int).Neg(hi)
	hi.Sub(hi, big.NewInt(1))
	return lo, hi
}

func (n *numberTypeDef) Parse(node Node, md *MemberDef, defs Definitions) (Value, error) {
	node2, handled, err := doCommonTypeCheck(node, md, positionOf(node))
	if err != nil {
		return Value{}, err
	}
	if handled {
		if node2 == nil {
			return Undefined(), nil
		}
		return node2.(*Token).Value, nil
	}

	tok, ok := node2.(*Token)
	if !ok || !tok.Value.IsNumeric() {
		return Value{}, newPathError(CodeNotANumber, md.Path, positionOf(node2), "expected a number for %q", md.Path)
	}

	var result Value

	switch n.kind {
	case numUnsupported:
		return Value{}, newPathError(CodeUnsupportedNumberType, md.Path, tok.Pos, "number type %q is not supported", n.name)

	case numGeneric:
		f, _ := tok.Value.Number()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, newPathError(CodeNotANumber, md.Path, tok.Pos, "value is not finite for %q", md.Path)
		}
		result = tok.Value

	case numUint:
		f, _ := tok.Value.Number()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, newPathError(CodeNotANumber, md.Path, tok.Pos, "value is not finite for %q", md.Path)
		}
		if f < 0 {
			return Value{}, newPathError(CodeOutOfRange, md.Path, tok.Pos, "value %v must be >= 0 for %q", f, md.Path)
		}
		result = tok.Value

	case numBigint:
		bi, isInt := tok.Value.AsBigInt()
		if !isInt {
			return Value{}, newPathError(CodeNotAnInteger, md.Path, tok.Pos, "expected an arbitrary-precision integer for %q", md.Path)
		}
		result = BigInt(bi)

	case numFixedSigned, numFixedUnsigned:
		var asBig *big.Int
		if bi, isInt := tok.Value.AsBigInt(); isInt {
			asBig = bi
		} else {
			f, _ := tok.Value.Number()
			if f != math.Trunc(f) {
				return Value{}, newPathError(CodeNotAnInteger, md.Path, tok.Pos, "value %v has a fractional part for %q", f, md.Path)
			}
			asBig = big.NewInt(int64(f))
		}
		lo, hi := fixedRange(n.bits, n.kind == numFixedUnsigned)
		if asBig.Cmp(lo) < 0 || asBig.Cmp(hi) > 0 {
			return Value{}, newPathError(CodeOutOfRange, md.Path, tok.Pos, "value %s out of range [%s, %s] for %q", asBig, lo, hi, md.Path)
		}
		result = BigInt(asBig)
	}

	if md.Min != nil || md.Max != nil {
		f, _ := result.Number()
		if md.Min != nil && f < *md.Min {
			return Value{}, newPathError(CodeInvalidMinValue, md.Path, tok.Pos, "value %v below min %v for %q", f, *md.Min, md.Path)
		}
		if md.Max != nil && f > *md.Max {
			return Value{}, newPathError(CodeInvalidMaxValue, md.Path, tok.Pos, "value %v above max %v for %q", f, *md.Max, md.Path)
		}
	}

	return result, nil
}

func (n *numberTypeDef) Load(data any, md *MemberDef) (Value, error) {
	var tok *Token
	switch v := data.(type) {
	case int:
		tok = valueToken(IntVal(int64(v)), Position{})
	case int64:
		tok = valueToken(IntVal(v), Position{})
	case float64:
		tok = valueToken(Float(v), Position{})
	case *big.Int:
		tok = valueToken(BigInt(v), Position{})
	default:
		return Value{}, newPathError(CodeNotANumber, md.Path, Position{}, "unsupported Go type for %q", md.Path)
	}
	return n.Parse(tok, md, nil)
}

func (n *numberTypeDef) Serialize(v Value, md *MemberDef) (string, error) {
	if bi, ok := v.AsBigInt(); ok {
		return bi.String(), nil
	}
	if f, ok := v.AsFloat(); ok {
		return canonFloat(f), nil
	}
	return "", newPathError(CodeNotANumber, md.Path, Position{}, "cannot serialize non-numeric value for %q", md.Path)
}
