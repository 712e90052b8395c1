package io

import "testing"

func TestNumberType_GenericAcceptsIntAndFloat(t *testing.T) {
	md := &MemberDef{Type: "int", Path: "x"}
	v, err := ParseMember(mustParseNode(t, "42"), md, nil)
	if err != nil {
		t.Fatalf("ParseMember failed: %v", err)
	}
	bi, ok := v.AsBigInt()
	if !ok || bi.String() != "42" {
		t.Errorf("got %v, want 42", v)
	}

	md2 := &MemberDef{Type: "float", Path: "x"}
	v2, err := ParseMember(mustParseNode(t, "3.5"), md2, nil)
	if err != nil {
		t.Fatalf("ParseMember failed: %v", err)
	}
	f, ok := v2.AsFloat()
	if !ok || f != 3.5 {
		t.Errorf("got %v, want 3.5", v2)
	}
}

func TestNumberType_UintRejectsNegative(t *testing.T) {
	md := &MemberDef{Type: "uint", Path: "x"}
	_, err := ParseMember(mustParseNode(t, "-1"), md, nil)
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeOutOfRange {
		t.Fatalf("expected CodeOutOfRange, got %v", err)
	}
}

func TestNumberType_FixedWidthBounds(t *testing.T) {
	md := &MemberDef{Type: "int8", Path: "x"}
	for _, ok := range []struct {
		src  string
		pass bool
	}{
		{"127", true},
		{"-128", true},
		{"128", false},
		{"-129", false},
	} {
		_, err := ParseMember(mustParseNode(t, ok.src), md, nil)
		if ok.pass && err != nil {
			t.Errorf("%s: expected to pass, got %v", ok.src, err)
		}
		if !ok.pass && err == nil {
			t.Errorf("%s: expected to fail with an out-of-range error", ok.src)
		}
	}
}

func TestNumberType_FixedWidthRejectsFraction(t *testing.T) {
	md := &MemberDef{Type: "int8", Path: "x"}
	_, err := ParseMember(mustParseNode(t, "1.5"), md, nil)
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeNotAnInteger {
		t.Fatalf("expected CodeNotAnInteger, got %v", err)
	}
}

func TestNumberType_Bigint(t *testing.T) {
	md := &MemberDef{Type: "bigint", Path: "x"}
	v, err := ParseMember(mustParseNode(t, "123456789012345678901234567890"), md, nil)
	if err != nil {
		t.Fatalf("ParseMember failed: %v", err)
	}
	bi, _ := v.AsBigInt()
	if bi.String() != "123456789012345678901234567890" {
		t.Errorf("got %s", bi.String())
	}

	_, err = ParseMember(mustParseNode(t, "1.5"), md, nil)
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeNotAnInteger {
		t.Fatalf("expected CodeNotAnInteger for a fractional bigint, got %v", err)
	}
}

func TestNumberType_MinMax(t *testing.T) {
	min, max := 1.0, 10.0
	md := &MemberDef{Type: "int", Path: "x", Min: &min, Max: &max}

	_, err := ParseMember(mustParseNode(t, "0"), md, nil)
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeInvalidMinValue {
		t.Fatalf("expected CodeInvalidMinValue, got %v", err)
	}

	_, err = ParseMember(mustParseNode(t, "11"), md, nil)
	ioErr, ok = err.(*IOError)
	if !ok || ioErr.Code != CodeInvalidMaxValue {
		t.Fatalf("expected CodeInvalidMaxValue, got %v", err)
	}

	_, err = ParseMember(mustParseNode(t, "5"), md, nil)
	if err != nil {
		t.Fatalf("expected 5 to be within [1,10], got %v", err)
	}
}

func TestNumberType_UnsupportedNames(t *testing.T) {
	for _, name := range []string{"int64", "uint64", "float32", "float64"} {
		t.Run(name, func(t *testing.T) {
			md := &MemberDef{Type: name, Path: "x"}
			_, err := ParseMember(mustParseNode(t, "1"), md, nil)
			ioErr, ok := err.(*IOError)
			if !ok || ioErr.Code != CodeUnsupportedNumberType {
				t.Fatalf("expected CodeUnsupportedNumberType, got %v", err)
			}
		})
	}
}

func TestNumberType_Serialize(t *testing.T) {
	td, _ := LookupType("bigint")
	md := &MemberDef{Type: "bigint", Path: "x"}
	s, err := td.Serialize(IntVal(42), md)
	if err != nil || s != "42" {
		t.Errorf("got %q, %v; want %q, nil", s, err, "42")
	}
}
