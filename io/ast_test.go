package io

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := NewTokenizer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return toks
}

func parseAll(t *testing.T, src string) Node {
	t.Helper()
	p := NewAstParser()
	for _, tok := range tokenize(t, src) {
		if err := p.Process(tok); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
	}
	n, err := p.ToObject()
	if err != nil {
		t.Fatalf("ToObject failed: %v", err)
	}
	return n
}

func TestAstParser_ObjectWithKeys(t *testing.T) {
	n := parseAll(t, `{a: 1, b: "two"}`)
	obj, ok := n.(*ObjectNode)
	if !ok {
		t.Fatalf("expected *ObjectNode, got %T", n)
	}
	if len(obj.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(obj.Children))
	}
	kv0, ok := obj.Children[0].(*KeyValue)
	if !ok || kv0.Key != "a" {
		t.Errorf("child 0: expected key %q, got %+v", "a", obj.Children[0])
	}
	kv1, ok := obj.Children[1].(*KeyValue)
	if !ok || kv1.Key != "b" {
		t.Errorf("child 1: expected key %q, got %+v", "b", obj.Children[1])
	}
}

func TestAstParser_NestedArray(t *testing.T) {
	n := parseAll(t, `[1, [2, 3], 4]`)
	arr, ok := n.(*ArrayNode)
	if !ok {
		t.Fatalf("expected *ArrayNode, got %T", n)
	}
	if len(arr.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(arr.Children))
	}
	inner, ok := arr.Children[1].(*ArrayNode)
	if !ok || len(inner.Children) != 2 {
		t.Fatalf("expected nested 2-element array, got %+v", arr.Children[1])
	}
}

func TestAstParser_PositionalGap(t *testing.T) {
	// A gap between two commas means an empty-string value was elided.
	n := parseAll(t, `[1,,3]`)
	arr, ok := n.(*ArrayNode)
	if !ok {
		t.Fatalf("expected *ArrayNode, got %T", n)
	}
	if len(arr.Children) != 3 {
		t.Fatalf("expected 3 children (gap filled), got %d: %+v", len(arr.Children), arr.Children)
	}
	gap, ok := arr.Children[1].(*Token)
	if !ok || gap.Value.Kind() != KindString {
		t.Fatalf("expected an empty-string gap token, got %+v", arr.Children[1])
	}
	if s, _ := gap.Value.AsString(); s != "" {
		t.Errorf("expected empty string gap value, got %q", s)
	}
}

func TestAstParser_MismatchedBracket(t *testing.T) {
	p := NewAstParser()
	for _, tok := range tokenize(t, "[1, 2}") {
		if err := p.Process(tok); err != nil {
			ioErr, ok := err.(*IOError)
			if !ok || ioErr.Code != CodeInvalidBracket {
				t.Fatalf("expected CodeInvalidBracket, got %v", err)
			}
			return
		}
	}
	t.Fatal("expected an error for mismatched closing bracket")
}

func TestAstParser_UnexpectedClosingBracket(t *testing.T) {
	p := NewAstParser()
	toks := tokenize(t, "}")
	err := p.Process(toks[0])
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeInvalidBracket {
		t.Fatalf("expected CodeInvalidBracket, got %v", err)
	}
}

func TestAstParser_UnclosedBracket(t *testing.T) {
	p := NewAstParser()
	for _, tok := range tokenize(t, "[1, 2") {
		if err := p.Process(tok); err != nil {
			t.Fatalf("unexpected Process error: %v", err)
		}
	}
	_, err := p.ToObject()
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeOpenBracket {
		t.Fatalf("expected CodeOpenBracket, got %v", err)
	}
}

func TestAstParser_InvalidHeaderItem(t *testing.T) {
	p := NewAstParser()
	toks := tokenize(t, "{:1}")
	for _, tok := range toks {
		if err := p.Process(tok); err != nil {
			ioErr, ok := err.(*IOError)
			if !ok || ioErr.Code != CodeInvalidHeaderItem {
				t.Fatalf("expected CodeInvalidHeaderItem, got %v", err)
			}
			return
		}
	}
	t.Fatal("expected an error for a colon with no preceding key")
}

func TestParseDocument_SingleRootValue(t *testing.T) {
	n, err := ParseDocument("42")
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	tok, ok := n.(*Token)
	if !ok {
		t.Fatalf("expected *Token, got %T", n)
	}
	bi, _ := tok.Value.AsBigInt()
	if bi.String() != "42" {
		t.Errorf("got %v, want 42", bi)
	}
}
