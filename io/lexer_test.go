package io

import "testing"

func TestTokenizer_BasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"123", []TokenType{NUMBER, EOF}},
		{"-456", []TokenType{NUMBER, EOF}},
		{"3.14", []TokenType{NUMBER, EOF}},
		{"-2.5e10", []TokenType{NUMBER, EOF}},
		{"true", []TokenType{BOOLEAN, EOF}},
		{"F", []TokenType{BOOLEAN, EOF}},
		{"null", []TokenType{NULL, EOF}},
		{"N", []TokenType{NULL, EOF}},
		{`"hello"`, []TokenType{STRING, EOF}},
		{"hello_world", []TokenType{STRING, EOF}},
		{"{}", []TokenType{CurlyOpen, CurlyClose, EOF}},
		{"[]", []TokenType{BracketOpen, BracketClose, EOF}},
		{"a: 1", []TokenType{STRING, Colon, NUMBER, EOF}},
		{"---", []TokenType{SECTION_SEP, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := NewTokenizer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if len(toks) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d (%v)", len(tt.expected), len(toks), toks)
			}
			for i, tok := range toks {
				if tok.Type != tt.expected[i] {
					t.Errorf("token %d: expected %s, got %s", i, tt.expected[i], tok.Type)
				}
			}
		})
	}
}

func TestTokenizer_Comments(t *testing.T) {
	toks, err := NewTokenizer("123 # a comment\n456").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d (%v)", len(toks), toks)
	}
	if toks[0].Type != NUMBER || toks[1].Type != NUMBER || toks[2].Type != EOF {
		t.Errorf("unexpected token sequence: %v", toks)
	}
}

func TestTokenizer_RegularStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"A"`, "A"},
		{`"\x41"`, "A"},
		{`"\q"`, "q"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := NewTokenizer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			got, _ := toks[0].Value.AsString()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenizer_SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) encoded as a UTF-16 surrogate pair.
	toks, err := NewTokenizer("\"\\uD83D\\uDE00\"").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	got, _ := toks[0].Value.AsString()
	want := "\U0001F600"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenizer_RawString(t *testing.T) {
	toks, err := NewTokenizer(`r"a\nb"`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	got, _ := toks[0].Value.AsString()
	if got != `a\nb` {
		t.Errorf("got %q, want %q", got, `a\nb`)
	}
	if toks[0].SubType != RawString {
		t.Errorf("expected RawString subtype, got %s", toks[0].SubType)
	}
}

func TestTokenizer_ByteString(t *testing.T) {
	toks, err := NewTokenizer(`b"aGVsbG8="`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	got, ok := toks[0].Value.AsBytes()
	if !ok || string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestTokenizer_MultiBaseIntegers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0x1F", "31"},
		{"0c17", "15"},
		{"0b101", "5"},
		{"-0x1F", "-31"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := NewTokenizer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			bi, ok := toks[0].Value.AsBigInt()
			if !ok || bi.String() != tt.want {
				t.Errorf("got %v, want %s", bi, tt.want)
			}
		})
	}
}

func TestTokenizer_OpenString(t *testing.T) {
	toks, err := NewTokenizer("bare_open_string  ").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Type != STRING || toks[0].SubType != OpenString {
		t.Fatalf("expected open string token, got %v", toks[0])
	}
	got, _ := toks[0].Value.AsString()
	if got != "bare_open_string" {
		t.Errorf("trailing whitespace not trimmed: %q", got)
	}
}

func TestTokenizer_UnterminatedString(t *testing.T) {
	_, err := NewTokenizer(`"abc`).Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeInvalidChar {
		t.Errorf("expected CodeInvalidChar, got %v", err)
	}
}

func TestTokenizer_NBSPAndBOMAreWhitespace(t *testing.T) {
	toks, err := NewTokenizer("\uFEFF123\u00A0").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(toks) != 2 || toks[0].Type != NUMBER || toks[1].Type != EOF {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

// TestTokenizer_MultibyteOpenStringKey guards against scanOpenString
// mis-advancing the cursor on a multibyte key: advanceN takes a rune
// count, and feeding it a byte delta would overconsume past the key
// into the following colon and value.
func TestTokenizer_MultibyteOpenStringKey(t *testing.T) {
	src := "名: 1"
	toks, err := NewTokenizer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []TokenType{STRING, Colon, NUMBER, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Errorf("token %d: expected %s, got %s", i, ty, toks[i].Type)
		}
	}
	got, _ := toks[0].Value.AsString()
	if got != "名" {
		t.Errorf("got key %q, want %q", got, "名")
	}
}

func TestTokenizer_MalformedUnicodeEscapeIsInvalidChar(t *testing.T) {
	_, err := NewTokenizer(`"\uZZZZ"`).Tokenize()
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeInvalidChar {
		t.Fatalf("expected CodeInvalidChar, got %v", err)
	}
}

func TestTokenizer_TruncatedUnicodeEscapeIsIncomplete(t *testing.T) {
	src := "\"\\u12"
	_, err := NewTokenizer(src).Tokenize()
	ioErr, ok := err.(*IOError)
	if !ok || ioErr.Code != CodeIncompleteEscapeSequence {
		t.Fatalf("expected CodeIncompleteEscapeSequence, got %v", err)
	}
}
