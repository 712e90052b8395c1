package io

import (
	"encoding/base64"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer converts IO source text into a stream of Tokens. It runs
// to completion in a single Tokenize call and is not restartable.
type Tokenizer struct {
	input string
	pos   int
	row   int
	col   int
}

// NewTokenizer returns a Tokenizer over text.
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{input: text, row: 1, col: 1}
}

// Tokenize runs the lexer to completion and returns every token,
// including a trailing EOF token, or the first lexical error.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := t.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (t *Tokenizer) currentPos() Position {
	return Position{Offset: t.pos, Row: t.row, Col: t.col}
}

func (t *Tokenizer) atEnd() bool { return t.pos >= len(t.input) }

func (t *Tokenizer) peekByte() byte { return t.input[t.pos] }

// advance consumes one rune from the input, updating row/col.
func (t *Tokenizer) advance() {
	if t.atEnd() {
		return
	}
	r, size := utf8.DecodeRuneInString(t.input[t.pos:])
	t.pos += size
	if r == '\n' {
		t.row++
		t.col = 1
	} else {
		t.col++
	}
}

func (t *Tokenizer) advanceN(n int) {
	for i := 0; i < n; i++ {
		t.advance()
	}
}

func (t *Tokenizer) hasPrefix(s string) bool {
	return strings.HasPrefix(t.input[t.pos:], s)
}

func (t *Tokenizer) skipWhitespaceAndComments() {
	for !t.atEnd() {
		c := t.peekByte()
		if isWhitespace(c) {
			t.advance()
			continue
		}
		if r, size := utf8.DecodeRuneInString(t.input[t.pos:]); r != utf8.RuneError && isWhitespaceRune(r) {
			t.pos += size
			t.col++
			continue
		}
		if c == '#' {
			for !t.atEnd() && t.peekByte() != '\n' {
				t.advance()
			}
			if !t.atEnd() {
				t.advance() // consume the newline itself
			}
			continue
		}
		break
	}
}

func (t *Tokenizer) nextToken() (Token, error) {
	t.skipWhitespaceAndComments()

	if t.atEnd() {
		pos := t.currentPos()
		return Token{Pos: pos, Type: EOF}, nil
	}

	startPos := t.currentPos()
	c := t.peekByte()

	switch {
	case c == '"' || c == '\'':
		return t.scanRegularString(startPos)

	case c == 'r' && t.pos+1 < len(t.input) && (t.input[t.pos+1] == '"' || t.input[t.pos+1] == '\''):
		return t.scanRawString(startPos)

	case c == 'b' && t.pos+1 < len(t.input) && (t.input[t.pos+1] == '"' || t.input[t.pos+1] == '\''):
		return t.scanByteString(startPos)

	case isSpecialSymbol(c):
		typ := getSymbolTokenType(c)
		t.advance()
		return Token{Pos: startPos, Text: string(c), Value: StringVal(string(c)), Type: typ}, nil

	case c == '-' || c == '+' || isDigit(c):
		if t.hasPrefix("---") {
			t.advanceN(3)
			return Token{Pos: startPos, Text: "---", Value: Separator(), Type: SECTION_SEP}, nil
		}
		if tok, ok := t.scanNumber(startPos); ok {
			return tok, nil
		}
		return t.scanOpenString(startPos)

	default:
		return t.scanOpenString(startPos)
	}
}

// scanRegularString scans a "..." or '...' string with escapes.
func (t *Tokenizer) scanRegularString(startPos Position) (Token, error) {
	quote := t.peekByte()
	start := t.pos
	t.advance() // opening quote

	var sb strings.Builder
	usedEscape := false

	for {
		if t.atEnd() {
			return Token{}, newError(CodeInvalidChar, startPos, "unterminated string starting at %s", startPos)
		}
		c := t.peekByte()
		if c == quote {
			t.advance()
			break
		}
		if c == '\\' {
			t.advance()
			if t.atEnd() {
				return Token{}, newError(CodeIncompleteEscapeSequence, t.currentPos(), "incomplete escape sequence")
			}
			e := t.peekByte()
			switch e {
			case 'b':
				sb.WriteByte('\b')
				t.advance()
			case 'f':
				sb.WriteByte('\f')
				t.advance()
			case 'n':
				sb.WriteByte('\n')
				t.advance()
			case 'r':
				sb.WriteByte('\r')
				t.advance()
			case 't':
				sb.WriteByte('\t')
				t.advance()
			case 'u':
				t.advance()
				code, err := t.readHexDigits(4)
				if err != nil {
					return Token{}, err
				}
				usedEscape = true
				r := rune(code)
				if utf16.IsSurrogate(r) && t.hasPrefix(`\u`) {
					save := t.pos
					saveRow, saveCol := t.row, t.col
					t.advance() // backslash
					t.advance() // u
					low, err := t.readHexDigits(4)
					if err == nil {
						combined := utf16.DecodeRune(r, rune(low))
						if combined != utf8.RuneError {
							sb.WriteRune(combined)
							continue
						}
					}
					t.pos, t.row, t.col = save, saveRow, saveCol
				}
				sb.WriteRune(r)
			case 'x':
				t.advance()
				code, err := t.readHexDigits(2)
				if err != nil {
					return Token{}, err
				}
				usedEscape = true
				sb.WriteRune(rune(code))
			default:
				_, size := utf8.DecodeRuneInString(t.input[t.pos:])
				sb.WriteString(t.input[t.pos : t.pos+size])
				t.advance()
			}
			continue
		}
		_, size := utf8.DecodeRuneInString(t.input[t.pos:])
		sb.WriteString(t.input[t.pos : t.pos+size])
		t.advance()
	}

	value := sb.String()
	if usedEscape {
		value = norm.NFC.String(value)
	}

	return Token{
		Pos:     startPos,
		Text:    t.input[start:t.pos],
		Value:   StringVal(value),
		Type:    STRING,
		SubType: RegularString,
	}, nil
}

// readHexDigits reads exactly n hex digits and returns their value.
// Running off the end of the input and finding a non-hex digit are
// distinct failures: the former means the escape was truncated by
// EOF, the latter that the escape itself is malformed.
func (t *Tokenizer) readHexDigits(n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		if t.atEnd() {
			return 0, newError(CodeIncompleteEscapeSequence, t.currentPos(), "expected %d hex digits", n)
		}
		if !isHexDigit(t.peekByte()) {
			return 0, newError(CodeInvalidChar, t.currentPos(), "invalid hex digit %q in escape sequence", t.peekByte())
		}
		v = v<<4 | uint32(hexVal(t.peekByte()))
		t.advance()
	}
	return v, nil
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// scanRawString scans r"..." / r'...'; contents are copied verbatim
// up to the next occurrence of the matching quote. No escapes.
func (t *Tokenizer) scanRawString(startPos Position) (Token, error) {
	start := t.pos
	t.advance() // 'r'
	quote := t.peekByte()
	t.advance() // opening quote

	contentStart := t.pos
	for {
		if t.atEnd() {
			return Token{}, newError(CodeInvalidChar, startPos, "unterminated raw string starting at %s", startPos)
		}
		if t.peekByte() == quote {
			value := t.input[contentStart:t.pos]
			t.advance() // closing quote
			return Token{
				Pos:     startPos,
				Text:    t.input[start:t.pos],
				Value:   StringVal(value),
				Type:    STRING,
				SubType: RawString,
			}, nil
		}
		t.advance()
	}
}

// scanByteString scans b"..." / b'...'; contents are base64-decoded
// into a byte sequence.
func (t *Tokenizer) scanByteString(startPos Position) (Token, error) {
	start := t.pos
	t.advance() // 'b'
	quote := t.peekByte()
	t.advance() // opening quote

	contentStart := t.pos
	for {
		if t.atEnd() {
			return Token{}, newError(CodeInvalidChar, startPos, "unterminated byte string starting at %s", startPos)
		}
		if t.peekByte() == quote {
			encoded := t.input[contentStart:t.pos]
			t.advance() // closing quote
			decoded, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return Token{}, newError(CodeInvalidChar, startPos, "invalid base64 byte string: %v", err)
			}
			return Token{
				Pos:   startPos,
				Text:  t.input[start:t.pos],
				Value: BytesVal(decoded),
				Type:  BINARY,
			}, nil
		}
		t.advance()
	}
}

// scanNumber attempts to lex a numeric literal at the current
// position. It reports ok=false without consuming input when the
// lexical form does not match (e.g. a bare sign), letting the caller
// fall through to scanOpenString.
func (t *Tokenizer) scanNumber(startPos Position) (Token, bool) {
	i := t.pos
	neg := false
	if t.input[i] == '-' || t.input[i] == '+' {
		neg = t.input[i] == '-'
		i++
	}
	if i >= len(t.input) {
		return Token{}, false
	}

	// Multi-base integer literals: 0x, 0c, 0b.
	if t.input[i] == '0' && i+1 < len(t.input) {
		switch t.input[i+1] {
		case 'x':
			return t.scanBaseInt(startPos, i+2, 16, isHexDigit, Hex, neg)
		case 'c':
			return t.scanBaseInt(startPos, i+2, 8, isOctalDigit, Octal, neg)
		case 'b':
			return t.scanBaseInt(startPos, i+2, 2, isBinaryDigit, NumBinary, neg)
		}
	}

	if !isDigit(t.input[i]) {
		return Token{}, false
	}

	for i < len(t.input) && isDigit(t.input[i]) {
		i++
	}

	isFloat := false
	if i < len(t.input) && t.input[i] == '.' && i+1 < len(t.input) && isDigit(t.input[i+1]) {
		isFloat = true
		i++
		for i < len(t.input) && isDigit(t.input[i]) {
			i++
		}
	}

	if i < len(t.input) && (t.input[i] == 'e' || t.input[i] == 'E') {
		save := i
		j := i + 1
		if j < len(t.input) && (t.input[j] == '+' || t.input[j] == '-') {
			j++
		}
		if j < len(t.input) && isDigit(t.input[j]) {
			isFloat = true
			i = j
			for i < len(t.input) && isDigit(t.input[i]) {
				i++
			}
		} else {
			i = save
		}
	}

	text := t.input[t.pos:i]
	t.advanceN(i - t.pos)

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, false
		}
		return Token{Pos: startPos, Text: text, Value: Float(f), Type: NUMBER}, true
	}

	digits := text
	if neg {
		digits = digits[1:]
	} else if text[0] == '+' {
		digits = digits[1:]
	}
	n := new(big.Int)
	n.SetString(digits, 10)
	if neg {
		n.Neg(n)
	}
	return Token{Pos: startPos, Text: text, Value: BigInt(n), Type: NUMBER}, true
}

// scanBaseInt scans the digit run of a 0x/0c/0b literal starting at
// digitsStart (the index just past the base prefix).
func (t *Tokenizer) scanBaseInt(startPos Position, digitsStart, base int, isDigitFn func(byte) bool, sub TokenSubType, neg bool) (Token, bool) {
	i := digitsStart
	for i < len(t.input) && isDigitFn(t.input[i]) {
		i++
	}
	if i == digitsStart {
		return Token{}, false
	}
	digits := t.input[digitsStart:i]
	text := t.input[t.pos:i]
	t.advanceN(i - t.pos)

	n := new(big.Int)
	n.SetString(digits, base)
	if neg {
		n.Neg(n)
	}
	return Token{Pos: startPos, Text: text, Value: BigInt(n), Type: NUMBER, SubType: sub}, true
}

// scanOpenString scans an unquoted literal, trimming trailing
// whitespace and mapping boolean/null shorthands.
func (t *Tokenizer) scanOpenString(startPos Position) (Token, error) {
	start := t.pos
	i := t.pos
	lastNonWsEnd := -1

	for i < len(t.input) {
		c := t.input[i]
		if !isValidOpenStringChar(c) {
			break
		}
		if c == '-' && strings.HasPrefix(t.input[i:], "---") {
			break
		}
		if !isWhitespace(c) {
			lastNonWsEnd = i + 1
		}
		i++
	}

	if lastNonWsEnd == -1 {
		return Token{}, newError(CodeInvalidChar, startPos, "unexpected character %q", t.input[t.pos])
	}

	// advanceN takes a rune count, not a byte count; lastNonWsEnd-start
	// is a byte delta that overcounts for any multibyte rune, so walk
	// rune-by-rune to the target byte offset instead (this also keeps
	// row/col correct across interior whitespace/newlines).
	for t.pos < lastNonWsEnd {
		t.advance()
	}
	value := t.input[start:lastNonWsEnd]

	switch value {
	case "T", "true":
		return Token{Pos: startPos, Text: value, Value: Bool(true), Type: BOOLEAN}, nil
	case "F", "false":
		return Token{Pos: startPos, Text: value, Value: Bool(false), Type: BOOLEAN}, nil
	case "N", "null":
		return Token{Pos: startPos, Text: value, Value: Null(), Type: NULL}, nil
	default:
		return Token{Pos: startPos, Text: value, Value: StringVal(value), Type: STRING, SubType: OpenString}, nil
	}
}
