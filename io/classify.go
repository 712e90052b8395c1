package io

// Character classification predicates. Pure, stateless, no allocation.

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// isWhitespaceRune extends isWhitespace to the two multi-byte whitespace
// code points the spec calls out: NBSP (U+00A0) and BOM (U+FEFF).
func isWhitespaceRune(r rune) bool {
	return r == '\u00A0' || r == '\uFEFF'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func isBinaryDigit(c byte) bool {
	return c == '0' || c == '1'
}

// isSpecialSymbol reports whether c is one of the structural symbols
// with a single-character token type of its own.
func isSpecialSymbol(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ',', ':', '~':
		return true
	}
	return false
}

// isValidOpenStringChar reports whether c may appear inside an
// unquoted (open) string. Quotes, special symbols, '#', and EOF all
// terminate an open string; whitespace does not (it is trimmed only
// at the trailing edge, see scanOpenString).
func isValidOpenStringChar(c byte) bool {
	if isSpecialSymbol(c) {
		return false
	}
	switch c {
	case '"', '\'', '#':
		return false
	}
	return true
}

// getSymbolTokenType is a total function over the special-symbol set;
// callers must only invoke it after isSpecialSymbol(c) is true.
func getSymbolTokenType(c byte) TokenType {
	switch c {
	case '{':
		return CurlyOpen
	case '}':
		return CurlyClose
	case '[':
		return BracketOpen
	case ']':
		return BracketClose
	case ',':
		return Comma
	case ':':
		return Colon
	case '~':
		return Tilde
	}
	panic("io: getSymbolTokenType called on non-symbol byte")
}
