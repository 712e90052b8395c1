// Package io implements the Internet Object (IO) text format: a
// tokenizer, an AST parser, and a schema-driven type validator.
//
// # Pipeline
//
// Parsing runs strictly leaves-first:
//
//	text -> Tokenizer -> []Token -> AstParser -> tree -> Schema/TypeDef -> value
//
// # Syntax
//
// Object:  {a: 1, b: 2}
// Array:   [1, 2, 3]
// Header:  ~ 1, 2, 3
// String:  "quoted", r"raw\n", b"YmFzZTY0", or bare_open_string
// Number:  123, -4.5, 0x1F, 0c17, 0b101, 1.5e10
// Null:    N, null
// Bool:    T, true, F, false
// Section: ---
// Comment: # discarded to end of line
//
// # Schemas
//
// A Schema is an ordered sequence of named MemberDefs describing type,
// optionality, nullability, bounds, choices, and patterns. Validators
// are looked up by type name through a small pluggable registry
// (string, email, url, the number family, bigint, bool, array, object).
package io
