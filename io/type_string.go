package io

import "regexp"

// emailPattern and urlPattern approximate RFC 5322 addr-specs and
// generic URLs closely enough for schema validation; they are not
// intended as exhaustive conformance checkers.
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)
	urlPattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://\S+$`)
)

// stringTypeDef validates "string", "email", and "url" members. The
// three share a single implementation distinguished only by the
// pattern check: "string" applies the member's own `pattern` option,
// while "email" and "url" apply their built-in pattern and ignore it.
type stringTypeDef struct {
	name string
}

func init() {
	registerType([]string{"string"}, &stringTypeDef{name: "string"})
	registerType([]string{"email"}, &stringTypeDef{name: "email"})
	registerType([]string{"url"}, &stringTypeDef{name: "url"})
}

func (s *stringTypeDef) GetType() string { return s.name }

func (s *stringTypeDef) Parse(node Node, md *MemberDef, defs Definitions) (Value, error) {
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
	if !ok || tok.Value.Kind() != KindString {
		return Value{}, newPathError(CodeNotAString, md.Path, positionOf(node2), "expected a string for %q", md.Path)
	}
	val, _ := tok.Value.AsString()

	switch s.name {
	case "string":
		if md.Pattern != "" {
			re, err := md.CompiledPattern()
			if err != nil {
				return Value{}, err
			}
			if re != nil && !re.MatchString(val) {
				return Value{}, newPathError(CodeInvalidValue, md.Path, tok.Pos, "value does not match pattern for %q", md.Path)
			}
		}
	case "email":
		if !emailPattern.MatchString(val) {
			return Value{}, newPathError(CodeInvalidValue, md.Path, tok.Pos, "invalid email for %q", md.Path)
		}
	case "url":
		if !urlPattern.MatchString(val) {
			return Value{}, newPathError(CodeInvalidValue, md.Path, tok.Pos, "invalid url for %q", md.Path)
		}
	}

	if md.MaxLength != nil && len(val) > *md.MaxLength {
		return Value{}, newPathError(CodeInvalidMaxLength, md.Path, tok.Pos, "length %d exceeds max length %d for %q", len(val), *md.MaxLength, md.Path)
	}
	// Per spec.md §9/Open Questions: the source's _validatePattern
	// applies minLength with a '>' comparison, a known bug; we follow
	// the spec-mandated '<' so the error means "shorter than allowed".
	if md.MinLength != nil && len(val) < *md.MinLength {
		return Value{}, newPathError(CodeInvalidMinLength, md.Path, tok.Pos, "length %d is below min length %d for %q", len(val), *md.MinLength, md.Path)
	}

	return StringVal(val), nil
}

func (s *stringTypeDef) Load(data any, md *MemberDef) (Value, error) {
	str, ok := data.(string)
	if !ok {
		return Value{}, newPathError(CodeNotAString, md.Path, Position{}, "expected a string for %q", md.Path)
	}
	return s.Parse(valueToken(StringVal(str), Position{}), md, nil)
}

func (s *stringTypeDef) Serialize(v Value, md *MemberDef) (string, error) {
	str, ok := v.AsString()
	if !ok {
		return "", newPathError(CodeNotAString, md.Path, Position{}, "cannot serialize non-string value for %q", md.Path)
	}
	return serializeString(str), nil
}
