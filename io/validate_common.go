package io

// TypeDef is the pluggable per-type validator capability. Parse
// consumes a parser-tree Node (nil means the member was absent);
// Load accepts an already-decoded Go value for programmatic
// construction; Serialize renders a validated Value back to IO
// source text for writer symmetry (§4.4.5).
type TypeDef interface {
	GetType() string
	Parse(node Node, md *MemberDef, defs Definitions) (Value, error)
	Load(data any, md *MemberDef) (Value, error)
	Serialize(v Value, md *MemberDef) (string, error)
}

var registry = map[string]TypeDef{}

func registerType(names []string, td TypeDef) {
	for _, n := range names {
		registry[n] = td
	}
}

// LookupType returns the TypeDef registered for name, if any.
func LookupType(name string) (TypeDef, bool) {
	td, ok := registry[name]
	return td, ok
}

// ParseMember runs the full per-member pipeline: definitions
// substitution, then dispatch to the named type's validator.
func ParseMember(node Node, md *MemberDef, defs Definitions) (Value, error) {
	node = applyDefinitions(node, defs)
	td, ok := registry[md.Type]
	if !ok {
		return Value{}, newPathError(CodeInvalidType, md.Path, positionOf(node), "unknown type %q", md.Type)
	}
	return td.Parse(node, md, defs)
}

// applyDefinitions substitutes a node whose source text names a
// defined value, per §4.4.1 step 1. Non-leaf nodes and leaves with
// no matching definition pass through unchanged.
func applyDefinitions(node Node, defs Definitions) Node {
	if defs == nil || node == nil {
		return node
	}
	tok, ok := node.(*Token)
	if !ok || tok.Text == "" {
		return node
	}
	if replacement, found := defs.GetV(tok.Text); found {
		return replacement
	}
	return node
}

// doCommonTypeCheck implements §4.4.1 step 2. It returns the node to
// continue type-specific validation with (handled=false), or a final
// node/error (handled=true): nil node with nil error means the
// caller should return Undefined(); a non-nil node means the value
// (default, or the null literal) should be returned as-is.
func doCommonTypeCheck(node Node, md *MemberDef, ctxPos Position) (result Node, handled bool, err error) {
	if node == nil {
		if md.Optional {
			if md.HasDefault {
				return valueToken(md.Default, ctxPos), true, nil
			}
			return nil, true, nil
		}
		return nil, true, newPathError(CodeValueRequired, md.Path, ctxPos, "value required for %q", md.Path)
	}

	if tok, isTok := node.(*Token); isTok && tok.Value.IsNull() {
		if md.Null {
			return node, true, nil
		}
		return nil, true, newPathError(CodeNullNotAllowed, md.Path, tok.Pos, "null not allowed for %q", md.Path)
	}

	if len(md.Choices) > 0 {
		tok, isTok := node.(*Token)
		if !isTok || !valueInChoices(tok.Value, md.Choices) {
			return nil, true, newPathError(CodeValueNotInChoice, md.Path, positionOf(node), "value not in allowed choices for %q", md.Path)
		}
	}

	return node, false, nil
}

func valueToken(v Value, pos Position) *Token {
	return &Token{Pos: pos, Value: v}
}

func valueInChoices(v Value, choices []Value) bool {
	for _, c := range choices {
		if valuesEqual(v, c) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		// allow int/float cross-comparison for choices authored either way
		an, aok := a.Number()
		bn, bok := b.Number()
		return aok && bok && an == bn
	}
	switch a.Kind() {
	case KindString:
		as, _ := a.AsString()
		bs, _ := b.AsString()
		return as == bs
	case KindBool:
		ab, _ := a.AsBool()
		bb, _ := b.AsBool()
		return ab == bb
	case KindNull:
		return true
	case KindFloat, KindInt:
		an, _ := a.Number()
		bn, _ := b.Number()
		return an == bn
	default:
		return false
	}
}
