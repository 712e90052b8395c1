package io

type boolTypeDef struct{}

func init() {
	registerType([]string{"bool"}, &boolTypeDef{})
}

func (boolTypeDef) GetType() string { return "bool" }

func (boolTypeDef) Parse(node Node, md *MemberDef, defs Definitions) (Value, error) {
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
	if !ok || tok.Value.Kind() != KindBool {
		return Value{}, newPathError(CodeInvalidValue, md.Path, positionOf(node2), "expected a bool for %q", md.Path)
	}
	return tok.Value, nil
}

func (b boolTypeDef) Load(data any, md *MemberDef) (Value, error) {
	v, ok := data.(bool)
	if !ok {
		return Value{}, newPathError(CodeInvalidValue, md.Path, Position{}, "expected a bool for %q", md.Path)
	}
	return b.Parse(valueToken(Bool(v), Position{}), md, nil)
}

func (boolTypeDef) Serialize(v Value, md *MemberDef) (string, error) {
	b, ok := v.AsBool()
	if !ok {
		return "", newPathError(CodeInvalidValue, md.Path, Position{}, "cannot serialize non-bool value for %q", md.Path)
	}
	if b {
		return "T", nil
	}
	return "F", nil
}
