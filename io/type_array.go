package io

import "fmt"

type arrayTypeDef struct{}

func init() {
	registerType([]string{"array"}, &arrayTypeDef{})
}

func (arrayTypeDef) GetType() string { return "array" }

func (arrayTypeDef) Parse(node Node, md *MemberDef, defs Definitions) (Value, error) {
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

	arr, ok := node2.(*ArrayNode)
	if !ok {
		return Value{}, newPathError(CodeInvalidArray, md.Path, positionOf(node2), "expected an array for %q", md.Path)
	}

	if md.MaxLength != nil && len(arr.Children) > *md.MaxLength {
		return Value{}, newPathError(CodeInvalidMaxLength, md.Path, arr.Pos, "length %d exceeds max length %d for %q", len(arr.Children), *md.MaxLength, md.Path)
	}
	if md.MinLength != nil && len(arr.Children) < *md.MinLength {
		return Value{}, newPathError(CodeInvalidMinLength, md.Path, arr.Pos, "length %d is below min length %d for %q", len(arr.Children), *md.MinLength, md.Path)
	}

	if md.Of == nil {
		return Value{}, newPathError(CodeInvalidSchema, md.Path, arr.Pos, "array member %q has no element type", md.Path)
	}

	elements := make([]Value, 0, len(arr.Children))
	for i, child := range arr.Children {
		elemDef := *md.Of
		elemDef.Path = fmt.Sprintf("%s[%d]", md.Path, i)
		v, err := ParseMember(child, &elemDef, defs)
		if err != nil {
			return Value{}, err
		}
		elements = append(elements, v)
	}
	return ArrayValue(elements), nil
}

func (a arrayTypeDef) Load(data any, md *MemberDef) (Value, error) {
	items, ok := data.([]any)
	if !ok {
		return Value{}, newPathError(CodeInvalidArray, md.Path, Position{}, "expected a slice for %q", md.Path)
	}
	if md.Of == nil {
		return Value{}, newPathError(CodeInvalidSchema, md.Path, Position{}, "array member %q has no element type", md.Path)
	}
	elemTD, ok := LookupType(md.Of.Type)
	if !ok {
		return Value{}, newPathError(CodeInvalidType, md.Path, Position{}, "unknown element type %q", md.Of.Type)
	}
	elements := make([]Value, 0, len(items))
	for i, item := range items {
		elemDef := *md.Of
		elemDef.Path = fmt.Sprintf("%s[%d]", md.Path, i)
		v, err := elemTD.Load(item, &elemDef)
		if err != nil {
			return Value{}, err
		}
		elements = append(elements, v)
	}
	return ArrayValue(elements), nil
}

func (arrayTypeDef) Serialize(v Value, md *MemberDef) (string, error) {
	elems, ok := v.AsArray()
	if !ok {
		return "", newPathError(CodeInvalidArray, md.Path, Position{}, "cannot serialize non-array value for %q", md.Path)
	}
	if md.Of == nil {
		return "", newPathError(CodeInvalidSchema, md.Path, Position{}, "array member %q has no element type", md.Path)
	}
	elemTD, ok := LookupType(md.Of.Type)
	if !ok {
		return "", newPathError(CodeInvalidType, md.Path, Position{}, "unknown element type %q", md.Of.Type)
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, err := elemTD.Serialize(e, md.Of)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + joinComma(parts) + "]", nil
}
