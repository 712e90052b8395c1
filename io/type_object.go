package io

type objectTypeDef struct{}

func init() {
	registerType([]string{"object"}, &objectTypeDef{})
}

func (objectTypeDef) GetType() string { return "object" }

// childrenOf reports whether obj's children are keyed (at least one
// *KeyValue) or positional (a plain sequence of values), per spec.md
// §4.4.4: an object member accepts either form.
func childrenOf(obj *ObjectNode) (named map[string]Node, positional []Node, isNamed bool) {
	for _, c := range obj.Children {
		if _, ok := c.(*KeyValue); ok {
			isNamed = true
			break
		}
	}
	if isNamed {
		named = make(map[string]Node, len(obj.Children))
		for _, c := range obj.Children {
			if kv, ok := c.(*KeyValue); ok {
				named[kv.Key] = kv.Value
			}
		}
		return named, nil, true
	}
	return nil, obj.Children, false
}

func (o objectTypeDef) Parse(node Node, md *MemberDef, defs Definitions) (Value, error) {
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

	var (
		named      map[string]Node
		positional []Node
		isNamed    bool
		pos        Position
	)
	switch c := node2.(type) {
	case *ObjectNode:
		named, positional, isNamed = childrenOf(c)
		pos = c.Pos
	case *ArrayNode:
		positional, pos = c.Children, c.Pos
	default:
		return Value{}, newPathError(CodeInvalidObject, md.Path, positionOf(node2), "expected an object for %q", md.Path)
	}
	if md.Object == nil {
		return Value{}, newPathError(CodeInvalidSchema, md.Path, pos, "object member %q has no nested schema", md.Path)
	}

	if isNamed {
		for key := range named {
			if _, ok := md.Object.Get(key); !ok {
				return Value{}, newPathError(CodeInvalidObject, md.Path, pos, "unknown member %q for %q", key, md.Path)
			}
		}
	} else if len(positional) > len(md.Object.Members) {
		return Value{}, newPathError(CodeInvalidObject, md.Path, pos, "too many members for %q", md.Path)
	}

	entries := make([]KeyedValue, 0, len(md.Object.Members))
	for i, m := range md.Object.Members {
		memberDef := *m.Def
		memberDef.Path = md.Path + "." + m.Name

		var child Node
		if isNamed {
			child = named[m.Name]
		} else if i < len(positional) {
			child = positional[i]
		}

		v, err := ParseMember(child, &memberDef, defs)
		if err != nil {
			return Value{}, err
		}
		if v.IsUndefined() {
			continue
		}
		entries = append(entries, KeyedValue{Key: m.Name, Value: v})
	}

	return ObjectValue(entries), nil
}

func (o objectTypeDef) Load(data any, md *MemberDef) (Value, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return Value{}, newPathError(CodeInvalidObject, md.Path, Position{}, "expected a map for %q", md.Path)
	}
	if md.Object == nil {
		return Value{}, newPathError(CodeInvalidSchema, md.Path, Position{}, "object member %q has no nested schema", md.Path)
	}

	entries := make([]KeyedValue, 0, len(md.Object.Members))
	for _, sm := range md.Object.Members {
		memberDef := *sm.Def
		memberDef.Path = md.Path + "." + sm.Name

		td, ok := LookupType(sm.Def.Type)
		if !ok {
			return Value{}, newPathError(CodeInvalidType, memberDef.Path, Position{}, "unknown type %q", sm.Def.Type)
		}

		raw, present := m[sm.Name]
		if !present {
			if !sm.Def.Optional {
				return Value{}, newPathError(CodeValueRequired, memberDef.Path, Position{}, "value required for %q", memberDef.Path)
			}
			if sm.Def.HasDefault {
				entries = append(entries, KeyedValue{Key: sm.Name, Value: sm.Def.Default})
			}
			continue
		}
		v, err := td.Load(raw, &memberDef)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, KeyedValue{Key: sm.Name, Value: v})
	}
	return ObjectValue(entries), nil
}

func (o objectTypeDef) Serialize(v Value, md *MemberDef) (string, error) {
	entries, ok := v.AsObject()
	if !ok {
		return "", newPathError(CodeInvalidObject, md.Path, Position{}, "cannot serialize non-object value for %q", md.Path)
	}
	if md.Object == nil {
		return "", newPathError(CodeInvalidSchema, md.Path, Position{}, "object member %q has no nested schema", md.Path)
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		sm, ok := md.Object.Get(e.Key)
		if !ok {
			continue
		}
		td, ok := LookupType(sm.Type)
		if !ok {
			return "", newPathError(CodeInvalidType, md.Path+"."+e.Key, Position{}, "unknown type %q", sm.Type)
		}
		s, err := td.Serialize(e.Value, sm)
		if err != nil {
			return "", err
		}
		parts = append(parts, e.Key+": "+s)
	}
	return "{" + joinComma(parts) + "}", nil
}
