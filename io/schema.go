package io

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// MemberDef is the recognized option bag for a single schema member.
// A compiled Pattern is cached on the struct itself (§5: the cache
// is owned by the member, confined to a single thread, never shared
// across documents).
type MemberDef struct {
	Type       string
	Path       string
	Optional   bool
	Null       bool
	HasDefault bool
	Default    Value
	Choices    []Value
	Min        *float64
	Max        *float64
	MinLength  *int
	MaxLength  *int
	Pattern    string
	Of         *MemberDef  // element definition, arrays only
	Object     *Schema     // nested member schema, objects only

	compiled *regexp.Regexp
}

// CompiledPattern lazily anchors and compiles Pattern, caching the
// result. Anchoring inserts ^…$ only when the pattern does not
// already begin/end with them.
func (m *MemberDef) CompiledPattern() (*regexp.Regexp, error) {
	if m.compiled != nil {
		return m.compiled, nil
	}
	if m.Pattern == "" {
		return nil, nil
	}
	pat := m.Pattern
	if !strings.HasPrefix(pat, "^") {
		pat = "^" + pat
	}
	if !strings.HasSuffix(pat, "$") {
		pat = pat + "$"
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, newError(CodeInvalidSchema, Position{}, "invalid pattern for %q: %v", m.Path, err)
	}
	m.compiled = re
	return re, nil
}

// SchemaMember is one (name, MemberDef) entry of a Schema, in
// declaration order.
type SchemaMember struct {
	Name string
	Def  *MemberDef
}

// Schema is an ordered sequence of named MemberDefs.
type Schema struct {
	Members []SchemaMember
	hash    string
}

// Get looks up a member by name.
func (s *Schema) Get(name string) (*MemberDef, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m.Def, true
		}
	}
	return nil, false
}

// Hash returns the SHA-256 hex digest of the schema's canonical
// member listing (name and type of each member, in order), computed
// once and cached on the Schema. Nothing in this package keys a cache
// by it.
func (s *Schema) Hash() string {
	if s.hash != "" {
		return s.hash
	}
	var sb strings.Builder
	for _, m := range s.Members {
		fmt.Fprintf(&sb, "%s:%s;", m.Name, m.Def.Type)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	s.hash = hex.EncodeToString(sum[:])
	return s.hash
}

// ParseSchema interprets a parser-tree Node as a schema: an object
// whose keys are member names and whose values are either a bare
// type-name string (shorthand for {type: "..."}) or an object of
// MemberDef options.
func ParseSchema(n Node) (*Schema, error) {
	obj, ok := n.(*ObjectNode)
	if !ok {
		return nil, newError(CodeInvalidSchema, positionOf(n), "schema must be an object")
	}
	schema := &Schema{}
	for _, child := range obj.Children {
		kv, ok := child.(*KeyValue)
		if !ok {
			return nil, newError(CodeInvalidSchema, positionOf(child), "schema members must be key-value pairs")
		}
		def, err := parseMemberDef(kv.Key, kv.Value)
		if err != nil {
			return nil, err
		}
		schema.Members = append(schema.Members, SchemaMember{Name: kv.Key, Def: def})
	}
	return schema, nil
}

func parseMemberDef(name string, n Node) (*MemberDef, error) {
	if tok, ok := n.(*Token); ok {
		s, isStr := tok.Value.AsString()
		if !isStr {
			return nil, newError(CodeInvalidSchema, tok.Pos, "member %q shorthand must be a type name string", name)
		}
		return &MemberDef{Type: s, Path: name}, nil
	}

	obj, ok := n.(*ObjectNode)
	if !ok {
		return nil, newError(CodeInvalidSchema, positionOf(n), "member %q definition must be a string or object", name)
	}

	md := &MemberDef{Path: name}
	for _, child := range obj.Children {
		kv, ok := child.(*KeyValue)
		if !ok {
			continue
		}
		switch kv.Key {
		case "type":
			if s, ok := tokenString(kv.Value); ok {
				md.Type = s
			}
		case "optional":
			md.Optional, _ = tokenBool(kv.Value)
		case "null":
			md.Null, _ = tokenBool(kv.Value)
		case "default":
			if tok, ok := kv.Value.(*Token); ok {
				md.Default = tok.Value
				md.HasDefault = true
			}
		case "min":
			if f, ok := tokenFloat(kv.Value); ok {
				md.Min = &f
			}
		case "max":
			if f, ok := tokenFloat(kv.Value); ok {
				md.Max = &f
			}
		case "minLength":
			if f, ok := tokenFloat(kv.Value); ok {
				i := int(f)
				md.MinLength = &i
			}
		case "maxLength":
			if f, ok := tokenFloat(kv.Value); ok {
				i := int(f)
				md.MaxLength = &i
			}
		case "pattern":
			if s, ok := tokenString(kv.Value); ok {
				md.Pattern = s
			}
		case "choices":
			md.Choices = arrayOfValues(kv.Value)
		case "of":
			of, err := parseMemberDef(name+".*", kv.Value)
			if err != nil {
				return nil, err
			}
			md.Of = of
		case "schema":
			nested, err := ParseSchema(kv.Value)
			if err != nil {
				return nil, err
			}
			md.Object = nested
		}
	}
	if md.Type == "" {
		return nil, newError(CodeInvalidSchema, positionOf(n), "member %q is missing a type", name)
	}
	return md, nil
}

func tokenString(n Node) (string, bool) {
	tok, ok := n.(*Token)
	if !ok {
		return "", false
	}
	return tok.Value.AsString()
}

func tokenBool(n Node) (bool, bool) {
	tok, ok := n.(*Token)
	if !ok {
		return false, false
	}
	return tok.Value.AsBool()
}

func tokenFloat(n Node) (float64, bool) {
	tok, ok := n.(*Token)
	if !ok {
		return 0, false
	}
	return tok.Value.Number()
}

func arrayOfValues(n Node) []Value {
	arr, ok := n.(*ArrayNode)
	if !ok {
		return nil
	}
	vals := make([]Value, 0, len(arr.Children))
	for _, c := range arr.Children {
		if tok, ok := c.(*Token); ok {
			vals = append(vals, tok.Value)
		}
	}
	return vals
}

// positionOf extracts the best-effort source position of a Node for
// error reporting, whether it is a leaf token or a container opened
// by a bracket token.
func positionOf(n Node) Position {
	switch v := n.(type) {
	case *Token:
		return v.Pos
	case *ObjectNode:
		return v.Pos
	case *ArrayNode:
		return v.Pos
	case *KeyValue:
		return positionOf(v.Value)
	default:
		return Position{}
	}
}
