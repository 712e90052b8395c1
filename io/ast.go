package io

// Node is any element of the parser tree: a container (*ObjectNode,
// *ArrayNode), a key-value pair (*KeyValue), or a primitive leaf
// (*Token, carrying its decoded Value).
type Node interface {
	isNode()
}

// ObjectNode is a container produced by a "{"/"}" pair.
type ObjectNode struct {
	Children []Node
	Pos      Position
}

// ArrayNode is a container produced by a "["/"]" pair.
type ArrayNode struct {
	Children []Node
	Pos      Position
}

// KeyValue is a key bound to a value by ":". Value is nil until the
// AST parser binds the following token/container to it.
type KeyValue struct {
	Key   string
	Value Node
}

func (*ObjectNode) isNode() {}
func (*ArrayNode) isNode()  {}
func (*KeyValue) isNode()   {}

// AstParser assembles a Node tree from a token stream using an
// explicit container stack, avoiding recursion on user-bounded input
// depth per the bracket-matching invariant.
type AstParser struct {
	stack     []Node // *ObjectNode or *ArrayNode, root always at index 0
	lastToken *Token
}

// NewAstParser returns an empty parser. The root container is
// created lazily on the first Process call.
func NewAstParser() *AstParser {
	return &AstParser{}
}

func (p *AstParser) ensureRoot() {
	if len(p.stack) == 0 {
		p.stack = append(p.stack, &ObjectNode{})
	}
}

func (p *AstParser) top() Node { return p.stack[len(p.stack)-1] }

func (p *AstParser) push(n Node) { p.stack = append(p.stack, n) }

func (p *AstParser) pop() { p.stack = p.stack[:len(p.stack)-1] }

func lastChildOf(container Node) Node {
	switch c := container.(type) {
	case *ObjectNode:
		if len(c.Children) == 0 {
			return nil
		}
		return c.Children[len(c.Children)-1]
	case *ArrayNode:
		if len(c.Children) == 0 {
			return nil
		}
		return c.Children[len(c.Children)-1]
	}
	return nil
}

func appendChild(container Node, v Node) {
	switch c := container.(type) {
	case *ObjectNode:
		c.Children = append(c.Children, v)
	case *ArrayNode:
		c.Children = append(c.Children, v)
	}
}

func replaceLastChild(container Node, v Node) {
	switch c := container.(type) {
	case *ObjectNode:
		c.Children[len(c.Children)-1] = v
	case *ArrayNode:
		c.Children[len(c.Children)-1] = v
	}
}

// addChild implements the addValue rule common to container-open and
// plain-value tokens: a value following ":" fills the pending
// key-value slot; otherwise it is appended as a new sibling.
func (p *AstParser) addChild(v Node) {
	cur := p.top()
	if p.lastToken != nil && p.lastToken.Type == Colon {
		if kv, ok := lastChildOf(cur).(*KeyValue); ok && kv.Value == nil {
			kv.Value = v
			return
		}
	}
	appendChild(cur, v)
}

// isPrimitiveKeyToken reports whether tok may be converted into a
// key by ":", per spec.md §4.3.2 (string, number, or boolean).
func isPrimitiveKeyToken(tok *Token) bool {
	switch tok.Type {
	case STRING, NUMBER, BOOLEAN:
		return true
	}
	return false
}

// Process advances the parser state machine by one token.
func (p *AstParser) Process(tok Token) error {
	if tok.Type == EOF {
		return nil
	}
	p.ensureRoot()

	switch tok.Type {
	case CurlyOpen:
		n := &ObjectNode{Pos: tok.Pos}
		p.addChild(n)
		p.push(n)

	case BracketOpen:
		n := &ArrayNode{Pos: tok.Pos}
		p.addChild(n)
		p.push(n)

	case CurlyClose, BracketClose:
		if len(p.stack) == 1 {
			return newError(CodeInvalidBracket, tok.Pos, "unexpected closing bracket %q", tok.Text)
		}
		top := p.top()
		_, isObj := top.(*ObjectNode)
		_, isArr := top.(*ArrayNode)
		if (tok.Type == CurlyClose && !isObj) || (tok.Type == BracketClose && !isArr) {
			return newError(CodeInvalidBracket, tok.Pos, "mismatched closing bracket %q", tok.Text)
		}
		p.pop()

	case Colon:
		cur := p.top()
		last := lastChildOf(cur)
		lastTok, ok := last.(*Token)
		if !ok || !isPrimitiveKeyToken(lastTok) {
			return newError(CodeInvalidHeaderItem, tok.Pos, "invalid key position before ':'")
		}
		kv := &KeyValue{Key: lastTok.Value.String()}
		replaceLastChild(cur, kv)

	case Comma:
		if p.lastToken != nil && p.lastToken.Type == Comma {
			gap := tok
			gap.Type = STRING
			gap.SubType = OpenString
			gap.Value = StringVal("")
			gap.Text = ""
			p.addChild(&gap)
		}

	default:
		local := tok
		p.addChild(&local)
	}

	p.lastToken = &tok
	return nil
}

// ToObject finalizes the tree. The container stack must have
// returned to depth 1 (only the implicit root); otherwise one or
// more brackets were never closed.
func (p *AstParser) ToObject() (Node, error) {
	p.ensureRoot()
	if len(p.stack) != 1 {
		return nil, newError(CodeOpenBracket, Position{}, "unclosed bracket: %d level(s) still open", len(p.stack)-1)
	}
	root := p.stack[0].(*ObjectNode)
	switch len(root.Children) {
	case 0:
		return root, nil
	case 1:
		return root.Children[0], nil
	default:
		return root, nil
	}
}

// ToSchema finalizes the tree and interprets it as a Schema
// definition (see schema.go's ParseSchema).
func (p *AstParser) ToSchema() (*Schema, error) {
	n, err := p.ToObject()
	if err != nil {
		return nil, err
	}
	return ParseSchema(n)
}

// ParseDocument tokenizes and parses text in one call, the common
// entry point for callers that do not need a schema.
func ParseDocument(text string) (Node, error) {
	tokens, err := NewTokenizer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	p := NewAstParser()
	for _, tok := range tokens {
		if err := p.Process(tok); err != nil {
			return nil, err
		}
	}
	return p.ToObject()
}
