package settings

import (
	"strings"
	"unicode"
)

// Block names used by Gradle settings scripts.
const (
	PluginManagement = "pluginManagement"
	Repositories     = "repositories"
)

// FindBlock returns the first child block of n with the given header.
// A one-line child such as `name { a(); b() }` is expanded into a block in
// place so that it can be edited.
func (n *Node) FindBlock(name string) *Node {
	for i, c := range n.Children {
		if c.Kind == Block && c.Text == name {
			return c
		}
		if b, trailing := oneLineBlock(c, name); b != nil {
			n.Children[i] = b
			if trailing != "" {
				n.Children = append(n.Children[:i+1], append([]*Node{{Kind: Comment, Text: trailing}}, n.Children[i+1:]...)...)
			}
			return b
		}
	}
	return nil
}

// oneLineBlock parses a statement of the form `name { body }` into a block.
// trailing holds a comment that followed the closing brace.
func oneLineBlock(n *Node, name string) (block *Node, trailing string) {
	if n.Kind != Statement {
		return nil, ""
	}
	rest, ok := strings.CutPrefix(n.Text, name)
	if !ok {
		return nil, ""
	}
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "{") {
		return nil, ""
	}
	end, ok := closingBrace(rest)
	if !ok {
		return nil, ""
	}
	trailing = strings.TrimSpace(rest[end+1:])
	if trailing != "" && !strings.HasPrefix(trailing, "//") && !strings.HasPrefix(trailing, "/*") {
		return nil, ""
	}

	body, err := Parse([]byte(rest[1:end]))
	if err != nil {
		return nil, ""
	}
	return &Node{Kind: Block, Text: name, Children: body.root.Children}, trailing
}

// closingBrace returns the index of the brace closing the one that opens
// text, skipping string literals and comments.
func closingBrace(text string) (int, bool) {
	p := &parser{src: []byte(text), line: 1}
	depth := 0
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '"' || c == '\'':
			if _, err := p.scanQuoted(); err != nil {
				return 0, false
			}
			continue
		case c == '/' && (p.peek(1) == '/' || p.peek(1) == '*'):
			if _, err := p.scanComment(); err != nil {
				return 0, false
			}
			continue
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return p.pos, true
			}
		}
		p.pos++
	}
	return 0, false
}

// EnsureBlock returns the child block named name, creating it when absent.
// A created block is appended, or placed first when first is set.
func (n *Node) EnsureBlock(name string, first bool) *Node {
	if b := n.FindBlock(name); b != nil {
		return b
	}

	b := &Node{Kind: Block, Text: name}
	if !first {
		n.Children = append(n.Children, b)
		return b
	}

	i := leadingPreambleLen(n.Children)
	inserted := []*Node{b}
	if i < len(n.Children) && n.Children[i].Kind != Blank {
		inserted = append(inserted, &Node{Kind: Blank})
	}
	n.Children = append(n.Children[:i], append(inserted, n.Children[i:]...)...)
	return b
}

// leadingPreambleLen counts the leading comments, imports and blank lines
// that must stay above anything inserted first.
func leadingPreambleLen(nodes []*Node) int {
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if n.Kind == Comment || n.Kind == Blank ||
			(n.Kind == Statement && strings.HasPrefix(n.Text, "import ")) {
			i++
			continue
		}
		break
	}
	return i
}

// Contains reports whether n has a child equivalent to stmt.
func (n *Node) Contains(stmt string) bool {
	key := Key(stmt)
	for _, c := range n.Children {
		if (c.Kind == Statement || c.Kind == Block) && nodeKey(c) == key {
			return true
		}
	}
	return false
}

// AddStatement appends stmt to n unless an equivalent child exists.
// It reports whether the statement was added.
func (n *Node) AddStatement(stmt string) bool {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" || n.Contains(stmt) {
		return false
	}
	n.Children = append(n.Children, &Node{Kind: Statement, Text: stmt})
	return true
}

// AddPluginRepository ensures pluginManagement { repositories { line } } is
// present, creating the blocks as needed. pluginManagement is created as the
// first block of the script, which Gradle requires.
func (s *Script) AddPluginRepository(line string) bool {
	pm := s.root.EnsureBlock(PluginManagement, true)
	repos := pm.EnsureBlock(Repositories, false)
	return repos.AddStatement(line)
}

// Key returns the comparison key of a statement: comments and whitespace
// outside string literals are removed.
func Key(text string) string {
	var sb strings.Builder
	p := &parser{src: []byte(text), line: 1}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '"' || c == '\'':
			s, err := p.scanQuoted()
			if err != nil {
				// Unterminated literal: compare the rest verbatim.
				sb.Write(p.src[p.pos:])
				return sb.String()
			}
			sb.WriteString(s)
		case c == '/' && (p.peek(1) == '/' || p.peek(1) == '*'):
			if _, err := p.scanComment(); err != nil {
				return sb.String()
			}
		case unicode.IsSpace(rune(c)):
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return sb.String()
}

func nodeKey(n *Node) string {
	if n.Kind != Block {
		return Key(n.Text)
	}
	keys := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == Statement || c.Kind == Block {
			keys = append(keys, nodeKey(c))
		}
	}
	return Key(n.Text) + "{" + strings.Join(keys, ";") + "}"
}
