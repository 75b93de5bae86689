// Package settings reads and edits Gradle settings scripts written in the
// Kotlin DSL (settings.gradle.kts).
//
// The parser is structural, not a Kotlin compiler: it understands string
// literals (including templates and raw strings), comments, bracket nesting
// and brace-delimited blocks. That is enough to locate blocks such as
// pluginManagement { repositories { ... } } and to re-render the script with
// canonical indentation. Content it cannot model is rejected with
// ErrUnsupported rather than rewritten incorrectly.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned for scripts the parser cannot round-trip.
var ErrUnsupported = errors.New("unsupported settings script")

// SyntaxError reports malformed input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// NodeKind classifies a node of the script tree.
type NodeKind int

const (
	// Statement is a single statement; one-line blocks such as
	// maven { setUrl("...") } are kept as statements too.
	Statement NodeKind = iota
	// Block is a multi-line `header { ... }` construct.
	Block
	// Comment is a standalone line or block comment.
	Comment
	// Blank marks one or more empty lines between nodes.
	Blank
)

// Node is an element of the script tree. For blocks, Text is the header.
type Node struct {
	Kind     NodeKind
	Text     string
	Children []*Node
}

// Script is a parsed settings script.
type Script struct {
	root *Node
}

// Parse parses Kotlin DSL settings script source.
func Parse(src []byte) (*Script, error) {
	p := &parser{src: src, line: 1, lineEmpty: true}
	root := &Node{Kind: Block}
	if err := p.parseBody(root, false); err != nil {
		return nil, err
	}
	return &Script{root: root}, nil
}

// Root returns the implicit top-level block.
func (s *Script) Root() *Node {
	return s.root
}

// Clone returns a deep copy of the script.
func (s *Script) Clone() *Script {
	return &Script{root: s.root.clone()}
}

func (n *Node) clone() *Node {
	c := &Node{Kind: n.Kind, Text: n.Text}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone()
		}
	}
	return c
}

type parser struct {
	src  []byte
	pos  int
	line int

	// lineEmpty is true while nothing but whitespace has been seen on the
	// current line; blankPending records an empty line awaiting its node.
	lineEmpty    bool
	blankPending bool
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek(off int) byte {
	if p.pos+off < len(p.src) {
		return p.src[p.pos+off]
	}
	return 0
}

func (p *parser) addNode(parent, n *Node) {
	if p.blankPending && len(parent.Children) > 0 && parent.Children[len(parent.Children)-1].Kind != Blank {
		parent.Children = append(parent.Children, &Node{Kind: Blank})
	}
	p.blankPending = false
	parent.Children = append(parent.Children, n)
}

// parseBody consumes nodes into parent until EOF, or until the closing
// brace when nested is set.
func (p *parser) parseBody(parent *Node, nested bool) error {
	var stmt strings.Builder
	depth := 0

	flush := func() {
		if text := strings.TrimSpace(stmt.String()); text != "" {
			p.addNode(parent, &Node{Kind: Statement, Text: text})
		}
		stmt.Reset()
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]

		switch {
		case c == '"' || c == '\'':
			s, err := p.scanQuoted()
			if err != nil {
				return err
			}
			stmt.WriteString(s)
			p.lineEmpty = false

		case c == '/' && (p.peek(1) == '/' || p.peek(1) == '*'):
			comment, err := p.scanComment()
			if err != nil {
				return err
			}
			if depth == 0 && strings.TrimSpace(stmt.String()) == "" {
				p.addNode(parent, &Node{Kind: Comment, Text: comment})
			} else {
				stmt.WriteString(comment)
			}
			p.lineEmpty = false

		case c == '\n':
			p.pos++
			p.line++
			if depth > 0 {
				stmt.WriteByte('\n')
				continue
			}
			if strings.TrimSpace(stmt.String()) != "" {
				flush()
			} else if p.lineEmpty {
				p.blankPending = true
			}
			p.lineEmpty = true

		case c == ';' && depth == 0:
			p.pos++
			p.lineEmpty = false
			flush()

		case c == '(' || c == '[' || (c == '{' && depth > 0):
			depth++
			stmt.WriteByte(c)
			p.pos++
			p.lineEmpty = false

		case c == ')' || c == ']' || (c == '}' && depth > 0):
			depth--
			if depth < 0 {
				return p.errorf("unbalanced %q", c)
			}
			stmt.WriteByte(c)
			p.pos++
			p.lineEmpty = false

		case c == '{':
			if err := p.parseBlock(parent, &stmt); err != nil {
				return err
			}

		case c == '}':
			if !nested {
				return p.errorf("unexpected '}'")
			}
			flush()
			p.pos++
			p.lineEmpty = false
			return nil

		default:
			if c != ' ' && c != '\t' && c != '\r' {
				p.lineEmpty = false
			}
			stmt.WriteByte(c)
			p.pos++
		}
	}

	if nested {
		return p.errorf("unterminated block")
	}
	if depth != 0 {
		return p.errorf("unbalanced brackets at end of file")
	}
	flush()
	return nil
}

// parseBlock handles a '{' at bracket depth zero. stmt holds the header.
func (p *parser) parseBlock(parent *Node, stmt *strings.Builder) error {
	header := strings.TrimSpace(stmt.String())
	stmt.Reset()
	if header == "" {
		// Header on the previous line: `pluginManagement\n{`.
		if n := len(parent.Children); n > 0 && parent.Children[n-1].Kind == Statement {
			header = parent.Children[n-1].Text
			parent.Children = parent.Children[:n-1]
		}
	}

	open := p.pos
	openLine := p.line
	p.pos++
	p.lineEmpty = false

	pending := p.blankPending
	p.blankPending = false

	block := &Node{Kind: Block, Text: header}
	if err := p.parseBody(block, true); err != nil {
		return err
	}

	if p.line == openLine {
		// One-liner: keep it verbatim as part of the current statement.
		if header != "" {
			stmt.WriteString(header)
			stmt.WriteByte(' ')
		}
		stmt.Write(p.src[open:p.pos])
		p.blankPending = pending
		return nil
	}

	if !blockEndsLine(p.src, p.pos) {
		return fmt.Errorf("%w: text after closing brace on line %d", ErrUnsupported, p.line)
	}

	p.blankPending = pending
	p.addNode(parent, block)
	return nil
}

// blockEndsLine reports whether only whitespace, a comment, a semicolon or
// a closing brace follows pos on the current line.
func blockEndsLine(src []byte, pos int) bool {
	for i := pos; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\r':
			continue
		case '\n', ';', '}':
			return true
		case '/':
			return i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*')
		default:
			return false
		}
	}
	return true
}

// scanQuoted consumes a string or char literal and returns it verbatim.
func (p *parser) scanQuoted() (string, error) {
	start := p.pos
	startLine := p.line

	if p.src[p.pos] == '\'' {
		p.pos++
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case '\\':
				p.pos += 2
				continue
			case '\'':
				p.pos++
				return string(p.src[start:p.pos]), nil
			case '\n':
				return "", &SyntaxError{Line: startLine, Msg: "unterminated character literal"}
			}
			p.pos++
		}
		return "", &SyntaxError{Line: startLine, Msg: "unterminated character literal"}
	}

	raw := p.peek(1) == '"' && p.peek(2) == '"'
	if raw {
		p.pos += 3
	} else {
		p.pos++
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case raw && c == '"' && p.peek(1) == '"' && p.peek(2) == '"':
			p.pos += 3
			// Kotlin allows extra quotes right before the closing delimiter.
			for p.pos < len(p.src) && p.src[p.pos] == '"' {
				p.pos++
			}
			return string(p.src[start:p.pos]), nil
		case !raw && c == '"':
			p.pos++
			return string(p.src[start:p.pos]), nil
		case !raw && c == '\\':
			p.pos += 2
		case !raw && c == '\n':
			return "", &SyntaxError{Line: startLine, Msg: "unterminated string literal"}
		case c == '$' && p.peek(1) == '{':
			p.pos += 2
			if err := p.skipTemplate(); err != nil {
				return "", err
			}
		case c == '\n':
			p.line++
			p.pos++
		default:
			p.pos++
		}
	}
	return "", &SyntaxError{Line: startLine, Msg: "unterminated string literal"}
}

// skipTemplate consumes a ${...} template body up to its closing brace.
func (p *parser) skipTemplate() error {
	depth := 1
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '"', '\'':
			if _, err := p.scanQuoted(); err != nil {
				return err
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return p.errorf("unterminated string template")
}

// scanComment consumes a // or /* */ comment. A line comment stops before
// the newline.
func (p *parser) scanComment() (string, error) {
	start := p.pos
	if p.peek(1) == '/' {
		for p.pos < len(p.src) && p.src[p.pos] != '\n' {
			p.pos++
		}
		return strings.TrimRight(string(p.src[start:p.pos]), " \t\r"), nil
	}

	startLine := p.line
	p.pos += 2
	for p.pos < len(p.src) {
		if p.src[p.pos] == '*' && p.peek(1) == '/' {
			p.pos += 2
			return string(p.src[start:p.pos]), nil
		}
		if p.src[p.pos] == '\n' {
			p.line++
		}
		p.pos++
	}
	return "", &SyntaxError{Line: startLine, Msg: "unterminated block comment"}
}
