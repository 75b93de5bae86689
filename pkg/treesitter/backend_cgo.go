//go:build cgo

package treesitter

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

type cgoBackend struct {
	mu     sync.RWMutex
	closed bool
}

// NewCGOBackend returns the smacker/go-tree-sitter backend.
func NewCGOBackend() (Backend, error) {
	return &cgoBackend{}, nil
}

func (b *cgoBackend) Name() string {
	return "cgo"
}

func (b *cgoBackend) SupportsLanguage(lang Language) bool {
	return lang == Kotlin
}

func (b *cgoBackend) NewParser(lang Language) (Parser, error) {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return nil, ErrBackendClosed{Backend: b.Name()}
	}

	if lang != Kotlin {
		return nil, ErrLanguageNotSupported{Language: lang, Backend: b.Name()}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(kotlin.GetLanguage())
	return &cgoParser{parser: parser, lang: lang}, nil
}

func (b *cgoBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

type cgoParser struct {
	parser *sitter.Parser
	lang   Language
}

func (p *cgoParser) Language() Language {
	return p.lang
}

func (p *cgoParser) Parse(ctx context.Context, source []byte) (Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return &cgoTree{tree: tree, source: source}, nil
}

func (p *cgoParser) Close() error {
	p.parser.Close()
	return nil
}

type cgoTree struct {
	tree   *sitter.Tree
	source []byte
}

func (t *cgoTree) RootNode() Node {
	return &cgoNode{node: t.tree.RootNode()}
}

func (t *cgoTree) Source() []byte {
	return t.source
}

func (t *cgoTree) HasError() bool {
	root := t.tree.RootNode()
	return root != nil && root.HasError()
}

func (t *cgoTree) Close() error {
	t.tree.Close()
	return nil
}

type cgoNode struct {
	node *sitter.Node
}

func (n *cgoNode) Type() string {
	if n.node == nil {
		return ""
	}
	return n.node.Type()
}

func (n *cgoNode) StartPoint() Point {
	if n.node == nil {
		return Point{}
	}
	p := n.node.StartPoint()
	return Point{Row: p.Row, Column: p.Column}
}

func (n *cgoNode) Content(source []byte) string {
	if n.node == nil {
		return ""
	}
	return n.node.Content(source)
}

func (n *cgoNode) ChildCount() uint32 {
	if n.node == nil {
		return 0
	}
	return n.node.ChildCount()
}

func (n *cgoNode) Child(index uint32) Node {
	if n.node == nil {
		return nil
	}
	child := n.node.Child(int(index))
	if child == nil {
		return nil
	}
	return &cgoNode{node: child}
}

func (n *cgoNode) StartByte() uint32 {
	if n.node == nil {
		return 0
	}
	return n.node.StartByte()
}

func (n *cgoNode) EndByte() uint32 {
	if n.node == nil {
		return 0
	}
	return n.node.EndByte()
}

func (n *cgoNode) IsNamed() bool {
	return n.node != nil && n.node.IsNamed()
}

func (n *cgoNode) IsError() bool {
	return n.node != nil && n.node.IsError()
}

func (n *cgoNode) IsMissing() bool {
	return n.node != nil && n.node.IsMissing()
}

func (n *cgoNode) IsNull() bool {
	return n.node == nil || n.node.IsNull()
}
