// Package treesitter is a thin abstraction over tree-sitter used to check
// that Gradle scripts are syntactically valid Kotlin before they are edited
// and to locate their `name { ... }` blocks.
//
// The only production backend is CGO-based (smacker/go-tree-sitter). Builds
// without CGO get a stub whose constructor returns ErrCGODisabled, and callers
// fall back to the structural parser in package settings.
//
// Selecting a backend:
//
//	export KTGRADLE_TREESITTER_BACKEND=cgo   # require the CGO backend
//	export KTGRADLE_TREESITTER_BACKEND=auto  # CGO if available (default)
//	export KTGRADLE_TREESITTER_BACKEND=none  # never use tree-sitter
package treesitter

import "context"

// Language is a grammar the backend can parse.
type Language string

// Kotlin covers .kt sources and .kts scripts.
const Kotlin Language = "kotlin"

// Backend creates parsers for a grammar.
type Backend interface {
	// Name returns the backend identifier ("cgo").
	Name() string

	// SupportsLanguage reports whether lang can be parsed.
	SupportsLanguage(lang Language) bool

	// NewParser returns a parser for lang.
	NewParser(lang Language) (Parser, error)

	// Close releases the backend. Parsers created earlier stay usable.
	Close() error
}

// Parser parses source into a syntax tree. Not safe for concurrent use.
type Parser interface {
	Language() Language
	Parse(ctx context.Context, source []byte) (Tree, error)
	Close() error
}

// Tree is a parsed syntax tree.
type Tree interface {
	RootNode() Node
	Source() []byte

	// HasError reports whether the tree contains error or missing nodes.
	HasError() bool

	Close() error
}

// Node is a node of a syntax tree.
type Node interface {
	Type() string
	StartPoint() Point
	Content(source []byte) string
	ChildCount() uint32
	Child(index uint32) Node
	StartByte() uint32
	EndByte() uint32
	IsNamed() bool
	IsError() bool
	IsMissing() bool
	IsNull() bool
}

// Point is a 0-indexed (row, column) position.
type Point struct {
	Row    uint32
	Column uint32
}

// ErrLanguageNotSupported is returned by NewParser for unknown grammars.
type ErrLanguageNotSupported struct {
	Language Language
	Backend  string
}

func (e ErrLanguageNotSupported) Error() string {
	return "language " + string(e.Language) + " is not supported by backend " + e.Backend
}

// ErrBackendClosed is returned when a closed backend is used.
type ErrBackendClosed struct {
	Backend string
}

func (e ErrBackendClosed) Error() string {
	return "backend " + e.Backend + " has been closed"
}

// Walk visits n and its descendants depth-first until visitor returns false.
func Walk(n Node, visitor func(Node) bool) bool {
	if n == nil || n.IsNull() {
		return true
	}
	if !visitor(n) {
		return false
	}
	for i := uint32(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil {
			if !Walk(child, visitor) {
				return false
			}
		}
	}
	return true
}

// FirstError returns the first error or missing node under n, or nil.
func FirstError(n Node) Node {
	var found Node
	Walk(n, func(node Node) bool {
		if node.IsError() || node.IsMissing() {
			found = node
			return false
		}
		return true
	})
	return found
}
