package settings

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/treesitter"
)

// Validator checks that source is valid Kotlin script before it is edited.
type Validator interface {
	Name() string
	Validate(ctx context.Context, src []byte) error
}

// StructuralValidator accepts anything Parse accepts.
type StructuralValidator struct{}

// Name implements Validator.
func (StructuralValidator) Name() string { return "heuristic" }

// Validate implements Validator.
func (StructuralValidator) Validate(_ context.Context, src []byte) error {
	_, err := Parse(src)
	return err
}

// TreeSitterValidator rejects scripts the tree-sitter Kotlin grammar reports
// errors for.
type TreeSitterValidator struct {
	backend treesitter.Backend
}

// NewTreeSitterValidator wraps a backend that supports Kotlin.
func NewTreeSitterValidator(backend treesitter.Backend) (*TreeSitterValidator, error) {
	if !backend.SupportsLanguage(treesitter.Kotlin) {
		return nil, treesitter.ErrLanguageNotSupported{Language: treesitter.Kotlin, Backend: backend.Name()}
	}
	return &TreeSitterValidator{backend: backend}, nil
}

// Name implements Validator.
func (v *TreeSitterValidator) Name() string { return "treesitter" }

// Validate implements Validator.
func (v *TreeSitterValidator) Validate(ctx context.Context, src []byte) error {
	parser, err := v.backend.NewParser(treesitter.Kotlin)
	if err != nil {
		return err
	}
	defer func() { _ = parser.Close() }()

	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return err
	}
	defer func() { _ = tree.Close() }()

	if !tree.HasError() {
		return nil
	}
	line := 0
	if n := treesitter.FirstError(tree.RootNode()); n != nil {
		line = int(n.StartPoint().Row) + 1
	}
	return &SyntaxError{Line: line, Msg: "kotlin grammar reported a syntax error"}
}

// Validator kinds accepted by NewValidator.
const (
	ValidatorHeuristic  = "heuristic"
	ValidatorTreeSitter = "treesitter"
	ValidatorAuto       = "auto"
)

// NewValidator returns the validator for kind. "auto" prefers tree-sitter
// and falls back to the structural check when no backend is available.
func NewValidator(kind string) (Validator, error) {
	switch kind {
	case ValidatorHeuristic:
		return StructuralValidator{}, nil
	case ValidatorTreeSitter, ValidatorAuto, "":
	default:
		return nil, fmt.Errorf("unknown settings parser %q", kind)
	}

	configured := treesitter.BackendCGO
	if kind != ValidatorTreeSitter {
		configured = treesitter.BackendAuto
	}
	typ, err := treesitter.ResolveBackendType(configured)
	if err != nil {
		return nil, err
	}

	backend, err := treesitter.NewBackend(typ)
	if err != nil {
		if kind == ValidatorTreeSitter {
			return nil, fmt.Errorf("failed to create tree-sitter backend: %w", err)
		}
		log.Debug("tree-sitter unavailable, using structural settings parser", "error", err)
		return StructuralValidator{}, nil
	}
	return NewTreeSitterValidator(backend)
}
