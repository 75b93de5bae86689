package treesitter

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// BackendType selects a backend implementation.
type BackendType string

const (
	// BackendAuto uses CGO when available and nothing otherwise.
	BackendAuto BackendType = "auto"

	// BackendCGO requires the smacker/go-tree-sitter backend.
	BackendCGO BackendType = "cgo"

	// BackendNone disables tree-sitter.
	BackendNone BackendType = "none"
)

// EnvVarBackend overrides the configured backend type.
const EnvVarBackend = "KTGRADLE_TREESITTER_BACKEND"

// ErrNoBackend is returned when tree-sitter is disabled or unavailable.
var ErrNoBackend = errors.New("no tree-sitter backend available")

// NewBackend creates a backend of the given type.
func NewBackend(typ BackendType) (Backend, error) {
	switch typ {
	case BackendCGO:
		return NewCGOBackend()
	case BackendAuto, "":
		if b, err := NewCGOBackend(); err == nil {
			return b, nil
		}
		return nil, ErrNoBackend
	case BackendNone:
		return nil, ErrNoBackend
	default:
		return nil, fmt.Errorf("unknown backend type: %s", typ)
	}
}

// ResolveBackendType applies the KTGRADLE_TREESITTER_BACKEND override to
// the configured type.
func ResolveBackendType(configured BackendType) (BackendType, error) {
	v := strings.TrimSpace(os.Getenv(EnvVarBackend))
	if v == "" {
		if configured == "" {
			return BackendAuto, nil
		}
		return configured, nil
	}

	typ := BackendType(strings.ToLower(v))
	switch typ {
	case BackendAuto, BackendCGO, BackendNone:
		return typ, nil
	default:
		return "", fmt.Errorf("invalid %s value %q: must be one of auto, cgo, none", EnvVarBackend, v)
	}
}
