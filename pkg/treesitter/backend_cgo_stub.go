//go:build !cgo

package treesitter

import "fmt"

// ErrCGODisabled is returned when the CGO backend is requested in a build
// without CGO.
var ErrCGODisabled = fmt.Errorf("tree-sitter backend is not available: build with CGO_ENABLED=1 or set %s=none", EnvVarBackend)

// NewCGOBackend returns ErrCGODisabled.
func NewCGOBackend() (Backend, error) {
	return nil, ErrCGODisabled
}
