package treesitter

import (
	"context"
	"errors"
	"testing"
)

func TestNewBackend_None(t *testing.T) {
	if _, err := NewBackend(BackendNone); !errors.Is(err, ErrNoBackend) {
		t.Errorf("NewBackend(none) error = %v, want ErrNoBackend", err)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("wasm"); err == nil {
		t.Error("NewBackend(wasm) should fail")
	}
}

func TestResolveBackendType(t *testing.T) {
	tests := []struct {
		env        string
		configured BackendType
		expected   BackendType
		wantErr    bool
	}{
		{"", "", BackendAuto, false},
		{"", BackendNone, BackendNone, false},
		{"cgo", BackendNone, BackendCGO, false},
		{" NONE ", BackendAuto, BackendNone, false},
		{"wazero", "", "", true},
	}

	for _, tt := range tests {
		t.Setenv(EnvVarBackend, tt.env)
		got, err := ResolveBackendType(tt.configured)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveBackendType(%q) env=%q error = %v, wantErr %v", tt.configured, tt.env, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ResolveBackendType(%q) env=%q = %q, want %q", tt.configured, tt.env, got, tt.expected)
		}
	}
}

func TestKotlinParse(t *testing.T) {
	backend, err := NewBackend(BackendAuto)
	if err != nil {
		t.Skipf("tree-sitter not available: %v", err)
	}
	defer backend.Close()

	if !backend.SupportsLanguage(Kotlin) {
		t.Fatal("backend should support kotlin")
	}

	parser, err := backend.NewParser(Kotlin)
	if err != nil {
		t.Fatalf("NewParser(kotlin) error = %v", err)
	}
	defer parser.Close()

	ctx := context.Background()

	good, err := parser.Parse(ctx, []byte("rootProject.name = \"demo\"\ninclude(\":app\")\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer good.Close()
	if good.HasError() {
		t.Error("valid script should parse without errors")
	}
	if got := good.RootNode().Type(); got != "source_file" {
		t.Errorf("root type = %q, want source_file", got)
	}

	bad, err := parser.Parse(ctx, []byte("include(\":app\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer bad.Close()
	if !bad.HasError() {
		t.Error("unbalanced call should produce an error tree")
	}
	if FirstError(bad.RootNode()) == nil {
		t.Error("FirstError should locate the error node")
	}
}

func TestBackendClosed(t *testing.T) {
	backend, err := NewBackend(BackendAuto)
	if err != nil {
		t.Skipf("tree-sitter not available: %v", err)
	}
	_ = backend.Close()

	var closed ErrBackendClosed
	if _, err := backend.NewParser(Kotlin); !errors.As(err, &closed) {
		t.Errorf("NewParser after Close error = %v, want ErrBackendClosed", err)
	}
}
