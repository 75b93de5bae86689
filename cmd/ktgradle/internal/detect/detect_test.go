package detect_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/albertocavalcante/ktgradle/cmd/ktgradle/internal/detect"
)

func TestFeatureRelease(t *testing.T) {
	tests := []struct {
		version string
		want    int
		wantErr bool
	}{
		{"1.8.0_292", 8, false},
		{"1.7.0_80", 7, false},
		{"11", 11, false},
		{"11.0.2", 11, false},
		{"17.0.1+12", 17, false},
		{"21-ea", 21, false},
		{"", 0, true},
		{"jdk", 0, true},
		{"1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := detect.FeatureRelease(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FeatureRelease(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FeatureRelease(%q) = %d, want %d", tt.version, got, tt.want)
			}
		})
	}
}

func TestJDKLevel(t *testing.T) {
	home := t.TempDir()
	release := `IMPLEMENTOR="Eclipse Adoptium"
JAVA_VERSION="17.0.8"
MODULES="java.base java.logging"
`
	createFile(t, home, detect.ReleaseFileName, release)

	got, err := detect.JDKLevel(home)
	if err != nil {
		t.Fatalf("JDKLevel() error = %v", err)
	}
	if got != 17 {
		t.Errorf("JDKLevel() = %d, want 17", got)
	}
}

func TestJDKLevel_Errors(t *testing.T) {
	if _, err := detect.JDKLevel(""); !errors.Is(err, detect.ErrNoJavaHome) {
		t.Errorf("JDKLevel(\"\") error = %v, want ErrNoJavaHome", err)
	}

	if _, err := detect.JDKLevel(t.TempDir()); err == nil {
		t.Error("JDKLevel() without release file should fail")
	}

	home := t.TempDir()
	createFile(t, home, detect.ReleaseFileName, "IMPLEMENTOR=\"Oracle\"\n")
	if _, err := detect.JDKLevel(home); err == nil {
		t.Error("JDKLevel() without JAVA_VERSION should fail")
	}
}

func TestSDK(t *testing.T) {
	sdk := detect.SDK(11)
	if sdk == nil || sdk.LanguageLevel != 11 {
		t.Fatalf("SDK(11) = %+v, want level 11", sdk)
	}

	home := t.TempDir()
	createFile(t, home, detect.ReleaseFileName, "JAVA_VERSION=\"1.8.0_292\"\n")
	t.Setenv("JAVA_HOME", home)
	sdk = detect.SDK(0)
	if sdk == nil || sdk.LanguageLevel != 8 {
		t.Fatalf("SDK(0) = %+v, want level 8 from JAVA_HOME", sdk)
	}

	t.Setenv("JAVA_HOME", "")
	if sdk := detect.SDK(0); sdk != nil {
		t.Errorf("SDK(0) without JAVA_HOME = %+v, want nil", sdk)
	}
}

func TestBuildRoot(t *testing.T) {
	root := t.TempDir()
	module := filepath.Join(root, "libs", "core")
	if err := os.MkdirAll(module, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := detect.BuildRoot(module); got != module {
		t.Errorf("BuildRoot() without settings = %q, want %q", got, module)
	}

	createFile(t, root, "settings.gradle.kts", "include(\":libs:core\")\n")
	if got := detect.BuildRoot(module); got != root {
		t.Errorf("BuildRoot() = %q, want %q", got, root)
	}
}

func TestBuildRoot_StopsAtGit(t *testing.T) {
	outer := t.TempDir()
	createFile(t, outer, "settings.gradle", "")

	repo := filepath.Join(outer, "repo")
	module := filepath.Join(repo, "app")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(module, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := detect.BuildRoot(module); got != module {
		t.Errorf("BuildRoot() = %q, want %q (must not leave the repository)", got, module)
	}
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}
