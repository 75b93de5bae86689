package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
)

// isolate points the global config at an empty directory and clears
// KTGRADLE_* variables that may leak in from the environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"KTGRADLE_KOTLIN_VERSION",
		"KTGRADLE_KOTLIN_TARGET",
		"KTGRADLE_KOTLIN_PLUGINS_BLOCK",
		"KTGRADLE_JVM_JDK",
		"KTGRADLE_SETTINGS_PARSER",
		"KTGRADLE_OUTPUT_FILE_NAME",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Kotlin.Version != kotlin.BundledVersion {
		t.Errorf("kotlin version should be %q, got %q", kotlin.BundledVersion, cfg.Kotlin.Version)
	}
	if cfg.Kotlin.Target != "jvm" {
		t.Errorf("kotlin target should be 'jvm', got %q", cfg.Kotlin.Target)
	}
	if !cfg.PluginsBlockEnabled() {
		t.Error("plugins block should be enabled by default")
	}
	if cfg.Settings.Parser != "auto" {
		t.Errorf("settings parser should be 'auto', got %q", cfg.Settings.Parser)
	}
	if cfg.Output.FileName != "build.gradle.kts" {
		t.Errorf("output file name should be 'build.gradle.kts', got %q", cfg.Output.FileName)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad version", func(c *Config) { c.Kotlin.Version = "latest" }},
		{"negative jdk", func(c *Config) { c.JVM.JDK = -1 }},
		{"bad parser", func(c *Config) { c.Settings.Parser = "regex" }},
		{"empty file name", func(c *Config) { c.Output.FileName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := NewConfig()
	falseVal := false
	other := &Config{
		Kotlin: KotlinConfig{
			Version:      "1.3.0-eap-1",
			PluginsBlock: &falseVal,
		},
		JVM: JVMConfig{JDK: 11},
	}
	other.Settings.Parser = "treesitter"

	base.Merge(other)

	if base.Kotlin.Version != "1.3.0-eap-1" {
		t.Errorf("kotlin version should be '1.3.0-eap-1', got %q", base.Kotlin.Version)
	}
	if base.Kotlin.Target != "jvm" {
		t.Errorf("unset target should keep the default, got %q", base.Kotlin.Target)
	}
	if base.PluginsBlockEnabled() {
		t.Error("plugins block should be disabled after merge")
	}
	if base.JVM.JDK != 11 {
		t.Errorf("jdk should be 11, got %d", base.JVM.JDK)
	}
	if base.Settings.Parser != "treesitter" {
		t.Errorf("settings parser should be 'treesitter', got %q", base.Settings.Parser)
	}

	base.Merge(nil)
}

func TestLoadConfigFile(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[kotlin]
version = "1.2.71"
target = "js"
plugins_block = false

[jvm]
jdk = 8

[settings]
parser = "heuristic"

[output]
file_name = "kotlin.gradle.kts"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := loadConfigFile(configPath)
	if cfg == nil {
		t.Fatal("loadConfigFile returned nil")
	}

	if cfg.Kotlin.Version != "1.2.71" {
		t.Errorf("kotlin version should be '1.2.71', got %q", cfg.Kotlin.Version)
	}
	if cfg.Kotlin.Target != "js" {
		t.Errorf("kotlin target should be 'js', got %q", cfg.Kotlin.Target)
	}
	if cfg.Kotlin.PluginsBlock == nil || *cfg.Kotlin.PluginsBlock {
		t.Error("plugins block should be explicitly disabled")
	}
	if cfg.JVM.JDK != 8 {
		t.Errorf("jdk should be 8, got %d", cfg.JVM.JDK)
	}
	if cfg.Settings.Parser != "heuristic" {
		t.Errorf("settings parser should be 'heuristic', got %q", cfg.Settings.Parser)
	}
	if cfg.Output.FileName != "kotlin.gradle.kts" {
		t.Errorf("output file name should be 'kotlin.gradle.kts', got %q", cfg.Output.FileName)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[kotlin\nversion = "), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if cfg := loadConfigFile(configPath); cfg != nil {
		t.Error("invalid TOML should be ignored")
	}
}

func TestApplyEnvironmentVariables(t *testing.T) {
	isolate(t)
	cfg := NewConfig()

	// Set environment variables
	t.Setenv("KTGRADLE_KOTLIN_VERSION", "1.3.0-rc-57")
	t.Setenv("KTGRADLE_KOTLIN_TARGET", "JS")
	t.Setenv("KTGRADLE_KOTLIN_PLUGINS_BLOCK", "no")
	t.Setenv("KTGRADLE_JVM_JDK", "17")
	t.Setenv("KTGRADLE_SETTINGS_PARSER", "heuristic")

	applyEnvironmentVariables(cfg, nil)

	if cfg.Kotlin.Version != "1.3.0-rc-57" {
		t.Errorf("kotlin version should be '1.3.0-rc-57', got %q", cfg.Kotlin.Version)
	}
	if cfg.Kotlin.Target != "js" {
		t.Errorf("kotlin target should be 'js', got %q", cfg.Kotlin.Target)
	}
	if cfg.PluginsBlockEnabled() {
		t.Error("plugins block should be disabled via env var")
	}
	if cfg.JVM.JDK != 17 {
		t.Errorf("jdk should be 17, got %d", cfg.JVM.JDK)
	}
	if cfg.Settings.Parser != "heuristic" {
		t.Errorf("settings parser should be 'heuristic', got %q", cfg.Settings.Parser)
	}
}

func TestApplyEnvironmentVariablesInvalidJDK(t *testing.T) {
	isolate(t)
	cfg := NewConfig()
	t.Setenv("KTGRADLE_JVM_JDK", "seventeen")

	applyEnvironmentVariables(cfg, nil)

	if cfg.JVM.JDK != 0 {
		t.Errorf("invalid jdk should be ignored, got %d", cfg.JVM.JDK)
	}
}

func TestApplyBoolEnv(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{"true", ptr(true)},
		{"1", ptr(true)},
		{"YES", ptr(true)},
		{"false", ptr(false)},
		{"0", ptr(false)},
		{"maybe", nil},
		{"", nil},
	}

	for _, tt := range tests {
		var got *bool
		applyBoolEnv(tt.input, &got)
		switch {
		case tt.expected == nil && got != nil:
			t.Errorf("applyBoolEnv(%q) = %v, want unset", tt.input, *got)
		case tt.expected != nil && (got == nil || *got != *tt.expected):
			t.Errorf("applyBoolEnv(%q) = %v, want %v", tt.input, got, *tt.expected)
		}
	}
}

func ptr(b bool) *bool { return &b }

func TestProjectConfigSearch(t *testing.T) {
	// Create a temp directory structure
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "project", "app")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatalf("failed to create project dir: %v", err)
	}

	// Create settings.gradle.kts marker at build root
	settingsPath := filepath.Join(tmpDir, "project", "settings.gradle.kts")
	if err := os.WriteFile(settingsPath, []byte("include(\":app\")\n"), 0o644); err != nil {
		t.Fatalf("failed to write settings script: %v", err)
	}

	// Create ktgradle.toml at build root
	configPath := filepath.Join(tmpDir, "project", "ktgradle.toml")
	configContent := `
[kotlin]
target = "js"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	// Load config from module dir
	cfg := loadProjectConfigFrom(projectDir)
	if cfg == nil {
		t.Fatal("loadProjectConfigFrom returned nil")
	}
	if cfg.Kotlin.Target != "js" {
		t.Errorf("kotlin target should be 'js', got %q", cfg.Kotlin.Target)
	}
}

func TestProjectConfigSearchStopsAtRoot(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("[kotlin]\ntarget = \"js\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	projectDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(filepath.Join(projectDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	if cfg := loadProjectConfigFrom(projectDir); cfg != nil {
		t.Error("search should stop at the .git root")
	}
}

func TestLoadFromLayers(t *testing.T) {
	isolate(t)
	global := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(global, GlobalConfigDir), 0o755); err != nil {
		t.Fatal(err)
	}
	globalContent := "[kotlin]\nversion = \"1.2.0\"\ntarget = \"js\"\n\n[jvm]\njdk = 8\n"
	if err := os.WriteFile(filepath.Join(global, GlobalConfigDir, "config.toml"), []byte(globalContent), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ConfigDirName), 0o755); err != nil {
		t.Fatal(err)
	}
	projectContent := "[kotlin]\nversion = \"1.2.71\"\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigDirName, "config.toml"), []byte(projectContent), 0o644); err != nil {
		t.Fatal(err)
	}
	dotenv := "KTGRADLE_KOTLIN_TARGET=jvm\nKTGRADLE_JVM_JDK=11\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFileName), []byte(dotenv), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KTGRADLE_JVM_JDK", "17")

	cfg := LoadFrom(dir)

	if cfg.Kotlin.Version != "1.2.71" {
		t.Errorf("project config should override global version, got %q", cfg.Kotlin.Version)
	}
	if cfg.Kotlin.Target != "jvm" {
		t.Errorf(".env should override config files, got target %q", cfg.Kotlin.Target)
	}
	if cfg.JVM.JDK != 17 {
		t.Errorf("process environment should override .env, got jdk %d", cfg.JVM.JDK)
	}
	if _, ok := os.LookupEnv("KTGRADLE_KOTLIN_TARGET"); ok {
		t.Error(".env must not modify the process environment")
	}
}

func TestWorkspaceRootDetection(t *testing.T) {
	for _, marker := range []string{".git", "settings.gradle.kts", "settings.gradle"} {
		t.Run(marker, func(t *testing.T) {
			tmpDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(tmpDir, marker), []byte(""), 0o644); err != nil {
				t.Fatalf("failed to write %s: %v", marker, err)
			}
			if !isWorkspaceRoot(tmpDir) {
				t.Errorf("directory with %s should be workspace root", marker)
			}
		})
	}

	if isWorkspaceRoot(t.TempDir()) {
		t.Error("empty directory should not be workspace root")
	}
}

func TestGetProjectConfigPaths(t *testing.T) {
	paths := GetProjectConfigPaths("/repo")
	want := []string{
		filepath.Join("/repo", ".ktgradle", "config.toml"),
		filepath.Join("/repo", "ktgradle.toml"),
	}
	if len(paths) != len(want) {
		t.Fatalf("GetProjectConfigPaths() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("GetProjectConfigPaths()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}
