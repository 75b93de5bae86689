// Package config provides configuration management for ktgradle.
// It supports multi-layer configuration with precedence:
//  1. Built-in defaults (lowest priority)
//  2. Global user config (~/.config/ktgradle/config.toml)
//  3. Project config (.ktgradle/config.toml or ktgradle.toml)
//  4. .env file in the project directory
//  5. Environment variables (KTGRADLE_*)
//  6. CLI flags (highest priority)
package config

import (
	"fmt"
	"slices"

	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
)

// Config is the main configuration struct for ktgradle.
type Config struct {
	// Kotlin configures the Kotlin version and target platform.
	Kotlin KotlinConfig `toml:"kotlin"`

	// JVM configures the Java SDK of generated modules.
	JVM JVMConfig `toml:"jvm"`

	// Settings configures how settings.gradle.kts is edited.
	Settings SettingsConfig `toml:"settings"`

	// Output configures the generated build script.
	Output OutputConfig `toml:"output"`
}

// KotlinConfig holds Kotlin-specific configuration.
type KotlinConfig struct {
	// Version is the bundled Kotlin version used for generated scripts.
	Version string `toml:"version"`

	// Target is the target platform ("jvm" or "js").
	Target string `toml:"target"`

	// PluginsBlock selects the plugins {} DSL over buildscript {} and apply {}.
	PluginsBlock *bool `toml:"plugins_block"`
}

// JVMConfig holds Java SDK configuration.
type JVMConfig struct {
	// JDK is the Java feature release of the module SDK. Zero means detect
	// it from JAVA_HOME.
	JDK int `toml:"jdk"`
}

// SettingsConfig holds settings script configuration.
type SettingsConfig struct {
	// Parser is the validation strategy ("heuristic", "treesitter", "auto").
	Parser string `toml:"parser"`
}

// OutputConfig holds build script output configuration.
type OutputConfig struct {
	// FileName is the build script written into the module directory.
	FileName string `toml:"file_name"`
}

// Parsers accepted by [settings] parser.
var Parsers = []string{"heuristic", "treesitter", "auto"}

// NewConfig creates a new Config with built-in defaults.
func NewConfig() *Config {
	trueVal := true
	return &Config{
		Kotlin: KotlinConfig{
			Version:      kotlin.BundledVersion,
			Target:       "jvm",
			PluginsBlock: &trueVal,
		},
		Settings: SettingsConfig{
			Parser: "auto",
		},
		Output: OutputConfig{
			FileName: "build.gradle.kts",
		},
	}
}

// PluginsBlockEnabled reports whether the plugins {} DSL is selected.
func (c *Config) PluginsBlockEnabled() bool {
	return c.Kotlin.PluginsBlock != nil && *c.Kotlin.PluginsBlock
}

// Validate checks values that cannot be validated while decoding.
func (c *Config) Validate() error {
	if !kotlin.IsValid(c.Kotlin.Version) {
		return fmt.Errorf("invalid kotlin version %q", c.Kotlin.Version)
	}
	if c.JVM.JDK < 0 {
		return fmt.Errorf("invalid jdk %d", c.JVM.JDK)
	}
	if !slices.Contains(Parsers, c.Settings.Parser) {
		return fmt.Errorf("invalid settings parser %q: must be one of %v", c.Settings.Parser, Parsers)
	}
	if c.Output.FileName == "" {
		return fmt.Errorf("output file name must not be empty")
	}
	return nil
}

// Merge merges another config into this one (other takes precedence).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Merge Kotlin config
	if other.Kotlin.Version != "" {
		c.Kotlin.Version = other.Kotlin.Version
	}
	if other.Kotlin.Target != "" {
		c.Kotlin.Target = other.Kotlin.Target
	}
	if other.Kotlin.PluginsBlock != nil {
		c.Kotlin.PluginsBlock = other.Kotlin.PluginsBlock
	}

	// Merge JVM config
	if other.JVM.JDK != 0 {
		c.JVM.JDK = other.JVM.JDK
	}

	// Merge settings config
	if other.Settings.Parser != "" {
		c.Settings.Parser = other.Settings.Parser
	}

	// Merge output config
	if other.Output.FileName != "" {
		c.Output.FileName = other.Output.FileName
	}
}
