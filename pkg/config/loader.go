package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/albertocavalcante/ktgradle/internal/log"
)

// ConfigFileName is the name of the project-level config file.
const ConfigFileName = "ktgradle.toml"

// ConfigDirName is the name of the project-level config directory.
const ConfigDirName = ".ktgradle"

// GlobalConfigDir is the name of the global config directory inside user's config.
const GlobalConfigDir = "ktgradle"

// DotEnvFileName is read from the project directory. Its values never
// override variables already set in the process environment.
const DotEnvFileName = ".env"

// EnvPrefix prefixes every environment variable read by ktgradle.
const EnvPrefix = "KTGRADLE_"

// LoadFrom loads configuration starting from a specific directory, in order:
//  1. Built-in defaults
//  2. Global user config (~/.config/ktgradle/config.toml)
//  3. Project config (.ktgradle/config.toml or ktgradle.toml)
//  4. .env in dir
//  5. Environment variables (KTGRADLE_*)
//
// CLI flags are applied separately after LoadFrom() returns.
func LoadFrom(dir string) *Config {
	cfg := NewConfig()

	// Layer 2: Global user config
	if globalCfg := loadGlobalConfig(); globalCfg != nil {
		cfg.Merge(globalCfg)
	}

	if dir == "" {
		applyEnvironmentVariables(cfg, nil)
		return cfg
	}

	// Layer 3: Project config from specified directory
	if projectCfg := loadProjectConfigFrom(dir); projectCfg != nil {
		cfg.Merge(projectCfg)
	}

	// Layers 4 and 5: .env, then the process environment
	applyEnvironmentVariables(cfg, loadDotEnv(dir))

	return cfg
}

// loadGlobalConfig loads the global user configuration from ~/.config/ktgradle/config.toml.
func loadGlobalConfig() *Config {
	configPath := GetGlobalConfigPath()
	if configPath == "" {
		return nil
	}
	return loadConfigFile(configPath)
}

// loadProjectConfigFrom looks for project configuration starting from the given directory.
func loadProjectConfigFrom(dir string) *Config {
	// Search up the directory tree for config files
	current := dir
	for {
		for _, path := range GetProjectConfigPaths(current) {
			if cfg := loadConfigFile(path); cfg != nil {
				return cfg
			}
		}

		// Stop at filesystem root or git/Gradle build root
		if isWorkspaceRoot(current) {
			break
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return nil
}

// isWorkspaceRoot checks if the directory is a workspace root (has .git or a Gradle settings script).
func isWorkspaceRoot(dir string) bool {
	markers := []string{".git", "settings.gradle.kts", "settings.gradle"}
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// loadConfigFile loads a configuration from a TOML file.
func loadConfigFile(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		log.Warn("ignoring invalid config file", "path", path, "error", err)
		return nil
	}

	log.Debug("loaded config file", "path", path)
	return &cfg
}

// loadDotEnv reads dir/.env without touching the process environment.
func loadDotEnv(dir string) map[string]string {
	path := filepath.Join(dir, DotEnvFileName)
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ignoring invalid .env file", "path", path, "error", err)
		}
		return nil
	}
	log.Debug("loaded .env file", "path", path)
	return env
}

// applyEnvironmentVariables applies KTGRADLE_* variables to the config.
// The process environment wins over dotenv.
func applyEnvironmentVariables(cfg *Config, dotenv map[string]string) {
	getenv := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	// Kotlin settings
	if v := getenv(EnvPrefix + "KOTLIN_VERSION"); v != "" {
		cfg.Kotlin.Version = strings.TrimSpace(v)
	}
	if v := getenv(EnvPrefix + "KOTLIN_TARGET"); v != "" {
		cfg.Kotlin.Target = strings.ToLower(strings.TrimSpace(v))
	}
	applyBoolEnv(getenv(EnvPrefix+"KOTLIN_PLUGINS_BLOCK"), &cfg.Kotlin.PluginsBlock)

	// JVM settings
	if v := getenv(EnvPrefix + "JVM_JDK"); v != "" {
		if jdk, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.JVM.JDK = jdk
		} else {
			log.Warn("ignoring invalid "+EnvPrefix+"JVM_JDK", "value", v)
		}
	}

	// Settings script
	if v := getenv(EnvPrefix + "SETTINGS_PARSER"); v != "" {
		cfg.Settings.Parser = strings.TrimSpace(v)
	}

	// Output
	if v := getenv(EnvPrefix + "OUTPUT_FILE_NAME"); v != "" {
		cfg.Output.FileName = strings.TrimSpace(v)
	}
}

// applyBoolEnv applies a boolean environment value to a pointer.
func applyBoolEnv(v string, target **bool) {
	if v == "" {
		return
	}
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "true" || v == "1" || v == "yes" {
		t := true
		*target = &t
	} else if v == "false" || v == "0" || v == "no" {
		f := false
		*target = &f
	}
}

// GetGlobalConfigPath returns the path to the global config file.
func GetGlobalConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, GlobalConfigDir, "config.toml")
}

// GetProjectConfigPaths returns potential project config paths for a given directory.
func GetProjectConfigPaths(dir string) []string {
	return []string{
		filepath.Join(dir, ConfigDirName, "config.toml"),
		filepath.Join(dir, ConfigFileName),
	}
}
