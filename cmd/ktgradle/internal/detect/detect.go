// Package detect inspects the local environment and project layout for the
// add-support command.
//
// # Java SDK
//
// The SDK language level comes from the "release" file every JDK ships in
// its home directory:
//
//	JAVA_VERSION="1.8.0_292"
//	JAVA_VERSION="17.0.1"
//
// Legacy "1.x" versions map to feature release x.
//
// # Build root
//
// The build root is the nearest directory, starting from the module
// directory and walking up, that holds a Gradle settings script.
package detect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
)

// ReleaseFileName is the JDK metadata file in JAVA_HOME.
const ReleaseFileName = "release"

// SettingsFileNames mark the root of a Gradle build.
var SettingsFileNames = []string{"settings.gradle.kts", "settings.gradle"}

// ErrNoJavaHome is returned when JAVA_HOME is not set.
var ErrNoJavaHome = errors.New("JAVA_HOME is not set")

// JavaHome returns the JAVA_HOME directory or "".
func JavaHome() string {
	return strings.TrimSpace(os.Getenv("JAVA_HOME"))
}

// JDKLevel reads the Java feature release of the JDK installed at javaHome.
func JDKLevel(javaHome string) (int, error) {
	if javaHome == "" {
		return 0, ErrNoJavaHome
	}

	path := filepath.Join(javaHome, ReleaseFileName)
	props, err := godotenv.Read(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	version := props["JAVA_VERSION"]
	if version == "" {
		return 0, fmt.Errorf("%s has no JAVA_VERSION", path)
	}
	return FeatureRelease(version)
}

// FeatureRelease extracts the feature release from a Java version string.
//
//	FeatureRelease("1.8.0_292") // 8
//	FeatureRelease("17.0.1")    // 17
//	FeatureRelease("21-ea")     // 21
func FeatureRelease(version string) (int, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(version), func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == '+'
	})
	if len(parts) == 0 {
		return 0, fmt.Errorf("invalid java version %q", version)
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid java version %q", version)
	}
	if n == 1 && len(parts) > 1 {
		if n, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid java version %q", version)
		}
	}
	if n <= 1 {
		return 0, fmt.Errorf("invalid java version %q", version)
	}
	return n, nil
}

// SDK returns the module SDK for a configured language level. A zero level
// detects it from JAVA_HOME. It returns nil when the level is unknown.
func SDK(level int) *kotlin.SDK {
	if level > 0 {
		return &kotlin.SDK{Name: strconv.Itoa(level), LanguageLevel: level}
	}

	home := JavaHome()
	level, err := JDKLevel(home)
	if err != nil {
		log.Debug("java sdk not detected", "java_home", home, "error", err)
		return nil
	}
	log.Debug("detected java sdk", "java_home", home, "level", level)
	return &kotlin.SDK{Name: filepath.Base(home), LanguageLevel: level}
}

// BuildRoot returns the nearest directory at or above dir holding a Gradle
// settings script, or dir itself when there is none.
func BuildRoot(dir string) string {
	current := dir
	for {
		for _, name := range SettingsFileNames {
			if _, err := os.Stat(filepath.Join(current, name)); err == nil {
				return current
			}
		}

		// Do not leave the repository.
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return dir
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
