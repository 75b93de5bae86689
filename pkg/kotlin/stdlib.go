package kotlin

import "strings"

// SDK describes the Java SDK a module compiles against.
type SDK struct {
	// Name is a display name, e.g. "17" or "temurin-17".
	Name string

	// LanguageLevel is the Java feature release (7, 8, 11, 17, ...).
	LanguageLevel int
}

// Stdlib artifact ids.
const (
	StdlibArtifact     = "kotlin-stdlib"
	StdlibJDK7Artifact = "kotlin-stdlib-jdk7"
	StdlibJDK8Artifact = "kotlin-stdlib-jdk8"
	StdlibJRE7Artifact = "kotlin-stdlib-jre7"
	StdlibJRE8Artifact = "kotlin-stdlib-jre8"
	StdlibJSArtifact   = "kotlin-stdlib-js"
)

// jdkArtifactsSince is the first Kotlin release with the -jdk7/-jdk8 artifacts.
// Earlier releases published -jre7/-jre8 instead.
const jdkArtifactsSince = "1.2.0"

// jvmTarget18Since is the first Kotlin release able to emit JVM 1.8 bytecode.
const jvmTarget18Since = "1.1.0"

// StdlibArtifactID picks the stdlib flavour matching the module SDK.
func StdlibArtifactID(sdk *SDK, version string) string {
	if sdk == nil {
		return StdlibArtifact
	}

	jdkArtifacts := AtLeast(version, jdkArtifactsSince)
	switch {
	case sdk.LanguageLevel >= 8 && jdkArtifacts:
		return StdlibJDK8Artifact
	case sdk.LanguageLevel >= 8:
		return StdlibJRE8Artifact
	case sdk.LanguageLevel == 7 && jdkArtifacts:
		return StdlibJDK7Artifact
	case sdk.LanguageLevel == 7:
		return StdlibJRE7Artifact
	default:
		return StdlibArtifact
	}
}

// ModuleNotation strips the "kotlin-" prefix so the id can be used with the
// kotlin("...") dependency helper of the Gradle Kotlin DSL.
func ModuleNotation(artifactID string) string {
	return strings.TrimPrefix(artifactID, "kotlin-")
}

// DefaultJVMTarget returns the jvmTarget to configure for the module, or ""
// when the compiler default is fine.
func DefaultJVMTarget(sdk *SDK, version string) string {
	if sdk == nil || sdk.LanguageLevel < 8 {
		return ""
	}
	if !AtLeast(version, jvmTarget18Since) {
		return ""
	}
	return "1.8"
}
