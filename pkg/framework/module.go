// Package framework adds Kotlin support to a Gradle module by appending
// fragments to a Kotlin DSL build script.
//
// An Injector runs the orchestration shared by every target platform and
// delegates identifiers to a Provider (JVM or JS). When the plugins {} DSL
// is used and the Kotlin version needs an extra repository, the repository
// is also registered in the settings script through a SettingsWriter. That
// write happens on disk, outside the in-memory builder, and the two can
// succeed or fail independently.
package framework

import "github.com/albertocavalcante/ktgradle/pkg/kotlin"

// Module is the Gradle module Kotlin support is added to.
type Module struct {
	// Name is the module name, used in logs.
	Name string

	// ContentRoot is the module directory holding build.gradle.kts.
	ContentRoot string

	// BaseDir is the project base directory. The settings script is looked
	// up here when the content root has none.
	BaseDir string

	// SDK is the Java SDK of the module, nil when unknown.
	SDK *kotlin.SDK
}
