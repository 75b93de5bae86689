package framework

import (
	"github.com/albertocavalcante/ktgradle/pkg/buildscript"
	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
)

// Provider supplies the platform-specific parts of Kotlin support.
type Provider interface {
	// ID is the target name ("jvm", "js").
	ID() string

	// WithPluginsBlock reports whether the plugins {} DSL is used instead
	// of buildscript {} and apply {}.
	WithPluginsBlock() bool

	// PluginDefinition is the plugin id used inside plugins {}, without a
	// version.
	PluginDefinition() string

	// LegacyPluginDefinition is the entry used inside apply {}.
	LegacyPluginDefinition() string

	// RuntimeLibraryDependency is the dependency notation of the Kotlin
	// runtime library for sdk and the bundled version.
	RuntimeLibraryDependency(sdk *kotlin.SDK, version string) string

	// AfterCommonSupport runs after the shared fragments are appended.
	AfterCommonSupport(m Module, b *buildscript.Builder, version string)
}

// BaseProvider implements the optional parts of Provider.
type BaseProvider struct {
	PluginsBlock bool
}

// WithPluginsBlock implements Provider.
func (p BaseProvider) WithPluginsBlock() bool { return p.PluginsBlock }

// AfterCommonSupport implements Provider. It does nothing.
func (BaseProvider) AfterCommonSupport(Module, *buildscript.Builder, string) {}

// KotlinVersionProperty is the extra property holding the Kotlin version in
// the buildscript {} DSL.
const KotlinVersionProperty = "kotlin_version"

// kotlinDependency formats the kotlin("...") dependency helper. The legacy
// DSL passes the version property explicitly; with the plugins {} DSL the
// plugin version applies.
func kotlinDependency(configuration, module string, pluginsBlock bool) string {
	if pluginsBlock {
		return configuration + `(kotlin("` + module + `"))`
	}
	return configuration + `(kotlin("` + module + `", ` + KotlinVersionProperty + `))`
}
