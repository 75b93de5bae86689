package framework

import "github.com/albertocavalcante/ktgradle/pkg/kotlin"

// JSProvider adds Kotlin/JS support with the kotlin2js plugin, which is only
// applied through the buildscript {} DSL.
type JSProvider struct {
	BaseProvider
}

// NewJSProvider returns a JS provider.
func NewJSProvider() *JSProvider {
	return &JSProvider{}
}

// ID implements Provider.
func (p *JSProvider) ID() string { return "js" }

// WithPluginsBlock implements Provider. Always false.
func (p *JSProvider) WithPluginsBlock() bool { return false }

// PluginDefinition implements Provider.
func (p *JSProvider) PluginDefinition() string { return `id("kotlin2js")` }

// LegacyPluginDefinition implements Provider.
func (p *JSProvider) LegacyPluginDefinition() string { return `plugin("kotlin2js")` }

// RuntimeLibraryDependency implements Provider.
func (p *JSProvider) RuntimeLibraryDependency(_ *kotlin.SDK, _ string) string {
	return kotlinDependency("implementation", kotlin.ModuleNotation(kotlin.StdlibJSArtifact), false)
}
