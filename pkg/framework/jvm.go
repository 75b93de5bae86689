package framework

import (
	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/buildscript"
	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
)

// KotlinCompileImport is imported by the jvmTarget configuration block.
const KotlinCompileImport = "import org.jetbrains.kotlin.gradle.tasks.KotlinCompile"

// JVMProvider adds Kotlin/JVM support.
type JVMProvider struct {
	BaseProvider
}

// NewJVMProvider returns a JVM provider using the plugins {} DSL when
// withPluginsBlock is set.
func NewJVMProvider(withPluginsBlock bool) *JVMProvider {
	return &JVMProvider{BaseProvider{PluginsBlock: withPluginsBlock}}
}

// ID implements Provider.
func (p *JVMProvider) ID() string { return "jvm" }

// PluginDefinition implements Provider.
func (p *JVMProvider) PluginDefinition() string { return `kotlin("jvm")` }

// LegacyPluginDefinition implements Provider.
func (p *JVMProvider) LegacyPluginDefinition() string { return `plugin("kotlin")` }

// RuntimeLibraryDependency implements Provider. The stdlib flavour follows
// the SDK language level.
func (p *JVMProvider) RuntimeLibraryDependency(sdk *kotlin.SDK, version string) string {
	artifact := kotlin.StdlibArtifactID(sdk, version)
	return kotlinDependency("implementation", kotlin.ModuleNotation(artifact), p.PluginsBlock)
}

// AfterCommonSupport configures jvmTarget when the SDK and version call for it.
func (p *JVMProvider) AfterCommonSupport(m Module, b *buildscript.Builder, version string) {
	target := kotlin.DefaultJVMTarget(m.SDK, version)
	if target == "" {
		log.Trace("no default jvmTarget", "module", m.Name, "version", version)
		return
	}
	b.AddImport(KotlinCompileImport)
	b.AddOther(JVMTargetBlock(target))
}

// JVMTargetBlock configures the jvmTarget of every KotlinCompile task.
func JVMTargetBlock(target string) string {
	return "tasks.withType<KotlinCompile> {\n" +
		`    kotlinOptions.jvmTarget = "` + target + `"` + "\n" +
		"}"
}
