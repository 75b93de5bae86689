package framework

import (
	"context"

	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/buildscript"
	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
)

// Injector appends Kotlin support to a build script.
type Injector struct {
	Provider Provider

	// Versions supplies the bundled version and repository lookup.
	// Defaults to kotlin.DefaultVersions().
	Versions kotlin.Versions

	// Settings receives the plugin repository when the plugins {} DSL
	// needs one. Defaults to a SettingsFileWriter.
	Settings SettingsWriter
}

// NewInjector returns an Injector for p with the default versions and
// settings writer.
func NewInjector(p Provider) *Injector {
	return &Injector{
		Provider: p,
		Versions: kotlin.DefaultVersions(),
		Settings: NewSettingsFileWriter(nil),
	}
}

// AddSupport appends the Kotlin plugin, runtime dependency and repositories
// for m to b. A nil builder is a no-op.
//
// With the plugins {} DSL, an extra repository required by a pre-release
// version is written to the settings script. A failure there is logged and
// does not affect b.
func (inj *Injector) AddSupport(m Module, b *buildscript.Builder) error {
	if b == nil {
		log.Debug("no build script builder, skipping kotlin support", "module", m.Name)
		return nil
	}

	logger := log.Component("injector")
	if b.OnAppend == nil && log.Verbosity() >= log.VerbosityTrace {
		b.OnAppend = func(s buildscript.Section, fragment string) {
			logger.Log(context.Background(), log.LevelTrace, "append", "section", s.String(), "fragment", fragment)
		}
		defer func() { b.OnAppend = nil }()
	}

	versions := inj.Versions
	if versions == nil {
		versions = kotlin.DefaultVersions()
	}
	p := inj.Provider
	pluginsBlock := p.WithPluginsBlock()

	bundled := versions.Bundled()
	version := bundled
	if kotlin.IsSnapshot(bundled) {
		version = kotlin.LastSnapshotVersion
	}
	logger.Debug("adding kotlin support",
		"module", m.Name,
		"target", p.ID(),
		"bundled", bundled,
		"version", version,
		"plugins_block", pluginsBlock,
	)

	if repo := versions.RepositoryFor(bundled); repo != nil {
		line := repo.Snippet()
		if pluginsBlock {
			inj.addSettingsRepository(line, m)
		} else {
			b.AddBuildscriptRepositoriesDefinition(line)
		}
		b.AddRepositoriesDefinition(kotlin.MavenCentral).
			AddRepositoriesDefinition(line)
	}

	if pluginsBlock {
		b.AddPluginDefinitionInPluginsGroup(p.PluginDefinition() + ` version "` + version + `"`).
			AddDependencyNotation(p.RuntimeLibraryDependency(m.SDK, bundled))
	} else {
		b.AddPropertyDefinition("val " + KotlinVersionProperty + ": String by extra").
			AddPluginDefinition(p.LegacyPluginDefinition()).
			AddBuildscriptRepositoriesDefinition(kotlin.MavenCentral).
			AddRepositoriesDefinition(kotlin.MavenCentral).
			AddBuildscriptPropertyDefinition("val " + KotlinVersionProperty + `: String by extra("` + version + `")`).
			AddDependencyNotation(p.RuntimeLibraryDependency(m.SDK, bundled)).
			AddBuildscriptDependencyNotation(`classpath(kotlin("gradle-plugin", ` + KotlinVersionProperty + `))`)
	}

	p.AfterCommonSupport(m, b, bundled)
	return nil
}

func (inj *Injector) addSettingsRepository(line string, m Module) {
	w := inj.Settings
	if w == nil {
		w = NewSettingsFileWriter(nil)
	}
	if err := w.AddPluginRepository(line, m); err != nil {
		log.Warn("failed to add plugin repository to settings script",
			"module", m.Name,
			"repository", line,
			"error", err,
		)
	}
}
