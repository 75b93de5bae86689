// Package buildscript accumulates fragments of a Gradle Kotlin DSL build
// script (build.gradle.kts) and renders them in a fixed section order.
//
// A Builder is append-only. Appending the same fragment twice renders it
// twice; callers are responsible for not injecting support more than once.
package buildscript

import (
	"fmt"
	"os"
	"strings"
)

// FileName is the conventional name of a Kotlin DSL build script.
const FileName = "build.gradle.kts"

// Section identifies a named part of the build script.
type Section int

// Sections in render order.
const (
	Imports Section = iota
	BuildscriptProperties
	BuildscriptRepositories
	BuildscriptDependencies
	PluginsGroup
	PluginDefinitions
	Properties
	Repositories
	Dependencies
	Other
	numSections
)

var sectionNames = [numSections]string{
	"imports",
	"buildscript_properties",
	"buildscript_repositories",
	"buildscript_dependencies",
	"plugins",
	"apply",
	"properties",
	"repositories",
	"dependencies",
	"other",
}

// String returns the section name used in logs.
func (s Section) String() string {
	if s < 0 || s >= numSections {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// Builder collects build script fragments per section.
type Builder struct {
	sections [numSections][]string

	// OnAppend, if set, is called after every append. Used for trace logging.
	OnAppend func(s Section, fragment string)
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) add(s Section, fragment string) *Builder {
	b.sections[s] = append(b.sections[s], fragment)
	if b.OnAppend != nil {
		b.OnAppend(s, fragment)
	}
	return b
}

// AddImport adds an import statement at the top of the script.
func (b *Builder) AddImport(stmt string) *Builder { return b.add(Imports, stmt) }

// AddBuildscriptPropertyDefinition adds a statement to the buildscript block.
func (b *Builder) AddBuildscriptPropertyDefinition(def string) *Builder {
	return b.add(BuildscriptProperties, def)
}

// AddBuildscriptRepositoriesDefinition adds a repository to buildscript.repositories.
func (b *Builder) AddBuildscriptRepositoriesDefinition(def string) *Builder {
	return b.add(BuildscriptRepositories, def)
}

// AddBuildscriptDependencyNotation adds a classpath entry to buildscript.dependencies.
func (b *Builder) AddBuildscriptDependencyNotation(notation string) *Builder {
	return b.add(BuildscriptDependencies, notation)
}

// AddPluginDefinitionInPluginsGroup adds an entry to the plugins {} block.
func (b *Builder) AddPluginDefinitionInPluginsGroup(def string) *Builder {
	return b.add(PluginsGroup, def)
}

// AddPluginDefinition adds a legacy apply {} plugin entry.
func (b *Builder) AddPluginDefinition(def string) *Builder {
	return b.add(PluginDefinitions, def)
}

// AddPropertyDefinition adds a top-level property declaration.
func (b *Builder) AddPropertyDefinition(def string) *Builder {
	return b.add(Properties, def)
}

// AddRepositoriesDefinition adds a repository to the project repositories block.
func (b *Builder) AddRepositoriesDefinition(def string) *Builder {
	return b.add(Repositories, def)
}

// AddDependencyNotation adds an entry to the project dependencies block.
func (b *Builder) AddDependencyNotation(notation string) *Builder {
	return b.add(Dependencies, notation)
}

// AddOther appends free-form text after everything else.
func (b *Builder) AddOther(text string) *Builder { return b.add(Other, text) }

// Fragments returns a copy of the fragments appended to s.
func (b *Builder) Fragments(s Section) []string {
	if s < 0 || s >= numSections {
		return nil
	}
	return append([]string(nil), b.sections[s]...)
}

// IsEmpty reports whether nothing has been appended.
func (b *Builder) IsEmpty() bool {
	for _, frags := range b.sections {
		if len(frags) > 0 {
			return false
		}
	}
	return true
}

// Render produces the build script text. Empty sections render nothing and
// non-empty top-level parts are separated by one blank line.
func (b *Builder) Render() string {
	var parts []string

	if lines := b.sections[Imports]; len(lines) > 0 {
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if bs := b.renderBuildscript(); bs != "" {
		parts = append(parts, bs)
	}
	if lines := b.sections[PluginsGroup]; len(lines) > 0 {
		parts = append(parts, block("plugins", lines, 0))
	}
	if lines := b.sections[PluginDefinitions]; len(lines) > 0 {
		parts = append(parts, block("apply", lines, 0))
	}
	if lines := b.sections[Properties]; len(lines) > 0 {
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if lines := b.sections[Repositories]; len(lines) > 0 {
		parts = append(parts, block("repositories", lines, 0))
	}
	if lines := b.sections[Dependencies]; len(lines) > 0 {
		parts = append(parts, block("dependencies", lines, 0))
	}
	for _, other := range b.sections[Other] {
		parts = append(parts, strings.TrimRight(other, "\n"))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (b *Builder) renderBuildscript() string {
	var inner []string
	if lines := b.sections[BuildscriptProperties]; len(lines) > 0 {
		inner = append(inner, indentLines(lines, 1))
	}
	if lines := b.sections[BuildscriptRepositories]; len(lines) > 0 {
		inner = append(inner, block("repositories", lines, 1))
	}
	if lines := b.sections[BuildscriptDependencies]; len(lines) > 0 {
		inner = append(inner, block("dependencies", lines, 1))
	}
	if len(inner) == 0 {
		return ""
	}
	return "buildscript {\n" + strings.Join(inner, "\n\n") + "\n}"
}

// WriteFile renders the script and writes it to path.
func (b *Builder) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(b.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write build script: %w", err)
	}
	return nil
}

const indentUnit = "    "

func block(name string, lines []string, depth int) string {
	prefix := strings.Repeat(indentUnit, depth)
	return prefix + name + " {\n" + indentLines(lines, depth+1) + "\n" + prefix + "}"
}

func indentLines(lines []string, depth int) string {
	prefix := strings.Repeat(indentUnit, depth)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		for _, sub := range strings.Split(l, "\n") {
			if sub == "" {
				out = append(out, "")
				continue
			}
			out = append(out, prefix+sub)
		}
	}
	return strings.Join(out, "\n")
}
