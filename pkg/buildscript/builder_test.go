package buildscript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_Empty(t *testing.T) {
	b := New()
	if !b.IsEmpty() {
		t.Error("new builder should be empty")
	}
	if got := b.Render(); got != "" {
		t.Errorf("Render() of empty builder = %q, want empty", got)
	}
}

func TestRender_FixedSectionOrder(t *testing.T) {
	b := New()
	// Appended in reverse of render order on purpose.
	b.AddOther("tasks.named(\"test\") {\n    useJUnitPlatform()\n}")
	b.AddDependencyNotation(`implementation(kotlin("stdlib-jdk8"))`)
	b.AddRepositoriesDefinition("mavenCentral()")
	b.AddPropertyDefinition("val kotlin_version: String by extra")
	b.AddPluginDefinition(`plugin("kotlin")`)
	b.AddPluginDefinitionInPluginsGroup(`kotlin("jvm") version "1.2.0"`)
	b.AddBuildscriptDependencyNotation(`classpath(kotlin("gradle-plugin", kotlin_version))`)
	b.AddBuildscriptRepositoriesDefinition("mavenCentral()")
	b.AddBuildscriptPropertyDefinition(`val kotlin_version: String by extra("1.2.0")`)
	b.AddImport("import org.jetbrains.kotlin.gradle.tasks.KotlinCompile")

	want := `import org.jetbrains.kotlin.gradle.tasks.KotlinCompile

buildscript {
    val kotlin_version: String by extra("1.2.0")

    repositories {
        mavenCentral()
    }

    dependencies {
        classpath(kotlin("gradle-plugin", kotlin_version))
    }
}

plugins {
    kotlin("jvm") version "1.2.0"
}

apply {
    plugin("kotlin")
}

val kotlin_version: String by extra

repositories {
    mavenCentral()
}

dependencies {
    implementation(kotlin("stdlib-jdk8"))
}

tasks.named("test") {
    useJUnitPlatform()
}
`
	if diff := cmp.Diff(want, b.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DuplicatesAreKept(t *testing.T) {
	b := New()
	b.AddRepositoriesDefinition("mavenCentral()")
	b.AddRepositoriesDefinition("mavenCentral()")

	want := "repositories {\n    mavenCentral()\n    mavenCentral()\n}\n"
	if diff := cmp.Diff(want, b.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestFragments(t *testing.T) {
	b := New()
	b.AddDependencyNotation("a")
	b.AddDependencyNotation("b")

	got := b.Fragments(Dependencies)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("Fragments() mismatch (-want +got):\n%s", diff)
	}

	got[0] = "changed"
	if b.Fragments(Dependencies)[0] != "a" {
		t.Error("Fragments() must return a copy")
	}
	if b.Fragments(Section(99)) != nil {
		t.Error("Fragments() of unknown section should be nil")
	}
}

func TestOnAppend(t *testing.T) {
	b := New()
	var seen []string
	b.OnAppend = func(s Section, fragment string) {
		seen = append(seen, s.String()+":"+fragment)
	}
	b.AddImport("import a").AddRepositoriesDefinition("mavenCentral()")

	want := []string{"imports:import a", "repositories:mavenCentral()"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("OnAppend calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFileAndUpToDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	b := New()
	b.AddRepositoriesDefinition("mavenCentral()")

	ok, err := b.UpToDate(path)
	if err != nil {
		t.Fatalf("UpToDate() on missing file error = %v", err)
	}
	if ok {
		t.Error("missing file should not be up to date")
	}

	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	ok, err = b.UpToDate(path)
	if err != nil {
		t.Fatalf("UpToDate() error = %v", err)
	}
	if !ok {
		t.Error("freshly written file should be up to date")
	}

	if err := os.WriteFile(path, []byte("// edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ok, _ = b.UpToDate(path)
	if ok {
		t.Error("edited file should not be up to date")
	}
}

func TestDigest(t *testing.T) {
	if Digest("a") == Digest("b") {
		t.Error("different inputs should have different digests")
	}
	if len(Digest("")) != 16 {
		t.Errorf("Digest should be 16 hex chars, got %q", Digest(""))
	}
}
