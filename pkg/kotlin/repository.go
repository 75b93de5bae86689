package kotlin

import (
	"fmt"
	"strings"
)

// Repository describes a Maven repository Kotlin artifacts can be fetched from.
type Repository struct {
	ID   string
	Name string
	URL  string
}

// Well-known repositories for pre-release Kotlin builds.
var (
	SnapshotRepository = Repository{
		ID:   "sonatype.oss.snapshots",
		Name: "Sonatype OSS Snapshot Repository",
		URL:  "https://oss.sonatype.org/content/repositories/snapshots",
	}
	EAPRepository = Repository{
		ID:   "bintray.kotlin.eap",
		Name: "Bintray Kotlin EAP Repository",
		URL:  "https://dl.bintray.com/kotlin/kotlin-eap",
	}
	DevRepository = Repository{
		ID:   "bintray.kotlin.dev",
		Name: "Bintray Kotlin Dev Repository",
		URL:  "https://dl.bintray.com/kotlin/kotlin-dev",
	}
)

// MavenCentral is the script snippet for the default public repository.
const MavenCentral = "mavenCentral()"

// RepositoryForVersion returns the repository a pre-release version is
// published to. Stable versions resolve from Maven Central and get nil.
func RepositoryForVersion(version string) *Repository {
	if !IsSnapshot(version) {
		return nil
	}

	upper := strings.ToUpper(version)
	switch {
	case strings.Contains(upper, "SNAPSHOT"):
		r := SnapshotRepository
		return &r
	case strings.Contains(upper, "-DEV-"):
		r := DevRepository
		return &r
	default:
		r := EAPRepository
		return &r
	}
}

// Snippet renders the repository as a one-line Kotlin DSL declaration.
func (r Repository) Snippet() string {
	return fmt.Sprintf("maven { setUrl(%q) }", r.URL)
}
