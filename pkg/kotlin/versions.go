// Package kotlin resolves the Kotlin versions, repositories and artifact
// identifiers used when adding Kotlin support to a Gradle build.
//
// Everything here is a pure lookup: no network access and no file I/O.
// Kotlin version strings ("1.3.0-eap-1", "1.3-SNAPSHOT", "1.2.70-dev-123")
// are normalized to semver so that golang.org/x/mod/semver can order and
// classify them.
package kotlin

import (
	"strings"

	"golang.org/x/mod/semver"
)

// BundledVersion is the Kotlin version ktgradle ships with and uses unless
// configuration pins another one.
const BundledVersion = "1.3.72"

// LastSnapshotVersion replaces a pre-release bundled version in generated
// script text. Pre-release artifacts are short-lived, the snapshot line is not.
const LastSnapshotVersion = "1.3-SNAPSHOT"

// Versions supplies the bundled Kotlin version and the repository lookup.
type Versions interface {
	// Bundled returns the bundled Kotlin version, as-is.
	Bundled() string

	// RepositoryFor returns the extra repository needed to resolve version,
	// or nil when the default public repository is enough.
	RepositoryFor(version string) *Repository
}

// StaticVersions is a Versions backed by a fixed version string.
type StaticVersions struct {
	Version string
}

// DefaultVersions returns StaticVersions for BundledVersion.
func DefaultVersions() StaticVersions {
	return StaticVersions{Version: BundledVersion}
}

// Bundled implements Versions.
func (s StaticVersions) Bundled() string {
	if s.Version == "" {
		return BundledVersion
	}
	return s.Version
}

// RepositoryFor implements Versions.
func (s StaticVersions) RepositoryFor(version string) *Repository {
	return RepositoryForVersion(version)
}

// IsSnapshot reports whether version is a pre-release build (SNAPSHOT, dev,
// eap, rc, milestone). Unparseable versions are treated as stable.
func IsSnapshot(version string) bool {
	v, ok := toSemver(version)
	if !ok {
		return strings.Contains(strings.ToUpper(version), "SNAPSHOT")
	}
	return semver.Prerelease(v) != ""
}

// IsValid reports whether version looks like a Kotlin release or pre-release.
func IsValid(version string) bool {
	_, ok := toSemver(version)
	return ok
}

// AtLeast reports whether the release part of version is >= min.
// Pre-release suffixes are ignored, so "1.2.0-eap-1" counts as 1.2.0.
func AtLeast(version, min string) bool {
	v, ok := toSemver(version)
	if !ok {
		return false
	}
	m, ok := toSemver(min)
	if !ok {
		return false
	}
	return semver.Compare(releaseOf(v), releaseOf(m)) >= 0
}

// toSemver converts a Kotlin version to a canonical "vX.Y.Z[-pre]" string.
func toSemver(version string) (string, bool) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", false
	}

	core, pre, hasPre := strings.Cut(version, "-")
	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return "", false
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	v := "v" + strings.Join(parts, ".")
	if hasPre {
		if pre == "" {
			return "", false
		}
		v += "-" + pre
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return semver.Canonical(v), true
}

func releaseOf(v string) string {
	if pre := semver.Prerelease(v); pre != "" {
		return strings.TrimSuffix(v, pre)
	}
	return v
}
