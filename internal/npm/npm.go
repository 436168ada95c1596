// Package npm is a minimal reference npm resolver: the out-of-scope
// external collaborator internal/resolve consults to decide whether an
// "npm:" specifier already has its package cached locally.
package npm

import (
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

// Resolver tracks which concrete package versions have been downloaded
// into a managed node_modules-equivalent cache, keyed by package name, and
// answers PackageReqCached by checking whether any cached version
// satisfies the requirement's semver range. A real resolver would consult
// the actual package cache on disk; this one is driven explicitly via
// MarkCached, for use by tests and by any future on-disk cache scanner.
type Resolver struct {
	managed bool

	mu     sync.RWMutex
	cached map[string][]string // package name -> cached versions, canonical "vX.Y.Z" form
}

// New returns a Resolver. managed mirrors the "managed node_modules"
// workspace setting: false means the workspace brings its own
// node_modules and npm-cache diagnostics are never produced.
func New(managed bool) *Resolver {
	return &Resolver{managed: managed, cached: make(map[string][]string)}
}

// Managed implements resolve.NpmResolver.
func (r *Resolver) Managed() bool { return r.managed }

// PackageReqCached implements resolve.NpmResolver. packageReq is an npm
// package requirement, e.g. "left-pad@^1.3.0"; a bare package name with no
// "@version" suffix is treated as an unconstrained (any-version) request.
func (r *Resolver) PackageReqCached(packageReq string) bool {
	name, rng := splitPackageReq(packageReq)
	r.mu.RLock()
	versions := append([]string(nil), r.cached[name]...)
	r.mu.RUnlock()
	for _, v := range versions {
		if satisfies(v, rng) {
			return true
		}
	}
	return false
}

// MarkCached records that the given concrete version of a package has been
// downloaded, e.g. MarkCached("left-pad", "1.3.1").
func (r *Resolver) MarkCached(name, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached[name] = append(r.cached[name], canonicalVersion(version))
}

// splitPackageReq splits a package requirement into its bare name and
// version range, respecting scoped package names ("@scope/name@^1.0.0"):
// the range is whatever follows the last "@" that isn't the leading
// scope marker.
func splitPackageReq(packageReq string) (name, rng string) {
	at := strings.LastIndex(packageReq, "@")
	if at <= 0 {
		return packageReq, ""
	}
	return packageReq[:at], packageReq[at+1:]
}

func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// satisfies reports whether version meets rng, an npm-style semver range:
// "^X.Y.Z" (compatible-with, npm's caret semantics), "~X.Y.Z" (same
// major.minor), an exact version, or ""/"*" (any version).
func satisfies(version, rng string) bool {
	v := canonicalVersion(version)
	if !semver.IsValid(v) {
		return false
	}
	switch {
	case rng == "" || rng == "*":
		return true
	case strings.HasPrefix(rng, "^"):
		base := canonicalVersion(strings.TrimPrefix(rng, "^"))
		return semver.IsValid(base) && caretSatisfies(v, base)
	case strings.HasPrefix(rng, "~"):
		base := canonicalVersion(strings.TrimPrefix(rng, "~"))
		return semver.IsValid(base) && semver.Compare(v, base) >= 0 && semver.MajorMinor(v) == semver.MajorMinor(base)
	default:
		base := canonicalVersion(rng)
		return semver.IsValid(base) && semver.Compare(v, base) == 0
	}
}

// caretSatisfies implements npm's caret range: v must be >= base, and must
// not cross the first non-zero component of base — so ^1.2.3 allows any
// 1.x.y >= 1.2.3, but ^0.2.3 only allows 0.2.y >= 0.2.3 (npm treats 0.x
// releases as not yet stable enough to float the minor version), and
// ^0.0.3 allows only 0.0.3 itself.
func caretSatisfies(v, base string) bool {
	if semver.Compare(v, base) < 0 {
		return false
	}
	if semver.Major(base) != "v0" {
		return semver.Major(v) == semver.Major(base)
	}
	if semver.MajorMinor(base) != "v0.0" {
		return semver.MajorMinor(v) == semver.MajorMinor(base)
	}
	return semver.Compare(v, base) == 0
}
