package domain

import (
	"strconv"
	"strings"
)

// Comparison results returned by CompareVersions.
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// ValidVersionKey reports whether s is a strict three-component version of
// the form "x.y.z". Strict keys carry no prerelease or build metadata
// suffix, and no component has a sign or a leading zero. Version table keys
// and tag arguments must satisfy this; CompareVersions deliberately accepts
// more.
func ValidVersionKey(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if !validComponent(part) {
			return false
		}
	}
	return true
}

func validComponent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	// "0" is fine, "01" is not
	return len(s) == 1 || s[0] != '0'
}

// CompareVersions orders two version strings and returns Less, Equal or
// Greater. It accepts the full grammar, including prerelease and build
// metadata suffixes, so callers can gate against CLI-supplied versions
// that would be rejected as table keys.
//
// Precedence: numeric core components first, then prerelease presence
// (a version without a prerelease outranks one with it), then the
// prerelease lexicographically, then build metadata lexicographically,
// and finally the number of core components.
func CompareVersions(a, b string) int {
	av := splitVersion(a)
	bv := splitVersion(b)

	if c := compareCore(av.core, bv.core); c != Equal {
		return c
	}

	switch {
	case av.prerelease == "" && bv.prerelease != "":
		return Greater
	case av.prerelease != "" && bv.prerelease == "":
		return Less
	}
	if c := strings.Compare(av.prerelease, bv.prerelease); c != Equal {
		return c
	}

	if c := strings.Compare(av.build, bv.build); c != Equal {
		return c
	}

	return compareInts(len(av.core), len(bv.core))
}

type version struct {
	core       []string
	prerelease string
	build      string
}

// splitVersion cuts a version string at the first '-' and the first '+'
// into core, prerelease and build metadata parts.
func splitVersion(s string) version {
	var v version

	core := s
	if head, tail, ok := strings.Cut(s, "-"); ok {
		core = head
		v.prerelease = tail
		if pre, build, hasBuild := strings.Cut(tail, "+"); hasBuild {
			v.prerelease = pre
			v.build = build
		}
	} else if head, build, hasBuild := strings.Cut(s, "+"); hasBuild {
		core = head
		v.build = build
	}

	v.core = strings.Split(core, ".")
	return v
}

// compareCore compares the shared core components numerically. Length
// differences are never decisive here; they are the final tiebreak in
// CompareVersions.
func compareCore(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := compareComponent(a[i], b[i]); c != Equal {
			return c
		}
	}
	return Equal
}

// compareComponent compares one core component numerically, falling back
// to a lexicographic compare when either side is not a number.
func compareComponent(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	if aErr != nil || bErr != nil {
		return strings.Compare(a, b)
	}
	return compareInts(an, bn)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}
