package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tago/internal/core/domain"
)

func TestValidVersionKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{name: "plain triple", key: "1.2.3", valid: true},
		{name: "zero components", key: "0.0.0", valid: true},
		{name: "large components", key: "10.20.30", valid: true},
		{name: "leading zero", key: "01.2.3", valid: false},
		{name: "leading zero in patch", key: "1.2.03", valid: false},
		{name: "prerelease suffix", key: "1.2.3-pr2", valid: false},
		{name: "build suffix", key: "1.2.3+build1", valid: false},
		{name: "two components", key: "1.2", valid: false},
		{name: "four components", key: "1.2.3.4", valid: false},
		{name: "empty component", key: "1..3", valid: false},
		{name: "signed component", key: "1.-2.3", valid: false},
		{name: "non numeric", key: "1.2.x", valid: false},
		{name: "empty string", key: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, domain.ValidVersionKey(tt.key))
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "numeric not lexicographic", a: "1.2.0", b: "1.20.9", want: domain.Less},
		{name: "numeric minor vs patch", a: "1.10.0", b: "1.1.10", want: domain.Greater},
		{name: "equal triples", a: "2.4.6", b: "2.4.6", want: domain.Equal},
		{name: "major decides", a: "2.0.0", b: "1.9.9", want: domain.Greater},
		{name: "prerelease sorts below release", a: "1.0.0-alpha", b: "1.0.0", want: domain.Less},
		{name: "release outranks prerelease with build", a: "1.0.0", b: "1.0.0-pr1+build456", want: domain.Greater},
		{name: "prereleases compare lexicographically", a: "1.0.0-alpha", b: "1.0.0-beta", want: domain.Less},
		{name: "equal prerelease ties on build metadata", a: "1.0.0-rc+a1", b: "1.0.0-rc+a2", want: domain.Less},
		{name: "build metadata alone breaks ties", a: "1.0.0+001", b: "1.0.0+002", want: domain.Less},
		{name: "shared components equal then shorter is less", a: "1.2", b: "1.2.0", want: domain.Less},
		{name: "length only decides after shared components", a: "1.3", b: "1.2.9", want: domain.Greater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CompareVersions(tt.a, tt.b))

			// The order must be antisymmetric.
			assert.Equal(t, -tt.want, domain.CompareVersions(tt.b, tt.a))
		})
	}
}

func TestCompareVersions_AcceptsWhatValidateRejects(t *testing.T) {
	// Keys with prerelease or build suffixes are rejected for table use but
	// still totally ordered by the comparator.
	assert.False(t, domain.ValidVersionKey("1.0.0-alpha"))
	assert.Equal(t, domain.Less, domain.CompareVersions("1.0.0-alpha", "1.0.0-beta"))
}
