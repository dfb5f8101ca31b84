package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tago/internal/core/domain"
)

func TestSelect_Defaults(t *testing.T) {
	d := newDescriptor(t)

	st, err := domain.Select(d, domain.Request{})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeCheckout, st.Mode)
	assert.Equal(t, domain.OpQuery, st.Op)
	assert.Empty(t, st.Tag)
}

func TestSelect_Modes(t *testing.T) {
	d := newDescriptor(t)

	tests := []struct {
		name string
		req  domain.Request
		want domain.Mode
	}{
		{name: "in-place", req: domain.Request{InPlace: true}, want: domain.ModeInPlace},
		{name: "single test", req: domain.Request{Test: "basic"}, want: domain.ModeSingleTest},
		{name: "test suite", req: domain.Request{Suite: true}, want: domain.ModeTestSuite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := domain.Select(d, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.Mode)
		})
	}
}

func TestSelect_ModeConflict(t *testing.T) {
	d := newDescriptor(t)

	_, err := domain.Select(d, domain.Request{InPlace: true, Suite: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModeConflict)

	_, err = domain.Select(d, domain.Request{Test: "basic", Suite: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModeConflict)
}

func TestSelect_OpConflict(t *testing.T) {
	d := newDescriptor(t)

	_, err := domain.Select(d, domain.Request{Build: true, Delete: true, Tag: "0.1.0"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOpConflict)
}

func TestSelect_TestModesOnlyQuery(t *testing.T) {
	d := newDescriptor(t)

	_, err := domain.Select(d, domain.Request{Suite: true, Init: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOpConflict)
}

func TestSelect_TagRules(t *testing.T) {
	d := newDescriptor(t)

	t.Run("build requires a tag", func(t *testing.T) {
		_, err := domain.Select(d, domain.Request{Build: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingTag)
	})

	t.Run("init takes no tag", func(t *testing.T) {
		_, err := domain.Select(d, domain.Request{Init: true, Tag: "0.1.0"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTagNotAllowed)
	})

	t.Run("query accepts an optional tag", func(t *testing.T) {
		st, err := domain.Select(d, domain.Request{Tag: "0.1.0"})
		require.NoError(t, err)
		assert.Equal(t, "0.1.0", st.Tag)
	})

	t.Run("tag must be a strict key", func(t *testing.T) {
		_, err := domain.Select(d, domain.Request{Build: true, Tag: "0.1.0-rc1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidVersionKey)
	})
}

func TestSelect_TestValidation(t *testing.T) {
	d := newDescriptor(t)

	t.Run("unknown test", func(t *testing.T) {
		_, err := domain.Select(d, domain.Request{Test: "missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownTest)
	})

	t.Run("tests disabled", func(t *testing.T) {
		disabled := newDescriptor(t)
		disabled.TestsEnabled = false

		_, err := domain.Select(disabled, domain.Request{Suite: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTestsDisabled)
	})
}

func TestSelect_CarriesSwitches(t *testing.T) {
	d := newDescriptor(t)

	st, err := domain.Select(d, domain.Request{
		Build:       true,
		Tag:         "0.1.0",
		Force:       true,
		AllowDirty:  true,
		Strict:      true,
		SkipRebuild: true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OpBuild, st.Op)
	assert.True(t, st.Force)
	assert.True(t, st.AllowDirty)
	assert.True(t, st.Strict)
	assert.True(t, st.SkipRebuild)
}
