package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tago/internal/core/domain"
)

func TestValidSchema(t *testing.T) {
	require.NoError(t, domain.ValidSchema("0.1.0"))
	require.NoError(t, domain.ValidSchema(domain.SchemaLatest))

	err := domain.ValidSchema("0.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)

	err = domain.ValidSchema("9.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaUnsupported)
}

func TestSchemaSupports(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		feature domain.Feature
		want    bool
	}{
		{name: "structured at threshold", schema: "0.3.0", feature: domain.FeatureStructuredFormat, want: true},
		{name: "structured below threshold", schema: "0.2.0", feature: domain.FeatureStructuredFormat, want: false},
		{name: "detached check introduced", schema: "0.2.0", feature: domain.FeatureDetachedCheck, want: true},
		{name: "detached check before introduction", schema: "0.1.0", feature: domain.FeatureDetachedCheck, want: false},
		{name: "custom kernel introduced", schema: "0.4.0", feature: domain.FeatureKernelCustom, want: true},
		{name: "package kernel introduced", schema: "0.4.0", feature: domain.FeatureKernelPackage, want: true},
		{name: "package kernel before introduction", schema: "0.3.0", feature: domain.FeatureKernelPackage, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SchemaSupports(tt.schema, tt.feature))
		})
	}
}

func TestKernelGate(t *testing.T) {
	t.Run("native is always allowed", func(t *testing.T) {
		assert.NoError(t, domain.KernelGate("0.1.0", domain.KernelNative, true))
	})

	t.Run("kernel below introduction is fatal", func(t *testing.T) {
		err := domain.KernelGate("0.3.0", domain.KernelCustom, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrKernelUnavailable)
	})

	t.Run("experimental kernel allowed when not strict", func(t *testing.T) {
		assert.NoError(t, domain.KernelGate("0.4.0", domain.KernelPackage, false))
	})

	t.Run("experimental kernel refused in strict mode", func(t *testing.T) {
		err := domain.KernelGate("0.4.0", domain.KernelPackage, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrKernelExperimental)
	})

	t.Run("kernel past experimental window passes strict mode", func(t *testing.T) {
		assert.NoError(t, domain.KernelGate("0.5.0", domain.KernelPackage, true))
	})

	t.Run("stable kernel has no experimental window", func(t *testing.T) {
		assert.NoError(t, domain.KernelGate("0.4.0", domain.KernelCustom, true))
	})
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		keyword string
		want    domain.Kernel
	}{
		{keyword: "", want: domain.KernelNative},
		{keyword: "native", want: domain.KernelNative},
		{keyword: "package", want: domain.KernelPackage},
		{keyword: "custom", want: domain.KernelCustom},
	}

	for _, tt := range tests {
		kernel, err := domain.ParseKernel(tt.keyword)
		require.NoError(t, err)
		assert.Equal(t, tt.want, kernel)
	}

	_, err := domain.ParseKernel("cmake")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownKernel)
}
