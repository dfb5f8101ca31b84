package ports

import "go.trai.ch/tago/internal/core/domain"

// ResolveOptions carries the per-invocation knobs of descriptor
// resolution.
type ResolveOptions struct {
	// Strict refuses experimental kernels below their unconditional
	// schema threshold.
	Strict bool

	// BuildsDir overrides the descriptor's builds directory when set.
	BuildsDir string
}

// DescriptorLoader defines the interface for resolving a project
// descriptor file.
//
//go:generate mockgen -source=descriptor_loader.go -destination=mocks/mock_descriptor_loader.go -package=mocks
type DescriptorLoader interface {
	// Load reads the descriptor at path, detects its format and returns
	// the immutable descriptor.
	Load(path string, opts ResolveOptions) (*domain.Descriptor, error)
}
