package domain

import "time"

// BuildReceipt records one successful build of a tag. Receipts are
// advisory metadata kept next to the builds; losing them never affects
// correctness.
type BuildReceipt struct {
	// Tag is the built version tag.
	Tag string `json:"tag"`

	// Binary is the artifact name the build produced.
	Binary string `json:"binary"`

	// Kernel names the backend variant that built the tag.
	Kernel string `json:"kernel"`

	// Mode is the run mode of the build, checkout or in-place.
	Mode string `json:"mode"`

	// StartRef is the ref the working tree sat on before the checkout.
	// Empty for in-place builds.
	StartRef string `json:"start_ref,omitempty"`

	// ArtifactHash is the content hash of the artifact, when it could be
	// computed.
	ArtifactHash string `json:"artifact_hash,omitempty"`

	// BuiltAt is the completion time of the build in UTC.
	BuiltAt time.Time `json:"built_at"`
}
