package domain

import "go.trai.ch/zerr"

// Schema version milestones. A descriptor that omits its schema version is
// treated as SchemaLatest.
const (
	// SchemaLatest is the newest descriptor schema this build understands.
	SchemaLatest = "0.5.0"

	// SchemaStructuredMin is the first schema version using the structured
	// descriptor format. Older versions use the legacy line format.
	SchemaStructuredMin = "0.3.0"
)

// Feature identifies schema-gated descriptor capabilities.
type Feature uint8

const (
	// FeatureStructuredFormat is the sectioned descriptor encoding.
	FeatureStructuredFormat Feature = iota
	// FeatureDetachedCheck records whether the working tree started detached
	// before a checkout, so the switch-back can restore that state.
	FeatureDetachedCheck
	// FeatureKernelCustom is the user-command build backend.
	FeatureKernelCustom
	// FeatureKernelPackage is the packaging-tool build backend.
	FeatureKernelPackage
)

// String returns the feature name used in diagnostics.
func (f Feature) String() string {
	switch f {
	case FeatureStructuredFormat:
		return "structured format"
	case FeatureDetachedCheck:
		return "detached checkout tracking"
	case FeatureKernelCustom:
		return "custom kernel"
	case FeatureKernelPackage:
		return "package kernel"
	default:
		return "unknown feature"
	}
}

// featureGate holds the two thresholds of a feature: the schema version
// introducing it and the version from which it is allowed unconditionally.
// The two differ only for features that went through an experimental phase.
type featureGate struct {
	introduced    string
	unconditional string
}

var featureGates = map[Feature]featureGate{
	FeatureStructuredFormat: {introduced: SchemaStructuredMin, unconditional: SchemaStructuredMin},
	FeatureDetachedCheck:    {introduced: "0.2.0", unconditional: "0.2.0"},
	FeatureKernelCustom:     {introduced: "0.4.0", unconditional: "0.4.0"},
	FeatureKernelPackage:    {introduced: "0.4.0", unconditional: "0.5.0"},
}

// ValidSchema reports whether schema parses as a strict version key and is
// not newer than SchemaLatest.
func ValidSchema(schema string) error {
	if !ValidVersionKey(schema) {
		return zerr.With(zerr.Wrap(ErrSchemaInvalid, "schema is not a strict x.y.z key"), "schema", schema)
	}
	if CompareVersions(schema, SchemaLatest) == Greater {
		err := zerr.With(zerr.Wrap(ErrSchemaUnsupported, "schema is newer than the latest revision"), "schema", schema)
		return zerr.With(err, "latest", SchemaLatest)
	}
	return nil
}

// SchemaSupports reports whether the given schema version introduces f.
func SchemaSupports(schema string, f Feature) bool {
	gate, ok := featureGates[f]
	if !ok {
		return false
	}
	return CompareVersions(schema, gate.introduced) != Less
}

// SchemaAllowsUnconditionally reports whether f has left its experimental
// phase at the given schema version.
func SchemaAllowsUnconditionally(schema string, f Feature) bool {
	gate, ok := featureGates[f]
	if !ok {
		return false
	}
	return CompareVersions(schema, gate.unconditional) != Less
}

// KernelGate validates that the declared kernel is usable at the given
// schema version. A kernel below its introduction threshold is always an
// error; one inside its experimental window is an error only in strict
// mode.
func KernelGate(schema string, kernel Kernel, strict bool) error {
	var feature Feature
	switch kernel {
	case KernelNative:
		return nil
	case KernelPackage:
		feature = FeatureKernelPackage
	case KernelCustom:
		feature = FeatureKernelCustom
	default:
		return zerr.With(zerr.Wrap(ErrUnknownKernel, "kernel has no schema gate"), "kernel", kernel.String())
	}

	if !SchemaSupports(schema, feature) {
		err := zerr.With(zerr.Wrap(ErrKernelUnavailable, "schema predates the kernel"), "kernel", kernel.String())
		err = zerr.With(err, "schema", schema)
		return zerr.With(err, "introduced", featureGates[feature].introduced)
	}
	if strict && !SchemaAllowsUnconditionally(schema, feature) {
		err := zerr.With(zerr.Wrap(ErrKernelExperimental, "strict mode refuses experimental kernels"), "kernel", kernel.String())
		err = zerr.With(err, "schema", schema)
		return zerr.With(err, "stable_since", featureGates[feature].unconditional)
	}
	return nil
}
