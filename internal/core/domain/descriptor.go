package domain

import (
	"path/filepath"
	"slices"
)

// Descriptor is the immutable result of resolving a project descriptor
// file. It is assembled once per invocation and read-only afterward; all
// mutable run information lives in RunState.
type Descriptor struct {
	// Schema is the descriptor's schema version.
	Schema string

	// Kernel is the declared build backend variant.
	Kernel Kernel

	// Extensions reports whether language extensions are enabled for
	// native builds.
	Extensions bool

	// Dir is the directory containing the descriptor file. Checkout-mode
	// builds and backend default invocations run here.
	Dir string

	// Source is the project's single source file, compiled directly for
	// tags predating build-tool support.
	Source string

	// Binary is the artifact name expected under each per-tag directory.
	Binary string

	// BuildToolMin is the lowest tag built with the build tool. Tags below
	// it compile the source file directly. Empty means every tag uses the
	// build tool.
	BuildToolMin string

	// BootstrapMin is the lowest tag requiring the bootstrap and configure
	// sequence before building. Empty means no tag does.
	BootstrapMin string

	// BuildsDir is the directory holding the per-tag build directories.
	// Always populated; defaults are applied during resolution.
	BuildsDir string

	// ConfigureFlags are forwarded to the configure step of the bootstrap
	// sequence.
	ConfigureFlags string

	// CompilerFlags are forwarded to the native build backend.
	CompilerFlags string

	// CustomCmd is the user-declared build command of the custom kernel.
	CustomCmd []string

	// TestsDir is the root of the test tree, with PassDir and FailDir its
	// two subdirectories. Empty when the descriptor declares no tests.
	TestsDir string
	PassDir  string
	FailDir  string

	// TestsEnabled reports whether test support is active. It is false
	// when no tests directory is declared or when test discovery failed
	// softly.
	TestsEnabled bool

	// PassTests and FailTests hold the discovered test executable names in
	// ascending name order.
	PassTests []string
	FailTests []string

	// InPlace and Checkout are the two disjoint version table partitions.
	InPlace  *VersionTable
	Checkout *VersionTable
}

// Table returns the version table partition backing the given mode. Test
// modes read the checkout partition.
func (d *Descriptor) Table(mode Mode) *VersionTable {
	if mode == ModeInPlace {
		return d.InPlace
	}
	return d.Checkout
}

// TagDir returns the per-tag build directory for tag.
func (d *Descriptor) TagDir(tag string) string {
	return filepath.Join(d.BuildsDir, TagDirPrefix+tag)
}

// ArtifactPath returns the expected artifact path for tag.
func (d *Descriptor) ArtifactPath(tag string) string {
	return filepath.Join(d.TagDir(tag), d.Binary)
}

// NeedsBuildTool reports whether tag builds through the build tool rather
// than by compiling the source file directly.
func (d *Descriptor) NeedsBuildTool(tag string) bool {
	if d.BuildToolMin == "" {
		return true
	}
	return CompareVersions(tag, d.BuildToolMin) != Less
}

// NeedsBootstrap reports whether tag requires the bootstrap and configure
// sequence.
func (d *Descriptor) NeedsBootstrap(tag string) bool {
	if d.BootstrapMin == "" {
		return false
	}
	return CompareVersions(tag, d.BootstrapMin) != Less
}

// HasTest reports whether name is in either test table.
func (d *Descriptor) HasTest(name string) bool {
	return slices.Contains(d.PassTests, name) || slices.Contains(d.FailTests, name)
}

// IsFailTest reports whether name is in the fail table, meaning its run is
// expected to exit non-zero.
func (d *Descriptor) IsFailTest(name string) bool {
	return slices.Contains(d.FailTests, name)
}

// TestDir returns the directory holding the named test.
func (d *Descriptor) TestDir(name string) string {
	if d.IsFailTest(name) {
		return d.FailDir
	}
	return d.PassDir
}

// TestNames returns the union of both test tables in ascending name order.
func (d *Descriptor) TestNames() []string {
	names := make([]string, 0, len(d.PassTests)+len(d.FailTests))
	names = append(names, d.PassTests...)
	names = append(names, d.FailTests...)
	slices.Sort(names)
	return names
}
