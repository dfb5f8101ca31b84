// Package config implements the project descriptor resolver. It detects
// which of the two descriptor encodings a file uses, decodes it and
// assembles the immutable domain.Descriptor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// The per-format in-place markers. Each encoding flags in-place tags with
// its own leading sigil; the two constants are independent and never
// unified.
const (
	structuredInPlaceSigil = "B"
	legacyInPlaceSigil     = "?"
)

// Loader implements ports.DescriptorLoader.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the descriptor at path, detects its encoding and returns the
// assembled descriptor. The encoding is chosen by shape: a YAML mapping is
// a structured candidate, anything else a legacy candidate; the declared
// schema version must then agree with the detected format.
func (l *Loader) Load(path string, opts ports.ResolveOptions) (*domain.Descriptor, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrDescriptorReadFailed, err.Error()), "path", path)
	}

	dir := filepath.Dir(path)

	var dec *decoded
	if isStructured(raw) {
		dec, err = decodeStructured(raw)
	} else {
		dec, err = decodeLegacy(raw, dir)
	}
	if err != nil {
		return nil, err
	}

	return l.assemble(dec, dir, opts)
}

// isStructured reports whether the raw content has the shape of the
// structured format. Structured descriptors are YAML mappings; legacy
// files are plain line text and never decode to one.
func isStructured(raw []byte) bool {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return false
	}
	return node.Kind == yaml.DocumentNode &&
		len(node.Content) > 0 &&
		node.Content[0].Kind == yaml.MappingNode
}

// decoded is the format-neutral output of one decoder, before gating,
// defaulting and test discovery.
type decoded struct {
	schema         string
	kernelKeyword  string
	extensions     bool
	source         string
	binary         string
	buildToolMin   string
	bootstrapMin   string
	buildsDir      string
	configureFlags string
	compilerFlags  string
	command        []string
	testsDir       string
	passName       string
	failName       string
	versions       []versionRecord
	sigil          string
}

// versionRecord is one raw version table entry, sigil still attached.
type versionRecord struct {
	tag         string
	description string
}

// decodeStructured parses the sectioned YAML encoding.
func decodeStructured(raw []byte) (*decoded, error) {
	var dto descriptorDTO
	if err := yaml.Unmarshal(raw, &dto); err != nil {
		return nil, zerr.Wrap(domain.ErrDescriptorParseFailed, err.Error())
	}

	// A missing schema declaration means the latest supported revision.
	schema := dto.Schema
	if schema == "" {
		schema = domain.SchemaLatest
	}
	if err := domain.ValidSchema(schema); err != nil {
		return nil, err
	}
	if domain.CompareVersions(schema, domain.SchemaStructuredMin) == domain.Less {
		err := zerr.With(zerr.Wrap(domain.ErrFormatMismatch, "schema predates the structured format"), "schema", schema)
		return nil, zerr.With(err, "format", "structured")
	}

	// Sort the tag keys so table routing and conflict reporting are
	// deterministic regardless of map order.
	tags := make([]string, 0, len(dto.Versions))
	for tag := range dto.Versions {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	versions := make([]versionRecord, 0, len(tags))
	for _, tag := range tags {
		versions = append(versions, versionRecord{tag: tag, description: dto.Versions[tag]})
	}

	passName := dto.Tests.Pass
	if passName == "" {
		passName = "pass"
	}
	failName := dto.Tests.Fail
	if failName == "" {
		failName = "fail"
	}

	return &decoded{
		schema:         schema,
		kernelKeyword:  dto.Kernel,
		extensions:     dto.Extensions,
		source:         dto.Build.Source,
		binary:         dto.Build.Binary,
		buildToolMin:   dto.Build.MakeMin,
		bootstrapMin:   dto.Build.BootstrapMin,
		buildsDir:      dto.Build.Dir,
		configureFlags: dto.Build.ConfigureFlags,
		compilerFlags:  dto.Build.CompilerFlags,
		command:        dto.Build.Command,
		testsDir:       dto.Tests.Dir,
		passName:       passName,
		failName:       failName,
		versions:       versions,
		sigil:          structuredInPlaceSigil,
	}, nil
}

// assemble applies the schema and kernel gates, fills defaults, routes the
// version records into the two table partitions and runs test discovery.
func (l *Loader) assemble(dec *decoded, dir string, opts ports.ResolveOptions) (*domain.Descriptor, error) {
	kernel, err := domain.ParseKernel(dec.kernelKeyword)
	if err != nil {
		return nil, err
	}
	if err := domain.KernelGate(dec.schema, kernel, opts.Strict); err != nil {
		return nil, err
	}

	if dec.binary == "" {
		return nil, zerr.Wrap(domain.ErrDescriptorParseFailed, "missing binary name")
	}
	if kernel == domain.KernelCustom && len(dec.command) == 0 {
		return nil, zerr.Wrap(domain.ErrDescriptorParseFailed, "custom kernel declares no build command")
	}
	for _, min := range []string{dec.buildToolMin, dec.bootstrapMin} {
		if min != "" && !domain.ValidVersionKey(min) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidVersionKey, "build thresholds must be strict x.y.z keys"), "tag", min)
		}
	}

	inPlace, checkout, err := routeVersions(dec.versions, dec.sigil)
	if err != nil {
		return nil, err
	}

	d := &domain.Descriptor{
		Schema:         dec.schema,
		Kernel:         kernel,
		Extensions:     dec.extensions,
		Dir:            dir,
		Source:         dec.source,
		Binary:         dec.binary,
		BuildToolMin:   dec.buildToolMin,
		BootstrapMin:   dec.bootstrapMin,
		BuildsDir:      resolveBuildsDir(dec.buildsDir, dir, opts),
		ConfigureFlags: dec.configureFlags,
		CompilerFlags:  dec.compilerFlags,
		CustomCmd:      dec.command,
		InPlace:        inPlace,
		Checkout:       checkout,
	}

	if dec.testsDir != "" {
		d.TestsDir = anchor(dec.testsDir, dir)
		d.PassDir = filepath.Join(d.TestsDir, dec.passName)
		d.FailDir = filepath.Join(d.TestsDir, dec.failName)
		l.discoverTests(d)
	}

	return d, nil
}

// routeVersions strips each record's sigil and adds it to the matching
// table partition. A stripped tag showing up in both partitions is fatal,
// reporting both conflicting descriptions.
func routeVersions(records []versionRecord, sigil string) (inPlace, checkout *domain.VersionTable, err error) {
	inPlace = domain.NewVersionTable()
	checkout = domain.NewVersionTable()

	for _, rec := range records {
		tag, marked := strings.CutPrefix(rec.tag, sigil)

		target, other := checkout, inPlace
		if marked {
			target, other = inPlace, checkout
		}

		if otherDescription, collides := other.Description(tag); collides {
			err := zerr.With(zerr.Wrap(domain.ErrTagPartitionConflict, "a tag belongs to exactly one partition"), "tag", tag)
			if marked {
				err = zerr.With(err, "in_place", rec.description)
				err = zerr.With(err, "checkout", otherDescription)
			} else {
				err = zerr.With(err, "in_place", otherDescription)
				err = zerr.With(err, "checkout", rec.description)
			}
			return nil, nil, err
		}

		if err := target.Add(tag, rec.description); err != nil {
			return nil, nil, err
		}
	}

	return inPlace, checkout, nil
}

// resolveBuildsDir picks the builds directory: the caller override wins,
// then the declared directory, then the default. Relative declared paths
// are anchored at the descriptor directory; an override is used as given.
func resolveBuildsDir(declared, dir string, opts ports.ResolveOptions) string {
	if opts.BuildsDir != "" {
		return filepath.Clean(opts.BuildsDir)
	}
	if declared == "" {
		declared = domain.DefaultBuildsDirName
	}
	return anchor(declared, dir)
}

func anchor(path, dir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(dir, path))
}

// discoverTests scans the pass and fail directories and registers every
// executable entry as a test. A read failure on either directory disables
// test support for the whole run instead of failing resolution.
func (l *Loader) discoverTests(d *domain.Descriptor) {
	pass, err := listTests(d.PassDir)
	if err != nil {
		l.logger.Warn(fmt.Sprintf("cannot read test directory %s, disabling test support: %v", d.PassDir, err))
		return
	}

	fail, err := listTests(d.FailDir)
	if err != nil {
		l.logger.Warn(fmt.Sprintf("cannot read test directory %s, disabling test support: %v", d.FailDir, err))
		return
	}

	d.PassTests = pass
	d.FailTests = fail
	d.TestsEnabled = true
}

// listTests classifies the entries of one test directory. Record files and
// anything without an executable bit are skipped; the rest are tests.
func listTests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, domain.StdoutRecordExt) || strings.HasSuffix(name, domain.StderrRecordExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		names = append(names, name)
	}

	slices.Sort(names)
	return names, nil
}
