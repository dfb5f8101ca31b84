package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/zerr"
)

// Legacy descriptor line positions. The format is positional: the first
// seven lines are the header, everything after it is a tag record.
const (
	legacyLineSchema = iota
	legacyLineSource
	legacyLineBinary
	legacyLineBuildToolMin
	legacyLineBootstrapMin
	legacyLineTestsDir
	legacyLineBuildsDir
	legacyHeaderLines
)

// decodeLegacy parses the fixed-position line encoding used by schema
// versions predating the structured format. dir is the descriptor
// directory, needed to locate the companion test index file.
func decodeLegacy(raw []byte, dir string) (*decoded, error) {
	lines := strings.Split(string(raw), "\n")
	if len(lines) < legacyHeaderLines {
		err := zerr.With(zerr.Wrap(domain.ErrLegacyTruncated, "header lines are positional"), "lines", len(lines))
		return nil, zerr.With(err, "required", legacyHeaderLines)
	}

	// Legacy files always declare their schema on line 0; there is no
	// defaulting for them.
	schema := strings.TrimSpace(lines[legacyLineSchema])
	if err := domain.ValidSchema(schema); err != nil {
		return nil, err
	}
	if domain.CompareVersions(schema, domain.SchemaStructuredMin) != domain.Less {
		err := zerr.With(zerr.Wrap(domain.ErrFormatMismatch, "schema requires the structured format"), "schema", schema)
		return nil, zerr.With(err, "format", "legacy")
	}

	dec := &decoded{
		schema:       schema,
		source:       strings.TrimSpace(lines[legacyLineSource]),
		binary:       strings.TrimSpace(lines[legacyLineBinary]),
		buildToolMin: strings.TrimSpace(lines[legacyLineBuildToolMin]),
		bootstrapMin: strings.TrimSpace(lines[legacyLineBootstrapMin]),
		testsDir:     strings.TrimSpace(lines[legacyLineTestsDir]),
		buildsDir:    strings.TrimSpace(lines[legacyLineBuildsDir]),
		sigil:        legacyInPlaceSigil,
	}

	for _, line := range lines[legacyHeaderLines:] {
		record, ok := parseTagRecord(line)
		if !ok {
			continue
		}
		dec.versions = append(dec.versions, record)
	}

	// A declared tests directory points at a companion index file naming
	// the pass and fail subdirectories.
	if dec.testsDir != "" {
		passName, failName, err := parseTestIndex(filepath.Join(anchor(dec.testsDir, dir), domain.TestIndexFileName))
		if err != nil {
			return nil, err
		}
		dec.passName = passName
		dec.failName = failName
	}

	return dec, nil
}

// parseTagRecord parses one legacy tag line of the form
// "[?]x.y.z [# description]". Blank lines are skipped.
func parseTagRecord(line string) (versionRecord, bool) {
	tag, description, _ := strings.Cut(line, "#")
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return versionRecord{}, false
	}
	return versionRecord{tag: tag, description: strings.TrimSpace(description)}, true
}

// parseTestIndex reads the companion index file. It is positional like the
// descriptor itself: line 0 names the pass subdirectory, line 1 the fail
// subdirectory.
func parseTestIndex(path string) (passName, failName string, err error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path derives from the descriptor
	if err != nil {
		return "", "", zerr.With(zerr.Wrap(domain.ErrTestIndexMalformed, err.Error()), "path", path)
	}

	lines := strings.Split(string(raw), "\n")
	if len(lines) < 2 {
		return "", "", zerr.With(zerr.Wrap(domain.ErrTestIndexMalformed, "index needs a pass and a fail line"), "path", path)
	}

	passName = strings.TrimSpace(lines[0])
	failName = strings.TrimSpace(lines[1])
	if passName == "" || failName == "" {
		return "", "", zerr.With(zerr.Wrap(domain.ErrTestIndexMalformed, "index lines must not be blank"), "path", path)
	}

	return passName, failName, nil
}
