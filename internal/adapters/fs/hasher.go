// Package fs provides filesystem helpers, currently content hashing for
// build receipts.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content hashes of artifact files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the XXHash of the file content at path, rendered as a
// fixed-width hex string.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFileOpenFailed, err.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
