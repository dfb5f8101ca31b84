// Package cas implements the build receipt store using a file-per-tag
// strategy under the builds directory.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ReceiptStore. Receipts live as indented JSON
// files named after their validated tag, greppable next to the builds they
// describe.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the receipt for a given tag. A missing receipt returns
// nil, nil.
func (s *Store) Get(buildsDir, tag string) (*domain.BuildReceipt, error) {
	filename := s.filename(buildsDir, tag)
	//nolint:gosec // Path is constructed from the builds dir and a validated tag
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrReceiptReadFailed.Error())
	}

	var receipt domain.BuildReceipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, zerr.Wrap(err, domain.ErrReceiptUnmarshalFailed.Error())
	}

	return &receipt, nil
}

// Put stores the receipt.
func (s *Store) Put(buildsDir string, receipt domain.BuildReceipt) error {
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrReceiptMarshalFailed.Error())
	}

	filename := s.filename(buildsDir, receipt.Tag)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrReceiptDirCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from the builds dir and a validated tag
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrReceiptWriteFailed.Error())
	}

	return nil
}

// Delete removes the receipt for a given tag. A missing receipt is not an
// error.
func (s *Store) Delete(buildsDir, tag string) error {
	err := os.Remove(s.filename(buildsDir, tag))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, "failed to delete build receipt")
	}
	return nil
}

func (s *Store) filename(buildsDir, tag string) string {
	return filepath.Join(domain.ReceiptsPath(buildsDir), domain.TagDirPrefix+tag+".json")
}
