package ports

import "go.trai.ch/tago/internal/core/domain"

// ReceiptStore defines the interface for storing and retrieving build
// receipts.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReceiptStore interface {
	// Get retrieves the receipt for a given tag.
	// Returns nil, nil if not found.
	Get(buildsDir, tag string) (*domain.BuildReceipt, error)

	// Put stores the receipt.
	Put(buildsDir string, receipt domain.BuildReceipt) error

	// Delete removes the receipt for a given tag. A missing receipt is not
	// an error.
	Delete(buildsDir, tag string) error
}
