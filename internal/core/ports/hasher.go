package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile computes a stable hash of the file content at path.
	HashFile(path string) (string, error)
}
