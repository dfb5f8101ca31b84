package ports

import "context"

// Git defines the interface for the version-control operations of
// checkout-mode builds. All operations address the repository at dir.
//
//go:generate mockgen -source=git.go -destination=mocks/mock_git.go -package=mocks
type Git interface {
	// Head returns the current ref and whether the working tree is
	// detached. On a branch the ref is the branch name; detached it is the
	// commit hash.
	Head(ctx context.Context, dir string) (ref string, detached bool, err error)

	// IsClean reports whether the working tree has no modified or staged
	// files. Untracked files are tolerated.
	IsClean(ctx context.Context, dir string) (bool, error)

	// Checkout checks out the given ref.
	Checkout(ctx context.Context, dir, ref string) error

	// CheckoutDetached checks out the given ref leaving HEAD detached.
	CheckoutDetached(ctx context.Context, dir, ref string) error

	// SyncSubmodules updates submodules recursively, initializing them as
	// needed.
	SyncSubmodules(ctx context.Context, dir string) error
}
