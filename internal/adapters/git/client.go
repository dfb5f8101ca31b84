// Package git provides a git client backed by the shell executor.
package git

import (
	"context"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
)

// Client implements ports.Git by shelling out to the git binary.
type Client struct {
	executor ports.Executor
}

// NewClient creates a new Client.
func NewClient(executor ports.Executor) *Client {
	return &Client{executor: executor}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (*domain.CommandResult, error) {
	return c.executor.Run(ctx, &domain.Command{
		Argv: append([]string{"git"}, args...),
		Dir:  dir,
	})
}

// Head returns the current ref and whether HEAD is detached. On a branch the
// ref is the branch name; detached it is the commit hash.
func (c *Client) Head(ctx context.Context, dir string) (string, bool, error) {
	res, err := c.run(ctx, dir, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", false, zerr.Wrap(err, "failed to query HEAD")
	}

	switch {
	case res.Success():
		return strings.TrimSpace(string(res.Stdout)), false, nil
	case res.ExitCode != 1:
		// symbolic-ref -q exits 1 when HEAD is detached, anything else is a
		// real failure
		return "", false, queryError("symbolic-ref", res)
	}

	res, err = c.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", false, zerr.Wrap(err, "failed to query HEAD")
	}
	if !res.Success() {
		return "", false, queryError("rev-parse", res)
	}

	return strings.TrimSpace(string(res.Stdout)), true, nil
}

// IsClean reports whether the working tree has no modified or staged files.
// Untracked files are tolerated.
func (c *Client) IsClean(ctx context.Context, dir string) (bool, error) {
	res, err := c.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, zerr.Wrap(err, "failed to query work tree status")
	}
	if !res.Success() {
		return false, queryError("status", res)
	}

	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "??") {
			continue
		}
		return false, nil
	}

	return true, nil
}

// Checkout checks out the given ref.
func (c *Client) Checkout(ctx context.Context, dir, ref string) error {
	res, err := c.run(ctx, dir, "checkout", ref)
	if err != nil {
		return zerr.Wrap(err, "failed to run git checkout")
	}
	if !res.Success() {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCheckoutFailed, "git checkout exited non-zero"), "ref", ref), "stderr", trimmed(res.Stderr))
	}
	return nil
}

// CheckoutDetached checks out the given ref leaving HEAD detached.
func (c *Client) CheckoutDetached(ctx context.Context, dir, ref string) error {
	res, err := c.run(ctx, dir, "checkout", "--detach", ref)
	if err != nil {
		return zerr.Wrap(err, "failed to run git checkout")
	}
	if !res.Success() {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCheckoutFailed, "git checkout exited non-zero"), "ref", ref), "stderr", trimmed(res.Stderr))
	}
	return nil
}

// SyncSubmodules updates submodules recursively, initializing them as needed.
func (c *Client) SyncSubmodules(ctx context.Context, dir string) error {
	res, err := c.run(ctx, dir, "submodule", "update", "--init", "--recursive")
	if err != nil {
		return zerr.Wrap(err, "failed to run git submodule update")
	}
	if !res.Success() {
		return zerr.With(zerr.Wrap(domain.ErrSubmoduleSyncFailed, "git submodule update exited non-zero"), "stderr", trimmed(res.Stderr))
	}
	return nil
}

func queryError(op string, res *domain.CommandResult) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrGitQueryFailed, "git exited non-zero"), "op", op), "stderr", trimmed(res.Stderr))
}

func trimmed(b []byte) string {
	return strings.TrimSpace(string(b))
}
