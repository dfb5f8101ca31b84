package kernel

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
)

// customStep builds by invoking the user-declared external command. The
// command receives exactly four positional arguments: the per-tag build
// directory, the binary name, the tag and the descriptor directory.
type customStep struct {
	descriptor *domain.Descriptor
	executor   ports.Executor
}

func (s *customStep) Build(ctx context.Context, tag, workDir, buildDir string) ([]string, error) {
	argv := make([]string, 0, len(s.descriptor.CustomCmd)+4)
	argv = append(argv, s.descriptor.CustomCmd...)
	argv = append(argv, buildDir, s.descriptor.Binary, tag, s.descriptor.Dir)

	if err := runChecked(ctx, s.executor, &domain.Command{Argv: argv, Dir: s.descriptor.Dir}); err != nil {
		return nil, err
	}

	return []string{filepath.Join(workDir, s.descriptor.Binary)}, nil
}

// Finalize moves the artifact into buildDir only when the command did not
// already place it at the expected path itself.
func (s *customStep) Finalize(_ context.Context, _, buildDir string, artifacts []string) error {
	expected := filepath.Join(buildDir, s.descriptor.Binary)
	if _, err := os.Stat(expected); err == nil {
		return nil
	}

	for _, artifact := range artifacts {
		if err := installArtifact(artifact, buildDir); err != nil {
			return err
		}
	}
	return nil
}

func (s *customStep) Invoke(ctx context.Context, dir string) error {
	return runChecked(ctx, s.executor, &domain.Command{
		Argv: append([]string{}, s.descriptor.CustomCmd...),
		Dir:  dir,
	})
}
