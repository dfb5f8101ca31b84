package kernel

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
)

// defaultCompiler is used for direct compilation when $CC is unset.
const defaultCompiler = "cc"

// nativeStep builds with the local make/compiler toolchain. Tags at or
// above the descriptor's build-tool minimum go through make; older tags
// predate the build tool and compile the single source file directly.
type nativeStep struct {
	descriptor  *domain.Descriptor
	executor    ports.Executor
	skipRebuild bool
}

func (s *nativeStep) Build(ctx context.Context, tag, workDir, buildDir string) ([]string, error) {
	if !s.descriptor.NeedsBuildTool(tag) {
		return s.compileDirect(ctx, workDir, buildDir)
	}

	argv := []string{"make"}
	if !s.skipRebuild {
		argv = append(argv, "-B")
	}
	if flags := s.compilerFlags(); flags != "" {
		argv = append(argv, "CFLAGS="+flags)
	}

	if err := runChecked(ctx, s.executor, &domain.Command{Argv: argv, Dir: workDir}); err != nil {
		return nil, err
	}

	return []string{filepath.Join(workDir, s.descriptor.Binary)}, nil
}

// compileDirect invokes the compiler on the single source file, writing
// the artifact straight into the per-tag directory.
func (s *nativeStep) compileDirect(ctx context.Context, workDir, buildDir string) ([]string, error) {
	artifact := filepath.Join(buildDir, s.descriptor.Binary)

	argv := []string{compiler()}
	if flags := s.compilerFlags(); flags != "" {
		argv = append(argv, strings.Fields(flags)...)
	}
	argv = append(argv, "-o", artifact, filepath.Join(workDir, s.descriptor.Source))

	if err := runChecked(ctx, s.executor, &domain.Command{Argv: argv, Dir: workDir}); err != nil {
		return nil, err
	}

	return []string{artifact}, nil
}

func (s *nativeStep) Finalize(_ context.Context, _, buildDir string, artifacts []string) error {
	for _, artifact := range artifacts {
		if err := installArtifact(artifact, buildDir); err != nil {
			return err
		}
	}
	return nil
}

func (s *nativeStep) Invoke(ctx context.Context, dir string) error {
	return runChecked(ctx, s.executor, &domain.Command{Argv: []string{"make"}, Dir: dir})
}

func (s *nativeStep) compilerFlags() string {
	flags := s.descriptor.CompilerFlags
	if s.descriptor.Extensions {
		if flags != "" {
			flags += " "
		}
		flags += "-DEXTENSIONS"
	}
	return flags
}

func compiler() string {
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return defaultCompiler
}
