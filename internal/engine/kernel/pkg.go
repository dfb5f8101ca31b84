package kernel

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
)

// versionStubName is the generated version file rewritten inside an
// unpacked source distribution.
const versionStubName = "_version.py"

// packageStep builds a source distribution and wheel with the packaging
// tool. Finalize relocates both into the per-tag directory, unpacks the
// sdist there and pins the generated version stub to the built tag.
type packageStep struct {
	descriptor *domain.Descriptor
	executor   ports.Executor
}

func (s *packageStep) Build(ctx context.Context, _, workDir, _ string) ([]string, error) {
	if err := s.Invoke(ctx, workDir); err != nil {
		return nil, err
	}

	distDir := filepath.Join(workDir, "dist")

	sdists, err := filepath.Glob(filepath.Join(distDir, "*.tar.gz"))
	if err != nil || len(sdists) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrSdistMissing, "backend produced no .tar.gz"), "dist", distDir)
	}
	wheels, _ := filepath.Glob(filepath.Join(distDir, "*.whl"))

	return append(sdists, wheels...), nil
}

func (s *packageStep) Finalize(_ context.Context, tag, buildDir string, artifacts []string) error {
	for _, artifact := range artifacts {
		if err := installArtifact(artifact, buildDir); err != nil {
			return err
		}
	}

	for _, artifact := range artifacts {
		if !strings.HasSuffix(artifact, ".tar.gz") {
			continue
		}
		sdist := filepath.Join(buildDir, filepath.Base(artifact))
		if err := s.unpackSdist(sdist, buildDir, tag); err != nil {
			return err
		}
	}

	return nil
}

func (s *packageStep) Invoke(ctx context.Context, dir string) error {
	return runChecked(ctx, s.executor, &domain.Command{
		Argv: []string{"python3", "-m", "build"},
		Dir:  dir,
	})
}

// unpackSdist extracts the source distribution into buildDir, renames its
// single root directory to the binary name and rewrites the generated
// version stub to the built tag.
func (s *packageStep) unpackSdist(sdist, buildDir, tag string) error {
	root, err := extractTarGz(sdist, buildDir)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrUnpackFailed, err.Error()), "sdist", sdist)
	}

	unpacked := filepath.Join(buildDir, s.descriptor.Binary)
	if root != s.descriptor.Binary {
		if err := os.RemoveAll(unpacked); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrUnpackFailed, err.Error()), "dest", unpacked)
		}
		if err := os.Rename(filepath.Join(buildDir, root), unpacked); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrUnpackFailed, err.Error()), "dest", unpacked)
		}
	}

	return rewriteVersionStubs(unpacked, tag)
}

// extractTarGz unpacks archive into dir and returns the name of the
// archive's single root directory.
func extractTarGz(archive, dir string) (string, error) {
	f, err := os.Open(archive) //nolint:gosec // sdist path derives from the build
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	defer gz.Close() //nolint:errcheck // Best effort close in defer

	var root string
	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		name := filepath.Clean(header.Name)
		if name == "." || strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			continue
		}
		if root == "" {
			root = topLevel(name)
		}

		target := filepath.Join(dir, name)
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(reader, target, header.FileInfo().Mode().Perm()); err != nil {
				return "", err
			}
		}
	}

	if root == "" {
		return "", zerr.Wrap(domain.ErrUnpackFailed, "empty archive")
	}
	return root, nil
}

func topLevel(name string) string {
	head, _, _ := strings.Cut(name, string(filepath.Separator))
	return head
}

func writeEntry(r io.Reader, target string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // entry path is sanitized above
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil { //nolint:gosec // sdist produced by the local build
		_ = out.Close()
		return err
	}
	return out.Close()
}

// rewriteVersionStubs pins every version stub directly under the unpacked
// tree's top-level package directories to the built tag.
func rewriteVersionStubs(unpacked, tag string) error {
	entries, err := os.ReadDir(unpacked)
	if err != nil {
		return zerr.Wrap(domain.ErrStubRewriteFailed, err.Error())
	}

	content := []byte("__version__ = \"" + tag + "\"\n")
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		stub := filepath.Join(unpacked, entry.Name(), versionStubName)
		if _, err := os.Stat(stub); err != nil {
			continue
		}
		if err := os.WriteFile(stub, content, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrStubRewriteFailed, err.Error()), "stub", stub)
		}
	}

	return nil
}
