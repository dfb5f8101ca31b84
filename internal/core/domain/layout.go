package domain

import "path/filepath"

const (
	// DescriptorFileName is the default name of the project descriptor file.
	DescriptorFileName = "tago.yaml"

	// TagoDirName is the name of the internal metadata directory kept
	// inside the builds directory.
	TagoDirName = ".tago"

	// ReceiptsDirName is the name of the build receipt directory.
	ReceiptsDirName = "receipts"

	// DefaultBuildsDirName is the builds directory used when the
	// descriptor does not declare one.
	DefaultBuildsDirName = "builds"

	// TagDirPrefix prefixes the tag in each per-tag build directory name.
	TagDirPrefix = "v"

	// TestIndexFileName is the legacy companion file naming the pass and
	// fail test subdirectories.
	TestIndexFileName = "index"

	// StdoutRecordExt is the extension of recorded stdout baselines.
	StdoutRecordExt = ".stdout"

	// StderrRecordExt is the extension of recorded stderr baselines.
	StderrRecordExt = ".stderr"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ReceiptsPath returns the receipt directory under the given builds
// directory. It joins the builds dir, .tago and receipts.
func ReceiptsPath(buildsDir string) string {
	return filepath.Join(buildsDir, TagoDirName, ReceiptsDirName)
}
