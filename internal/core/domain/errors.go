package domain

import "go.trai.ch/zerr"

var (
	// ErrDescriptorReadFailed is returned when the descriptor file cannot be read.
	ErrDescriptorReadFailed = zerr.New("failed to read descriptor file")

	// ErrDescriptorParseFailed is returned when the descriptor file cannot be parsed.
	ErrDescriptorParseFailed = zerr.New("failed to parse descriptor file")

	// ErrSchemaInvalid is returned when the declared schema version is not a strict version key.
	ErrSchemaInvalid = zerr.New("invalid schema version")

	// ErrSchemaUnsupported is returned when the declared schema version is newer than the latest supported one.
	ErrSchemaUnsupported = zerr.New("schema version not supported")

	// ErrFormatMismatch is returned when the descriptor encoding does not match its schema version's format.
	ErrFormatMismatch = zerr.New("descriptor format does not match schema version")

	// ErrLegacyTruncated is returned when a legacy descriptor is missing required header lines.
	ErrLegacyTruncated = zerr.New("legacy descriptor is missing required header lines")

	// ErrTestIndexMalformed is returned when the companion test index file is missing required lines.
	ErrTestIndexMalformed = zerr.New("test index file is missing required lines")

	// ErrInvalidVersionKey is returned when a version string is not a strict x.y.z key.
	ErrInvalidVersionKey = zerr.New("invalid version key")

	// ErrDuplicateTag is returned when a tag appears twice in one version table partition.
	ErrDuplicateTag = zerr.New("duplicate tag")

	// ErrTagPartitionConflict is returned when a stripped tag appears in both version table partitions.
	ErrTagPartitionConflict = zerr.New("tag declared in both version table partitions")

	// ErrUnknownKernel is returned when the descriptor declares an unrecognized kernel keyword.
	ErrUnknownKernel = zerr.New("unknown kernel")

	// ErrKernelUnavailable is returned when the declared kernel predates its schema introduction threshold.
	ErrKernelUnavailable = zerr.New("kernel not available in this schema version")

	// ErrKernelExperimental is returned in strict mode when the declared kernel is still experimental at the schema version.
	ErrKernelExperimental = zerr.New("kernel is experimental in this schema version")

	// ErrModeConflict is returned when more than one mode flag is set.
	ErrModeConflict = zerr.New("conflicting mode flags")

	// ErrOpConflict is returned when more than one operation flag is set.
	ErrOpConflict = zerr.New("conflicting operation flags")

	// ErrMissingTag is returned when a tag-scoped operation is requested without a tag.
	ErrMissingTag = zerr.New("operation requires a tag")

	// ErrTagNotAllowed is returned when an operation that takes no tag is given one.
	ErrTagNotAllowed = zerr.New("operation does not take a tag")

	// ErrUnknownTag is returned when the requested tag is not a key of the active version table.
	ErrUnknownTag = zerr.New("unknown tag")

	// ErrUnknownTest is returned when the requested test is in neither test table.
	ErrUnknownTest = zerr.New("unknown test")

	// ErrTestsDisabled is returned when a test mode is requested but test support is off.
	ErrTestsDisabled = zerr.New("test support is disabled")

	// ErrWorkTreeDirty is returned when the working tree has modified or staged files before a checkout operation.
	ErrWorkTreeDirty = zerr.New("working tree has uncommitted changes")

	// ErrCommandStartFailed is returned when an external command cannot be spawned.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCommandFailed is returned when an external command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command exited with non-zero status")

	// ErrGitQueryFailed is returned when the current git state cannot be determined.
	ErrGitQueryFailed = zerr.New("failed to query git state")

	// ErrCheckoutFailed is returned when checking out a tag fails.
	ErrCheckoutFailed = zerr.New("failed to check out tag")

	// ErrSwitchBackFailed is returned when the working tree cannot be returned to its starting ref.
	ErrSwitchBackFailed = zerr.New("failed to switch working tree back to starting ref")

	// ErrSubmoduleSyncFailed is returned when recursively syncing submodules fails.
	ErrSubmoduleSyncFailed = zerr.New("failed to sync submodules")

	// ErrBootstrapFailed is returned when the bootstrap and configure sequence fails.
	ErrBootstrapFailed = zerr.New("bootstrap failed")

	// ErrBuildStepFailed is returned when the kernel build step fails.
	ErrBuildStepFailed = zerr.New("build step failed")

	// ErrRelocateFailed is returned when produced artifacts cannot be placed into the per-tag directory.
	ErrRelocateFailed = zerr.New("failed to relocate artifact")

	// ErrSdistMissing is returned when the packaging tool produced no source distribution.
	ErrSdistMissing = zerr.New("source distribution not found")

	// ErrUnpackFailed is returned when the source distribution cannot be unpacked.
	ErrUnpackFailed = zerr.New("failed to unpack source distribution")

	// ErrStubRewriteFailed is returned when the generated version stub cannot be rewritten.
	ErrStubRewriteFailed = zerr.New("failed to rewrite version stub")

	// ErrDirCreateFailed is returned when a build directory cannot be created.
	ErrDirCreateFailed = zerr.New("failed to create directory")

	// ErrNotBuilt is returned when an operation needs an artifact that has not been built yet.
	ErrNotBuilt = zerr.New("artifact not built, build the tag first")

	// ErrArtifactMissing is returned when an expected artifact does not exist.
	ErrArtifactMissing = zerr.New("artifact does not exist")

	// ErrArtifactIrregular is returned when the artifact path exists but is not a regular file.
	ErrArtifactIrregular = zerr.New("artifact is not a regular file")

	// ErrDeleteFailed is returned when removing a tag's build fails.
	ErrDeleteFailed = zerr.New("failed to delete build")

	// ErrBulkIncomplete is returned when a bulk operation finished with per-tag failures.
	ErrBulkIncomplete = zerr.New("bulk operation completed with failures")

	// ErrTestDirUnreadable is returned when a test subdirectory cannot be read.
	ErrTestDirUnreadable = zerr.New("failed to read test directory")

	// ErrRecordReadFailed is returned when a record file cannot be read.
	ErrRecordReadFailed = zerr.New("failed to read record file")

	// ErrRecordWriteFailed is returned when a record file cannot be written.
	ErrRecordWriteFailed = zerr.New("failed to write record file")

	// ErrTestFailed is returned when a test's output does not match its recorded baseline.
	ErrTestFailed = zerr.New("test output does not match recorded baseline")

	// ErrTestExitUnexpected is returned when a test exits with the wrong status for its table.
	ErrTestExitUnexpected = zerr.New("test exited with unexpected status")

	// ErrTestSuiteFailed is returned when the test suite finished with failures.
	ErrTestSuiteFailed = zerr.New("test suite reported failures")

	// ErrReceiptDirCreateFailed is returned when the receipt directory cannot be created.
	ErrReceiptDirCreateFailed = zerr.New("failed to create receipt directory")

	// ErrReceiptReadFailed is returned when a build receipt cannot be read.
	ErrReceiptReadFailed = zerr.New("failed to read build receipt")

	// ErrReceiptUnmarshalFailed is returned when a build receipt cannot be unmarshaled.
	ErrReceiptUnmarshalFailed = zerr.New("failed to unmarshal build receipt")

	// ErrReceiptMarshalFailed is returned when a build receipt cannot be marshaled.
	ErrReceiptMarshalFailed = zerr.New("failed to marshal build receipt")

	// ErrReceiptWriteFailed is returned when a build receipt cannot be written.
	ErrReceiptWriteFailed = zerr.New("failed to write build receipt")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)
