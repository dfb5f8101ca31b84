package domain

import "go.trai.ch/zerr"

// Mode is the active run mode. Exactly one mode is selected at startup and
// never changes afterward.
type Mode uint8

const (
	// ModeCheckout builds tags by checking them out from git. This is the
	// default when no mode flag is given.
	ModeCheckout Mode = iota
	// ModeInPlace builds tags inside their per-tag directories without
	// touching git.
	ModeInPlace
	// ModeSingleTest runs exactly one named test.
	ModeSingleTest
	// ModeTestSuite runs every registered test.
	ModeTestSuite
)

// String returns the mode name used in diagnostics and receipts.
func (m Mode) String() string {
	switch m {
	case ModeCheckout:
		return "checkout"
	case ModeInPlace:
		return "in-place"
	case ModeSingleTest:
		return "single-test"
	case ModeTestSuite:
		return "test-suite"
	default:
		return "unknown"
	}
}

// Op is the pending operation. Absent any operation flag the run is a
// query.
type Op uint8

const (
	// OpQuery inspects state or falls through to the backend's default
	// build invocation.
	OpQuery Op = iota
	// OpBuild builds one tag.
	OpBuild
	// OpRun executes one tag's built artifact.
	OpRun
	// OpDelete removes one tag's build.
	OpDelete
	// OpList prints the active version table.
	OpList
	// OpInit builds every tag of the active table.
	OpInit
	// OpPurge deletes every tag of the active table.
	OpPurge
)

// String returns the operation name used in diagnostics.
func (o Op) String() string {
	switch o {
	case OpQuery:
		return "query"
	case OpBuild:
		return "build"
	case OpRun:
		return "run"
	case OpDelete:
		return "delete"
	case OpList:
		return "list"
	case OpInit:
		return "init"
	case OpPurge:
		return "purge"
	default:
		return "unknown"
	}
}

// Request carries the raw flags of one invocation, before mode selection.
type Request struct {
	// Mode flags. InPlace, Test (by carrying a test name) and Suite are
	// mutually exclusive; none of them selects checkout mode.
	InPlace bool
	Test    string
	Suite   bool

	// Operation flags, mutually exclusive. None selects a query.
	Build  bool
	Run    bool
	Delete bool
	List   bool
	Init   bool
	Purge  bool

	// Tag is the target tag of tag-scoped operations.
	Tag string

	// Behavior switches.
	Force       bool
	AllowDirty  bool
	Record      bool
	Strict      bool
	SkipRebuild bool
}

// RunState is the small mutable record layered on top of the immutable
// descriptor. It is written only by Select and by bulk operations walking
// tags.
type RunState struct {
	Mode Mode
	Op   Op

	// Tag is the current target tag. Bulk operations update it per
	// iteration.
	Tag string

	// TestName is the single-test query, ModeSingleTest only.
	TestName string

	Force       bool
	AllowDirty  bool
	Record      bool
	Strict      bool
	SkipRebuild bool
}

// Select validates the request against the resolved descriptor and fixes
// the run mode and pending operation. It is the only place a mode is
// assigned.
func Select(d *Descriptor, req Request) (*RunState, error) {
	mode, err := selectMode(d, req)
	if err != nil {
		return nil, err
	}

	op, err := selectOp(req)
	if err != nil {
		return nil, err
	}

	if mode == ModeSingleTest || mode == ModeTestSuite {
		if op != OpQuery {
			err := zerr.With(zerr.Wrap(ErrOpConflict, "test modes only support queries"), "mode", mode.String())
			return nil, zerr.With(err, "op", op.String())
		}
	}

	if err := validateTag(mode, op, req.Tag); err != nil {
		return nil, err
	}

	return &RunState{
		Mode:        mode,
		Op:          op,
		Tag:         req.Tag,
		TestName:    req.Test,
		Force:       req.Force,
		AllowDirty:  req.AllowDirty,
		Record:      req.Record,
		Strict:      req.Strict,
		SkipRebuild: req.SkipRebuild,
	}, nil
}

func selectMode(d *Descriptor, req Request) (Mode, error) {
	flags := 0
	mode := ModeCheckout
	if req.InPlace {
		flags++
		mode = ModeInPlace
	}
	if req.Test != "" {
		flags++
		mode = ModeSingleTest
	}
	if req.Suite {
		flags++
		mode = ModeTestSuite
	}
	if flags > 1 {
		return mode, ErrModeConflict
	}

	if mode == ModeSingleTest || mode == ModeTestSuite {
		if !d.TestsEnabled {
			return mode, ErrTestsDisabled
		}
	}
	if mode == ModeSingleTest && !d.HasTest(req.Test) {
		return mode, zerr.With(zerr.Wrap(ErrUnknownTest, "test is in neither test table"), "test", req.Test)
	}

	return mode, nil
}

func selectOp(req Request) (Op, error) {
	flags := 0
	op := OpQuery
	for _, candidate := range []struct {
		set bool
		op  Op
	}{
		{req.Build, OpBuild},
		{req.Run, OpRun},
		{req.Delete, OpDelete},
		{req.List, OpList},
		{req.Init, OpInit},
		{req.Purge, OpPurge},
	} {
		if candidate.set {
			flags++
			op = candidate.op
		}
	}
	if flags > 1 {
		return op, ErrOpConflict
	}
	return op, nil
}

func validateTag(mode Mode, op Op, tag string) error {
	switch op {
	case OpBuild, OpRun, OpDelete:
		if tag == "" {
			return zerr.With(zerr.Wrap(ErrMissingTag, "tag-scoped operation invoked without a tag"), "op", op.String())
		}
	case OpList, OpInit, OpPurge:
		if tag != "" {
			err := zerr.With(zerr.Wrap(ErrTagNotAllowed, "bulk operations cover the whole table"), "op", op.String())
			return zerr.With(err, "tag", tag)
		}
	case OpQuery:
		// A query takes an optional tag in checkout and in-place mode
		// and none in the test modes.
		if tag != "" && (mode == ModeSingleTest || mode == ModeTestSuite) {
			err := zerr.With(zerr.Wrap(ErrTagNotAllowed, "test queries take no tag"), "mode", mode.String())
			return zerr.With(err, "tag", tag)
		}
	}

	if tag != "" && !ValidVersionKey(tag) {
		return zerr.With(zerr.Wrap(ErrInvalidVersionKey, "tags must be strict x.y.z keys"), "tag", tag)
	}
	return nil
}
