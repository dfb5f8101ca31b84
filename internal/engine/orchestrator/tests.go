package orchestrator

import (
	"context"
	"fmt"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/engine/testrun"
	"go.trai.ch/zerr"
)

// runSingleTest executes exactly the named test of a single-test query.
func (o *Orchestrator) runSingleTest(ctx context.Context) error {
	result, err := o.tests.Run(ctx, o.state.TestName)
	if err != nil {
		return err
	}
	o.reportTest(result)
	return testError(result)
}

// runTestSuite executes every registered test in ascending name order.
// Every test is attempted; the aggregate fails if any single test failed.
func (o *Orchestrator) runTestSuite(ctx context.Context) error {
	var passed, failed, skipped int

	for _, name := range o.descriptor.TestNames() {
		result, err := o.tests.Run(ctx, name)
		if err != nil {
			o.logger.Warn("test " + name + " could not be run: " + err.Error())
			failed++
			continue
		}
		o.reportTest(result)

		switch {
		case result.Skipped:
			skipped++
		case result.Passed():
			passed++
		default:
			failed++
		}
	}

	fmt.Fprintf(o.stdout, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)

	if failed > 0 {
		return zerr.With(zerr.Wrap(domain.ErrTestSuiteFailed, "not every test passed"), "failed", failed)
	}
	return nil
}

// reportTest renders one test outcome, surfacing the expected and actual
// text of every mismatched stream.
func (o *Orchestrator) reportTest(result *testrun.Result) {
	switch {
	case result.Skipped:
		fmt.Fprintf(o.stdout, "SKIP %s (no record)\n", result.Name)
		return
	case result.Passed():
		fmt.Fprintf(o.stdout, "PASS %s\n", result.Name)
		return
	}

	fmt.Fprintf(o.stdout, "FAIL %s\n", result.Name)
	if result.WrongExit {
		fmt.Fprintf(o.stdout, "  unexpected exit status %d\n", result.ExitCode)
	}
	for _, mismatch := range result.Mismatches {
		fmt.Fprintf(o.stdout, "  %s mismatch\n  expected:\n%s  actual:\n%s",
			mismatch.Stream, indent(mismatch.Expected), indent(mismatch.Actual))
	}
}

func testError(result *testrun.Result) error {
	switch {
	case result.Passed():
		return nil
	case result.WrongExit && len(result.Mismatches) == 0:
		err := zerr.With(zerr.Wrap(domain.ErrTestExitUnexpected, "exit status contradicts the test table"), "test", result.Name)
		return zerr.With(err, "exit_code", result.ExitCode)
	default:
		return zerr.With(zerr.Wrap(domain.ErrTestFailed, "captured output differs from records"), "test", result.Name)
	}
}

func indent(s string) string {
	if s == "" {
		return "    <empty>\n"
	}
	out := ""
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out += "    " + s[start:i+1]
			start = i + 1
		}
	}
	if start < len(s) {
		out += "    " + s[start:] + "\n"
	}
	return out
}
