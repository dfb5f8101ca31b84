package domain

// Command describes one external process invocation. The working directory
// is always explicit; nothing in the system mutates the process-wide
// working directory.
type Command struct {
	// Argv is the command line. Argv[0] is resolved against PATH unless it
	// contains a path separator.
	Argv []string

	// Dir is the working directory the command runs in.
	Dir string

	// Env holds extra environment variables layered over the allow-listed
	// system environment.
	Env map[string]string
}

// CommandResult is the complete captured outcome of one finished command.
// Output is captured in full before the caller proceeds; there is no
// partial streaming.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r *CommandResult) Success() bool {
	return r.ExitCode == 0
}
