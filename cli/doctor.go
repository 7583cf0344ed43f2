package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

// DoctorCmd provides doctor utilities for debugging snapshot files.
type DoctorCmd struct {
	Dump DumpCmd `cmd:"" help:"Dump the parsed snapshot document as a Go value."`
}

// DumpCmd prints the decoded snapshot before name resolution, which makes it
// easy to see exactly what the file carries when an import misbehaves.
type DumpCmd struct {
	File FileOrStdin `help:"Snapshot filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	snap, err := cmd.File.LoadSnapshot()
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, renderError(err))
		return NewCommandError(1)
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(snap)

	return nil
}
