package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/envelope/backup"
	"github.com/robinvdvleuten/envelope/telemetry"
)

// RewriteCmd round-trips a snapshot through the engine, producing a
// canonical document: collections in sort order, categories with headers
// first, normalized month timestamps. Derived figures are unchanged.
type RewriteCmd struct {
	File   FileOrStdin `help:"Snapshot filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Write the rewritten snapshot to this file instead of stdout." short:"o"`
	Force  bool        `help:"Overwrite the output file without confirmation." short:"f"`
}

func (cmd *RewriteCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	l, warnings, err := cmd.File.LoadLedger(runCtx)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, renderError(err))
		return NewCommandError(1)
	}
	printWarnings(ctx.Stderr, warnings)

	if cmd.Output == "" {
		data, err := backup.Marshal(backup.Export(l))
		if err != nil {
			return err
		}
		_, _ = ctx.Stdout.Write(data)
		return nil
	}

	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q exists. Overwrite it?", cmd.Output))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("refusing to overwrite %s", cmd.Output)
		}
	}

	if err := backup.WriteFile(cmd.Output, l); err != nil {
		return err
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Wrote %s", pathStyle.Render(cmd.Output)))

	return nil
}
