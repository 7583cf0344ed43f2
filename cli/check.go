package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/envelope/telemetry"
)

type CheckCmd struct {
	File FileOrStdin `help:"Snapshot filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
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
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%s is not a valid snapshot", filepath.Base(cmd.File.Filename)))
		return NewCommandError(1)
	}

	printWarnings(ctx.Stderr, warnings)

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d accounts, %d categories, %d transactions, %d budget months",
		len(l.Accounts()),
		len(l.Categories()),
		len(l.Transactions()),
		len(l.BudgetMonths())))

	if len(warnings) > 0 {
		printInfof(ctx.Stdout, "%d warning(s); unresolved references were left empty", len(warnings))
	}

	return nil
}
