package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/envelope/currency"
	"github.com/robinvdvleuten/envelope/telemetry"
)

type AveragesCmd struct {
	File   FileOrStdin `help:"Snapshot filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Month  string      `help:"Month the window ends before (YYYY-MM, defaults to the current month)."`
	Window int         `help:"Number of months to look back." default:"12"`
}

func (cmd *AveragesCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Window < 1 {
		return fmt.Errorf("window must be at least 1 month, got %d", cmd.Window)
	}

	month, err := resolveMonth(cmd.Month)
	if err != nil {
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

	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render(
		fmt.Sprintf("Averages over %d month(s) before %s", cmd.Window, month)))

	t := newTable(
		column{title: "Category"},
		column{title: "Avg spent", rightAlign: true},
		column{title: "Avg budgeted", rightAlign: true},
	)
	for _, c := range l.Categories() {
		if c.IsHeader || c.IsSystem || c.IsHidden {
			continue
		}
		spent := l.AverageMonthlySpending(c, month, cmd.Window)
		budgeted := l.AverageMonthlyBudgeted(c, month, cmd.Window)
		if spent.IsZero() && budgeted.IsZero() {
			continue
		}
		t.addRow(categoryLabel(c),
			currency.FormatAmount(spent, globals.Currency),
			currency.FormatAmount(budgeted, globals.Currency),
		)
	}
	t.render(ctx.Stdout)

	return nil
}
