package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/envelope/budget"
	"github.com/robinvdvleuten/envelope/currency"
	"github.com/robinvdvleuten/envelope/telemetry"
)

type BudgetCmd struct {
	File  FileOrStdin `help:"Snapshot filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Month string      `help:"Month to show (YYYY-MM, defaults to the current month)."`
}

func (cmd *BudgetCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
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

	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render(fmt.Sprintf("Budget for %s", month)))

	t := newTable(
		column{title: "Category"},
		column{title: "Budgeted", rightAlign: true},
		column{title: "Activity", rightAlign: true},
		column{title: "Available", rightAlign: true},
	)
	for _, c := range l.Categories() {
		if c.IsSystem || c.IsHidden {
			continue
		}
		if c.IsHeader {
			t.addRow(categoryLabel(c), "", "", "")
			continue
		}
		name := categoryLabel(c)
		if c.Parent != nil {
			name = "  " + name
		}
		t.addRow(name,
			currency.FormatAmount(l.Budgeted(c, month), globals.Currency),
			currency.FormatAmount(l.Activity(c, month), globals.Currency),
			currency.FormatAmount(l.Available(c, month), globals.Currency),
		)
	}
	t.render(ctx.Stdout)

	_, _ = fmt.Fprintln(ctx.Stdout)
	toBudget := l.ToBudget(month)
	rendered := currency.Format(toBudget, globals.Currency)
	if toBudget.IsNegative() {
		printError(ctx.Stdout, fmt.Sprintf("To Budget: %s (over-assigned)", rendered))
	} else {
		printInfof(ctx.Stdout, "To Budget: %s", rendered)
	}

	return nil
}

// categoryLabel renders a category name with its emoji prefix when set.
func categoryLabel(c *budget.Category) string {
	if c.Emoji == "" {
		return c.Name
	}
	return strings.TrimSpace(c.Emoji + " " + c.Name)
}

// resolveMonth parses a YYYY-MM flag, defaulting to the current month.
func resolveMonth(s string) (budget.Month, error) {
	if s == "" {
		return budget.MonthOf(time.Now()), nil
	}
	return budget.ParseMonth(s)
}
