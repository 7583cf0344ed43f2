package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/envelope/budget"
	"github.com/robinvdvleuten/envelope/currency"
	"github.com/robinvdvleuten/envelope/telemetry"
)

type BalancesCmd struct {
	File FileOrStdin `help:"Snapshot filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	var onBudget, tracking []*budget.Account
	for _, a := range l.Accounts() {
		if a.OnBudget {
			onBudget = append(onBudget, a)
		} else {
			tracking = append(tracking, a)
		}
	}

	cmd.renderSection(ctx, l, "Budget accounts", onBudget, globals.Currency)
	if len(tracking) > 0 {
		_, _ = fmt.Fprintln(ctx.Stdout)
		cmd.renderSection(ctx, l, "Tracking accounts", tracking, globals.Currency)
	}

	return nil
}

func (cmd *BalancesCmd) renderSection(ctx *kong.Context, l *budget.Ledger, title string, accounts []*budget.Account, code string) {
	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render(title))

	t := newTable(
		column{title: "Account"},
		column{title: "Type"},
		column{title: "Balance", rightAlign: true},
	)
	total := decimal.Zero
	for _, a := range accounts {
		balance := l.Balance(a)
		total = total.Add(balance)
		t.addRow(a.Name, a.Type.String(), currency.Format(balance, code))
	}
	t.addRow("Total", "", currency.Format(total, code))
	t.render(ctx.Stdout)
}
