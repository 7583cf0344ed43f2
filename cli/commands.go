package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Currency  string `help:"Currency code used for display formatting." default:"USD"`
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse and validate a budget snapshot file."`
	Balances BalancesCmd `cmd:"" help:"Show account balances, split into budget and tracking accounts."`
	Budget   BudgetCmd   `cmd:"" help:"Show the budget table for a month: budgeted, activity, available."`
	Averages AveragesCmd `cmd:"" help:"Show average monthly spending and budgeting per category."`
	Rewrite  RewriteCmd  `cmd:"" help:"Canonicalize a snapshot by round-tripping it through the engine."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging snapshot files."`
	Web      WebCmd      `cmd:"" help:"Start a web server exposing the budget as a JSON API."`
}
