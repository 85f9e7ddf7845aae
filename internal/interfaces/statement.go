package interfaces

import "github.com/sheikh-saqib/account-statement-ledger/internal/models"

// StatementFormatter renders a statement into printable lines.
type StatementFormatter interface {
	Format(statement *models.Statement) []string
}

// StatementPrinter writes formatted lines to some output.
type StatementPrinter interface {
	Print(lines []string) error
}
