// Package statement renders account statements and writes them out.
package statement

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
)

const (
	gridSize = 102

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	currency = "€"

	detailsRow   = "|  %-20s %-77s  |"
	operationRow = "|  %-15s %-25s %-25s %-30s  |"
	messageRow   = "|  %-100s|"

	noOperations = "No operations were found for this account"
)

// GridFormatter lays a statement out as a fixed-width bordered table.
type GridFormatter struct{}

func NewGridFormatter() *GridFormatter {
	return &GridFormatter{}
}

// Format renders the statement line by line. Operations are written in the
// order the statement holds them.
func (f *GridFormatter) Format(s *models.Statement) []string {
	lines := make([]string, 0, 14+len(s.Operations))
	lines = append(lines, f.statementHeader(s)...)
	lines = append(lines, f.accountDetails(s)...)
	lines = append(lines, f.operationHeader()...)

	if len(s.Operations) == 0 {
		lines = append(lines, fmt.Sprintf(messageRow, noOperations))
	} else {
		for _, op := range s.Operations {
			lines = append(lines, f.operationLine(op))
		}
	}

	return append(lines, separator())
}

func (f *GridFormatter) statementHeader(s *models.Statement) []string {
	return []string{
		separator(),
		emptyLine(),
		"|" + center("ACCOUNT STATEMENT OF "+s.Date.Format(dateLayout)) + "|",
		emptyLine(),
	}
}

func (f *GridFormatter) accountDetails(s *models.Statement) []string {
	return []string{
		separator(),
		"|" + center("ACCOUNT DETAILS") + "|",
		separator(),
		fmt.Sprintf(detailsRow, "Account Number", s.AccountID.String()),
		fmt.Sprintf(detailsRow, "Balance", money(s.Balance)),
		separator(),
	}
}

func (f *GridFormatter) operationHeader() []string {
	return []string{
		emptyLine(),
		fmt.Sprintf(operationRow, "TYPE", "DATE", "AMOUNT", "BALANCE"),
		separator(),
	}
}

func (f *GridFormatter) operationLine(op models.Operation) string {
	sign := "+"
	if op.Type == models.Withdrawal {
		sign = "-"
	}

	return fmt.Sprintf(operationRow,
		op.Type.String(),
		op.Date.Format(dateTimeLayout),
		sign+money(op.Amount.Value()),
		money(op.Balance),
	)
}

// center puts s slightly right of the middle when the remainder is odd.
func center(s string) string {
	n := utf8.RuneCountInString(s)
	return fmt.Sprintf("%-*s", gridSize, fmt.Sprintf("%*s", n+(gridSize-n)/2, s))
}

func money(d decimal.Decimal) string {
	return d.StringFixedBank(2) + currency
}

func separator() string {
	return "+" + strings.Repeat("-", gridSize) + "+"
}

func emptyLine() string {
	return "|" + strings.Repeat(" ", gridSize) + "|"
}

var _ interfaces.StatementFormatter = (*GridFormatter)(nil)
