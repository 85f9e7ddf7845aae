package statement

import (
	"bufio"
	"io"

	"github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"
)

// WriterPrinter writes statement lines to an io.Writer, one per line.
type WriterPrinter struct {
	out io.Writer
}

func NewWriterPrinter(out io.Writer) *WriterPrinter {
	return &WriterPrinter{out: out}
}

// Print writes every line followed by a newline. Nothing is written for an
// empty slice.
func (p *WriterPrinter) Print(lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	w := bufio.NewWriter(p.out)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

var _ interfaces.StatementPrinter = (*WriterPrinter)(nil)
