package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
)

// LotsMarkdown renders the residual lots, the purchases still holding units,
// in FIFO order.
//
// If on is not zero, only the lots that can be sold on that day, bought
// strictly before it, are rendered.
func LotsMarkdown(lots []capgains.Transaction, on date.Date) string {
	var b strings.Builder
	if on.IsZero() {
		fmt.Fprint(&b, "# Lots\n\n")
	} else {
		fmt.Fprintf(&b, "# Lots Available on %s\n\n", on)
	}

	var cost capgains.Money
	p := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Symbol | Bought | Amount | Basis | Cost |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|")
	}).Footer(func(w io.Writer) {
		fmt.Fprintf(w, "| **%s** | | | | **%s** |\n", "Total", cost)
	})

	for _, lot := range lots {
		if !on.IsZero() && !lot.Date.Before(on) {
			continue
		}
		p.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			lot.Symbol,
			lot.Date,
			lot.Amount,
			lot.Price,
			lot.Value(),
		)
		cost = cost.Add(lot.Value())
	}
	p.PrintFooter(&b)

	if !p.Printed() {
		fmt.Fprintln(&b, "No lots.")
	}
	return b.String()
}
