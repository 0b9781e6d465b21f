package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
)

// GainsMarkdown renders the gains realized by the sales within period, one
// row per sale, in history order.
func GainsMarkdown(gains []capgains.RealizedGain, period date.Range) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Realized Capital Gains, %s\n\n", period)

	var total capgains.Money
	p := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Date | Symbol | Amount | Price | Proceeds | Gain |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
	}).Footer(func(w io.Writer) {
		fmt.Fprintf(w, "| **%s** | | | | | **%s** |\n", "Total", total.SignedString())
	})

	for _, g := range gains {
		sale := g.Sale
		if !period.Contains(sale.Date) {
			continue
		}
		p.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			sale.Date,
			sale.Symbol,
			sale.Amount,
			sale.Price,
			sale.Value(),
			g.CapitalGains.SignedString(),
		)
		total = total.Add(g.CapitalGains)
	}
	p.PrintFooter(&b)

	if !p.Printed() {
		fmt.Fprintln(&b, "No sales.")
	}
	return b.String()
}

// YearlyMarkdown renders realized gains by calendar year, in ascending order.
func YearlyMarkdown(yearly capgains.YearlyGains) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Realized Capital Gains by Year\n\n")

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Year | Gain |")
		fmt.Fprintln(w, "|:---|---:|")
		for _, year := range yearly.Years() {
			fmt.Fprintf(w, "| %d | %s |\n", year, yearly[year].SignedString())
		}
		fmt.Fprintf(w, "| **%s** | **%s** |\n", "Total", yearly.Total().SignedString())
		return len(yearly) > 0
	})
	if len(yearly) == 0 {
		fmt.Fprintln(&b, "No sales.")
	}
	return b.String()
}
