package renderer

import (
	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
)

// WithdrawalSale is a proposed sale with its expected proceeds and tax.
type WithdrawalSale struct {
	capgains.RealizedGain
	Proceeds capgains.Money // Proceeds before tax.
	Tax      capgains.Money // Tax due on the realized gain, zero for a loss.
}

// Withdrawal is a plan of sales raising cash after capital gains tax.
type Withdrawal struct {
	Date      date.Date
	Target    capgains.Money // Target is the net cash requested.
	Rate      capgains.Rate  // Rate of the capital gains tax.
	Sales     []WithdrawalSale
	Gross     capgains.Money // Gross proceeds of all the sales.
	Gain      capgains.Money // Gain realized by all the sales.
	Tax       capgains.Money // Tax due on all the sales.
	Net       capgains.Money // Net is the cash left once the tax is paid.
	Shortfall capgains.Money // Shortfall is what the sales could not raise.
}

// NewWithdrawal summarizes the proposed sales, given with the gain they
// realize, for a net withdrawal of target on a day.
func NewWithdrawal(on date.Date, proposed []capgains.RealizedGain, target capgains.Money, tax capgains.Rate) *Withdrawal {
	zero := capgains.M(0, target.Currency())
	w := &Withdrawal{
		Date:      on,
		Target:    target,
		Rate:      tax,
		Gross:     zero,
		Gain:      zero,
		Tax:       zero,
		Shortfall: zero,
	}
	for _, g := range proposed {
		sale := WithdrawalSale{RealizedGain: g, Proceeds: g.Sale.Value(), Tax: zero}
		if g.CapitalGains.IsPositive() {
			sale.Tax = g.CapitalGains.MulRate(tax)
		}
		w.Sales = append(w.Sales, sale)
		w.Gross = w.Gross.Add(sale.Proceeds)
		w.Gain = w.Gain.Add(g.CapitalGains)
		w.Tax = w.Tax.Add(sale.Tax)
	}
	w.Net = w.Gross.Sub(w.Tax)
	// divisions leave dust far below a cent
	if shortfall := target.Sub(w.Net).Round(2); shortfall.IsPositive() {
		w.Shortfall = shortfall
	}
	return w
}

// SalesMarkdown renders the withdrawal plan to a markdown string.
func SalesMarkdown(w *Withdrawal) string {
	partials := map[string]string{
		"withdrawal_title":   "withdrawal_title.md",
		"withdrawal_sales":   "withdrawal_sales.md",
		"withdrawal_summary": "withdrawal_summary.md",
	}
	return renderTemplate("withdrawal", "withdrawal.md", partials, w)
}
