package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the structure of a rendered markdown.
type document struct {
	headings   []string
	tables     [][][]string // cells of every row (header included) of every table.
	paragraphs []string
}

// parse parses md as GitHub flavored markdown, the way it is displayed.
func parse(t *testing.T, md string) document {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plainText(n, source))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			doc.paragraphs = append(doc.paragraphs, plainText(n, source))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var table [][]string
			for row := n.FirstChild(); row != nil; row = row.NextSibling() {
				var cells []string
				for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
					cells = append(cells, plainText(cell, source))
				}
				table = append(table, cells)
			}
			doc.tables = append(doc.tables, table)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("failed to walk the markdown: %v", err)
	}
	return doc
}

// plainText returns the text of n, without emphasis.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteString(" ")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func sale(on, symbol string, amount, price, gain float64) capgains.RealizedGain {
	return capgains.RealizedGain{
		Sale:         capgains.NewSell(date.MustParse(on), symbol, capgains.Q(amount), capgains.M(price, "")),
		CapitalGains: capgains.M(gain, ""),
	}
}

func TestGainsMarkdown(t *testing.T) {
	gains := []capgains.RealizedGain{
		sale("2020-03-01", "STK1", 15, 200, 1250),
		sale("2020-06-01", "STK2", 10, 50, -500),
		sale("2021-01-01", "STK1", 5, 300, 1000),
	}
	md := GainsMarkdown(gains, date.Year(2020))
	doc := parse(t, md)

	if diff := cmp.Diff([]string{"Realized Capital Gains, from 2020-01-01 to 2020-12-31"}, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	want := [][][]string{{
		{"Date", "Symbol", "Amount", "Price", "Proceeds", "Gain"},
		{"2020-03-01", "STK1", "15", "200", "3000", "+1250"},
		{"2020-06-01", "STK2", "10", "50", "500", "-500"},
		{"Total", "", "", "", "", "+750"},
	}}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s\n%s", diff, md)
	}
}

func TestGainsMarkdown_NoSales(t *testing.T) {
	doc := parse(t, GainsMarkdown(nil, date.Range{}))
	if diff := cmp.Diff([]string{"Realized Capital Gains, all time"}, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if len(doc.tables) != 0 {
		t.Errorf("got %d tables, want none", len(doc.tables))
	}
	if diff := cmp.Diff([]string{"No sales."}, doc.paragraphs); diff != "" {
		t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
	}
}

func TestYearlyMarkdown(t *testing.T) {
	yearly := capgains.AggregateByYear([]capgains.RealizedGain{
		sale("2021-03-01", "STK1", 1, 1, -200),
		sale("2020-03-01", "STK1", 1, 1, 500),
		sale("2020-06-01", "STK1", 1, 1, 300),
	})
	md := YearlyMarkdown(yearly)
	doc := parse(t, md)

	want := [][][]string{{
		{"Year", "Gain"},
		{"2020", "+800"},
		{"2021", "-200"},
		{"Total", "+600"},
	}}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s\n%s", diff, md)
	}

	empty := parse(t, YearlyMarkdown(capgains.YearlyGains{}))
	if len(empty.tables) != 0 {
		t.Errorf("got %d tables for no gains, want none", len(empty.tables))
	}
}

func TestLotsMarkdown(t *testing.T) {
	lots := []capgains.Transaction{
		capgains.NewBuy(date.MustParse("2020-06-01"), "STK2", capgains.Q(5), capgains.M(200, "")),
		capgains.NewBuy(date.MustParse("2022-01-01"), "STK1", capgains.Q(15), capgains.M(300, "")),
	}

	t.Run("all lots", func(t *testing.T) {
		doc := parse(t, LotsMarkdown(lots, date.Date{}))
		want := [][][]string{{
			{"Symbol", "Bought", "Amount", "Basis", "Cost"},
			{"STK2", "2020-06-01", "5", "200", "1000"},
			{"STK1", "2022-01-01", "15", "300", "4500"},
			{"Total", "", "", "", "5500"},
		}}
		if diff := cmp.Diff(want, doc.tables); diff != "" {
			t.Errorf("tables mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("lots available on a day", func(t *testing.T) {
		doc := parse(t, LotsMarkdown(lots, date.MustParse("2022-01-01")))
		if diff := cmp.Diff([]string{"Lots Available on 2022-01-01"}, doc.headings); diff != "" {
			t.Errorf("headings mismatch (-want +got):\n%s", diff)
		}
		want := [][][]string{{
			{"Symbol", "Bought", "Amount", "Basis", "Cost"},
			{"STK2", "2020-06-01", "5", "200", "1000"},
			{"Total", "", "", "", "1000"},
		}}
		if diff := cmp.Diff(want, doc.tables); diff != "" {
			t.Errorf("tables mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no lots", func(t *testing.T) {
		doc := parse(t, LotsMarkdown(lots, date.MustParse("2020-01-01")))
		if diff := cmp.Diff([]string{"No lots."}, doc.paragraphs); diff != "" {
			t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSalesMarkdown(t *testing.T) {
	proposed := []capgains.RealizedGain{
		sale("2022-01-01", "STK1", 18, 300, 2800),
		sale("2022-01-01", "STK2", 2, 50, -100),
	}

	t.Run("target reached", func(t *testing.T) {
		w := NewWithdrawal(date.MustParse("2022-01-01"), proposed, capgains.M(4100, ""), capgains.R(0.5))
		md := SalesMarkdown(w)
		doc := parse(t, md)

		if diff := cmp.Diff([]string{"Withdrawal of 4100 on 2022-01-01"}, doc.headings); diff != "" {
			t.Errorf("headings mismatch (-want +got):\n%s", diff)
		}
		want := [][][]string{
			{
				{"Symbol", "Amount", "Price", "Proceeds", "Gain", "Tax"},
				{"STK1", "18", "300", "5400", "+2800", "1400"},
				{"STK2", "2", "50", "100", "-100", "0"},
			},
			{
				{"Total", "Amount"},
				{"Gross proceeds", "5500"},
				{"Realized gain", "+2700"},
				{"Tax (50%)", "1400"},
				{"Net", "4100"},
			},
		}
		if diff := cmp.Diff(want, doc.tables); diff != "" {
			t.Errorf("tables mismatch (-want +got):\n%s\n%s", diff, md)
		}
		if len(doc.paragraphs) != 0 {
			t.Errorf("unexpected paragraphs %q", doc.paragraphs)
		}
	})

	t.Run("shortfall", func(t *testing.T) {
		w := NewWithdrawal(date.MustParse("2022-01-01"), proposed, capgains.M(5000, ""), capgains.R(0.5))
		doc := parse(t, SalesMarkdown(w))
		want := []string{"The lots cannot raise the whole amount: 900 short."}
		if diff := cmp.Diff(want, doc.paragraphs); diff != "" {
			t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no sales", func(t *testing.T) {
		w := NewWithdrawal(date.MustParse("2022-01-01"), nil, capgains.M(0, ""), capgains.R(0.5))
		doc := parse(t, SalesMarkdown(w))
		if diff := cmp.Diff([]string{"No sales needed."}, doc.paragraphs); diff != "" {
			t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
		}
	})
}
