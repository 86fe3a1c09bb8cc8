// Package view renders bills for the terminal.
package view

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/shopspring/decimal"
)

const rawDateLayout = "2006-01-02"

// SortByDateDesc returns a copy of bills, most recent first. Bills whose
// stored date cannot be parsed go last, in their original order.
func SortByDateDesc(bills []models.DisplayBill) []models.DisplayBill {
	out := slices.Clone(bills)
	slices.SortStableFunc(out, func(a, b models.DisplayBill) int {
		ta, errA := time.Parse(rawDateLayout, a.RawDate)
		tb, errB := time.Parse(rawDateLayout, b.RawDate)
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return tb.Compare(ta)
	})
	return out
}

// Total sums the amounts of bills without float drift.
func Total(bills []models.DisplayBill) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bills {
		sum = sum.Add(decimal.NewFromFloat(b.Amount))
	}
	return sum
}

// FormatAmount renders an amount with two decimals and the euro sign.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

var headers = map[string][]string{
	"fr": {"#", "Type", "Nom", "Date", "Montant", "Statut", "Justificatif"},
	"en": {"#", "Type", "Name", "Date", "Amount", "Status", "Receipt"},
}

func header(locale string) []string {
	if h, ok := headers[locale]; ok {
		return h
	}
	return headers["fr"]
}

// WriteTable prints bills as an aligned table followed by their total. Row
// numbers start at 1 and follow the order of bills.
func WriteTable(w io.Writer, bills []models.DisplayBill, locale string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	h := header(locale)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", h[0], h[1], h[2], h[3], h[4], h[5], h[6])

	for i, b := range bills {
		receipt := "-"
		if b.FileName != nil && *b.FileName != "" {
			receipt = *b.FileName
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, b.Type, b.Name, b.Date, FormatAmount(decimal.NewFromFloat(b.Amount)), b.StatusLabel, receipt)
	}

	fmt.Fprintf(tw, "\t\t\t\t%s\t\t\n", FormatAmount(Total(bills)))
	return tw.Flush()
}
