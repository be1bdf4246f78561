package templates

import (
	"context"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// TotalsView is the formatted totals block shared by the form and preview.
type TotalsView struct {
	IsTax          bool
	HasDiscount    bool
	Subtotal       string
	DiscountLabel  string
	DiscountAmount string
	AfterDiscount  string
	CGSTLabel      string
	CGSTAmount     string
	SGSTLabel      string
	SGSTAmount     string
	TotalGST       string
	GrandTotal     string
	AmountInWords  string
}

// BillTotals renders the totals table. The form polls /bills/totals and
// swaps this fragment into #bill-totals.
func BillTotals(t TotalsView) templ.Component {
	return component(func(ctx context.Context, b *templruntime.Buffer) error {
		writeTotals(b, t)
		return nil
	})
}

func writeTotals(b *templruntime.Buffer, t TotalsView) {
	row := func(label, value string, strong bool) {
		if strong {
			b.WriteString(`<tr><th class="num">` + esc(label) + `</th><th class="num">` + esc(value) + `</th></tr>`)
			return
		}
		b.WriteString(`<tr><td class="num">` + esc(label) + `</td><td class="num">` + esc(value) + `</td></tr>`)
	}

	b.WriteString(`<table class="totals" id="totals-table">`)
	row("Subtotal", t.Subtotal, false)
	if t.HasDiscount {
		row(t.DiscountLabel, "- "+t.DiscountAmount, false)
		row("Subtotal After Discount", t.AfterDiscount, false)
	}
	if t.IsTax {
		row(t.CGSTLabel, t.CGSTAmount, false)
		row(t.SGSTLabel, t.SGSTAmount, false)
		row("Total GST", t.TotalGST, false)
	}
	row("Grand Total", t.GrandTotal, true)
	b.WriteString(`</table>`)
	b.WriteString(`<p class="amount-words"><em>Amount Chargeable (in words): ` + esc(t.AmountInWords) + `</em></p>`)
}
