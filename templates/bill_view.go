package templates

import (
	"context"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// ViewItem is one printed line item.
type ViewItem struct {
	SINo         string
	Description  string
	RoomType     string
	CustomFields []string
	HSNSAC       string
	Rooms        string
	Rate         string
	Nights       string
	GSTRate      string
	GSTAmount    string
	Amount       string
}

// BillViewData is the printable preview of a saved bill.
type BillViewData struct {
	ID      string
	Heading string
	IsTax   bool

	LetterHead     string
	CompanyName    string
	CompanyAddress string
	CompanyGSTIN   string
	CompanyEmail   string
	CompanyMobile  string

	DocumentNumber string
	DocumentType   string
	Dated          string
	StayDates      string
	PlaceOfSupply  string
	TermsOfPayment string

	ClientLines []string

	Items  []ViewItem
	Totals TotalsView

	Notes         string
	Terms         string
	CompanyFooter string
}

func BillViewContent(data BillViewData) templ.Component {
	return component(func(ctx context.Context, b *templruntime.Buffer) error {
		base := "/bills/" + url.PathEscape(data.ID)

		b.WriteString(`<div class="no-print" style="margin-bottom:1rem;display:flex;gap:.5rem">`)
		b.WriteString(`<a class="btn" href="/bills">&larr; Bills</a>`)
		b.WriteString(`<a class="btn" href="` + esc(base+"/edit") + `">Edit</a>`)
		b.WriteString(`<a class="btn primary" hx-boost="false" href="` + esc(base+"/export/pdf") + `">Download PDF</a>`)
		b.WriteString(`<a class="btn" hx-boost="false" href="` + esc(base+"/export/excel") + `">Download Excel</a>`)
		b.WriteString(`<a class="btn" hx-boost="false" href="` + esc(base+"/export/excel?type=detailed") + `">Detailed Excel</a>`)
		b.WriteString(`<button class="btn" onclick="window.print()">Print</button>`)
		b.WriteString(`<button class="btn danger" hx-delete="` + esc(base) + `" hx-confirm="Delete this bill?">Delete</button>`)
		b.WriteString(`</div>`)

		b.WriteString(`<article class="invoice" id="invoice">`)
		if data.LetterHead != "" {
			b.WriteString(`<p class="muted" style="text-align:center">` + esc(data.LetterHead) + `</p>`)
		}

		b.WriteString(`<div style="display:flex;justify-content:space-between;gap:2rem">`)
		b.WriteString(`<div><h2 style="margin:0">` + esc(data.CompanyName) + `</h2>`)
		b.WriteString(`<p class="muted">` + multiline(data.CompanyAddress))
		for _, l := range []struct{ label, value string }{
			{"GSTIN", data.CompanyGSTIN},
			{"Email", data.CompanyEmail},
			{"Mobile", data.CompanyMobile},
		} {
			if l.value != "" {
				b.WriteString(`<br>` + l.label + `: ` + esc(l.value))
			}
		}
		b.WriteString(`</p></div>`)
		b.WriteString(`<div style="text-align:right"><h2 style="margin:0">` + esc(data.Heading) + `</h2>`)
		b.WriteString(`<p><strong>No: ` + esc(data.DocumentNumber) + `</strong></p></div></div>`)

		b.WriteString(`<div style="display:flex;justify-content:space-between;gap:2rem;margin:1rem 0">`)
		b.WriteString(`<div><div class="muted">BILL TO</div>`)
		for i, line := range data.ClientLines {
			if i == 0 {
				b.WriteString(`<strong>` + esc(line) + `</strong>`)
				continue
			}
			b.WriteString(`<br>` + multiline(line))
		}
		b.WriteString(`</div><table style="width:auto"><tbody>`)
		for _, d := range []struct{ label, value string }{
			{"Dated", data.Dated},
			{"Document Type", data.DocumentType},
			{"Stay", data.StayDates},
			{"Place of Supply", data.PlaceOfSupply},
			{"Terms of Payment", data.TermsOfPayment},
		} {
			if d.value == "" {
				continue
			}
			b.WriteString(`<tr><td class="muted">` + d.label + `</td><td>` + esc(d.value) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table></div>`)

		b.WriteString(`<table><thead><tr><th>SI No</th><th>Description</th><th>HSN/SAC</th><th class="num">Rooms</th><th class="num">Rate</th><th class="num">Nights</th>`)
		if data.IsTax {
			b.WriteString(`<th class="num">GST %</th><th class="num">GST Amt</th>`)
		}
		b.WriteString(`<th class="num">Amount</th></tr></thead><tbody>`)
		for _, it := range data.Items {
			b.WriteString(`<tr><td>` + esc(it.SINo) + `</td><td>` + esc(it.Description))
			if it.RoomType != "" {
				b.WriteString(` <span class="muted">(` + esc(it.RoomType) + `)</span>`)
			}
			for _, cf := range it.CustomFields {
				b.WriteString(`<br><small class="muted">` + esc(cf) + `</small>`)
			}
			b.WriteString(`</td><td>` + esc(it.HSNSAC) + `</td>`)
			b.WriteString(`<td class="num">` + esc(it.Rooms) + `</td><td class="num">` + esc(it.Rate) + `</td><td class="num">` + esc(it.Nights) + `</td>`)
			if data.IsTax {
				b.WriteString(`<td class="num">` + esc(it.GSTRate) + `</td><td class="num">` + esc(it.GSTAmount) + `</td>`)
			}
			b.WriteString(`<td class="num">` + esc(it.Amount) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<div style="display:flex;justify-content:flex-end;margin-top:1rem"><div style="min-width:320px">`)
		writeTotals(b, data.Totals)
		b.WriteString(`</div></div>`)

		if strings.TrimSpace(data.Notes) != "" {
			b.WriteString(`<h4>Notes</h4><p>` + multiline(data.Notes) + `</p>`)
		}
		if strings.TrimSpace(data.Terms) != "" {
			b.WriteString(`<h4>Terms &amp; Conditions</h4><p>` + multiline(data.Terms) + `</p>`)
		}

		b.WriteString(`<div style="text-align:right;margin-top:2rem"><strong>` + esc(data.CompanyFooter) + `</strong>`)
		b.WriteString(`<br><br><br><span class="muted">Authorised Signatory</span></div>`)
		b.WriteString(`<p class="muted" style="text-align:center;margin-top:1.5rem">This is a Computer Generated Invoice</p>`)
		b.WriteString(`</article>`)
		return nil
	})
}

func BillViewPage(data BillViewData) templ.Component {
	return Page(data.Heading+" "+data.DocumentNumber, BillViewContent(data))
}

// NotFoundContent is shown for unknown bill ids.
func NotFoundContent(message string) templ.Component {
	return component(func(ctx context.Context, b *templruntime.Buffer) error {
		b.WriteString(`<section><h1>Not found</h1><p>` + esc(message) + `</p><a class="btn" href="/bills">Back to bills</a></section>`)
		return nil
	})
}

func NotFoundPage(message string) templ.Component {
	return Page("Not found", NotFoundContent(message))
}
