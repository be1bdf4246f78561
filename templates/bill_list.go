package templates

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// BillListItem is one row of the bills table. Amounts are preformatted.
type BillListItem struct {
	ID             string
	DocumentNumber string
	DocumentTitle  string
	TypeLabel      string
	Dated          string
	ClientBillTo   string
	TotalAmount    string
	GrandTotal     string
	Created        string
}

type BillListData struct {
	Bills      []BillListItem
	Query      string
	Start      string
	End        string
	TotalCount int
}

func (d BillListData) exportHref(kind string) string {
	v := url.Values{}
	v.Set("type", kind)
	if d.Query != "" {
		v.Set("q", d.Query)
	}
	if d.Start != "" {
		v.Set("start", d.Start)
	}
	if d.End != "" {
		v.Set("end", d.End)
	}
	return "/bills/export?" + v.Encode()
}

// BillListContent is the list body, swapped in by HTMX when filtering.
func BillListContent(data BillListData) templ.Component {
	return component(func(ctx context.Context, b *templruntime.Buffer) error {
		b.WriteString(`<section id="bill-list">`)
		b.WriteString(`<div style="display:flex;justify-content:space-between;align-items:center">`)
		b.WriteString(`<h1>Bills <small class="muted">(` + strconv.Itoa(data.TotalCount) + `)</small></h1>`)
		b.WriteString(`<a class="btn primary" href="/bills/new">New Bill</a></div>`)

		b.WriteString(`<form class="grid no-print" hx-get="/bills" hx-target="#bill-list" hx-select="#bill-list" hx-swap="outerHTML" hx-push-url="true" hx-trigger="submit, input changed delay:400ms from:input[name='q']">`)
		input(b, "Search client or number", "q", "search", data.Query, nil)
		input(b, "From", "start", "date", data.Start, nil)
		input(b, "To", "end", "date", data.End, nil)
		b.WriteString(`<div class="field"><span>&nbsp;</span><button class="btn" type="submit">Filter</button></div></form>`)

		b.WriteString(`<p class="no-print">Export: `)
		for _, kind := range []struct{ key, label string }{
			{"summary", "Summary"},
			{"itemized", "Itemized"},
			{"detailed", "Detailed"},
			{"comprehensive", "Comprehensive"},
		} {
			b.WriteString(`<a class="btn" hx-boost="false" href="` + esc(data.exportHref(kind.key)) + `">` + kind.label + ` (.xlsx)</a> `)
		}
		b.WriteString(`</p>`)

		if len(data.Bills) == 0 {
			b.WriteString(`<p class="muted">No bills found.</p></section>`)
			return nil
		}

		b.WriteString(`<table><thead><tr><th>Number</th><th>Title</th><th>Type</th><th>Date</th><th>Client</th>`)
		b.WriteString(`<th class="num">Total</th><th class="num">Grand Total</th><th>Created</th><th class="no-print"></th></tr></thead><tbody>`)
		for _, bill := range data.Bills {
			href := "/bills/" + url.PathEscape(bill.ID)
			b.WriteString(`<tr id="bill-` + esc(bill.ID) + `">`)
			b.WriteString(`<td><a href="` + esc(href) + `">` + esc(bill.DocumentNumber) + `</a></td>`)
			b.WriteString(`<td>` + esc(bill.DocumentTitle) + `</td>`)
			b.WriteString(`<td>` + esc(bill.TypeLabel) + `</td>`)
			b.WriteString(`<td>` + esc(bill.Dated) + `</td>`)
			b.WriteString(`<td>` + esc(bill.ClientBillTo) + `</td>`)
			b.WriteString(`<td class="num">` + esc(bill.TotalAmount) + `</td>`)
			b.WriteString(`<td class="num">` + esc(bill.GrandTotal) + `</td>`)
			b.WriteString(`<td>` + esc(bill.Created) + `</td>`)
			b.WriteString(`<td class="no-print"><a class="btn" href="` + esc(href+"/edit") + `">Edit</a> `)
			b.WriteString(`<button class="btn danger" hx-delete="` + esc(href) + `" hx-confirm="Delete this bill?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td>`)
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table></section>`)
		return nil
	})
}

func BillListPage(data BillListData) templ.Component {
	return Page("Bills", BillListContent(data))
}
