package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// FormItem is one editable line item row. Numbers are kept as the user typed
// them so a re-rendered form shows exactly what was submitted.
type FormItem struct {
	ID           string
	Description  string
	RoomType     string
	Rooms        string
	Rate         string
	Nights       string
	HSNSAC       string
	GSTRate      string
	CustomFields string
	Amount       string
}

type BillFormData struct {
	Action string
	IsEdit bool
	BillID string

	InvoiceType string

	CompanyName    string
	CompanyAddress string
	CompanyGSTIN   string
	CompanyEmail   string
	CompanyMobile  string

	LetterHead     string
	DocumentTitle  string
	DocumentType   string
	DocumentNumber string
	Dated          string
	Arrival        string
	Departure      string
	PlaceOfSupply  string
	TermsOfPayment string

	ClientBillTo      string
	ClientCompanyName string
	ClientAddress     string
	ClientGSTNumber   string
	ClientPhone       string
	ClientEmail       string

	Notes    string
	Terms    string
	Discount string

	Items  []FormItem
	Totals TotalsView
	Errors map[string]string
	// FormError is shown above the form when a save fails outright.
	FormError string

	// Suggestions offered through <datalist>.
	GSTOptions []string
	RoomTypes  []string
	States     []string
}

const itemRowScript = `
function addItemRow(){var body=document.getElementById('item-rows');var rows=body.querySelectorAll('tr.item-row');var tpl=rows[rows.length-1].cloneNode(true);tpl.querySelectorAll('input,textarea').forEach(function(el){if(el.name==='item_id'||el.name==='item_description'||el.name==='item_room_type'||el.name==='item_custom_fields'){el.value=''}});tpl.querySelector('.item-amount').textContent='';body.appendChild(tpl);htmx.process(tpl);htmx.trigger('#bill-form','input')}
function removeItemRow(btn){var body=document.getElementById('item-rows');if(body.querySelectorAll('tr.item-row').length<=1){return}btn.closest('tr').remove();htmx.trigger('#bill-form','input')}
`

// BillFormContent is the create/edit form.
func BillFormContent(data BillFormData) templ.Component {
	return component(func(ctx context.Context, b *templruntime.Buffer) error {
		errs := data.Errors
		heading := "New Bill"
		if data.IsEdit {
			heading = "Edit " + data.DocumentNumber
		}

		b.WriteString(`<h1>` + esc(heading) + `</h1>`)
		if data.FormError != "" {
			b.WriteString(`<p class="field-error">` + esc(data.FormError) + `</p>`)
		}
		if len(errs) > 0 {
			b.WriteString(`<p class="field-error">Please correct the highlighted fields.</p>`)
		}
		b.WriteString(`<form id="bill-form" method="post" action="` + esc(data.Action) + `" hx-post="` + esc(data.Action) + `" hx-target="#main-content">`)

		b.WriteString(`<fieldset><legend>Document</legend><div class="grid">`)
		b.WriteString(`<label class="field"><span>Invoice Type</span><select name="invoice_type">`)
		for _, opt := range []struct{ value, label string }{
			{"invoice", "Invoice (no GST)"},
			{"tax-invoice", "Tax Invoice (CGST + SGST)"},
		} {
			sel := ""
			if opt.value == data.InvoiceType {
				sel = " selected"
			}
			b.WriteString(`<option value="` + opt.value + `"` + sel + `>` + opt.label + `</option>`)
		}
		b.WriteString(`</select>`)
		fieldError(b, "invoice_type", errs)
		b.WriteString(`</label>`)
		input(b, "Document Title", "document_title", "text", data.DocumentTitle, errs)
		input(b, "Document Type", "document_type", "text", data.DocumentType, errs)
		input(b, "Document Number", "document_number", "text", data.DocumentNumber, errs)
		input(b, "Dated", "dated", "date", data.Dated, errs)
		input(b, "Arrival", "arrival", "date", data.Arrival, errs)
		input(b, "Departure", "departure", "date", data.Departure, errs)
		b.WriteString(`<label class="field"><span>Place of Supply</span><input type="text" name="place_of_supply" list="state-options" value="` + esc(data.PlaceOfSupply) + `">`)
		fieldError(b, "place_of_supply", errs)
		b.WriteString(`</label>`)
		input(b, "Terms of Payment", "terms_of_payment", "text", data.TermsOfPayment, errs)
		input(b, "Letter Head", "letter_head", "text", data.LetterHead, errs)
		b.WriteString(`</div></fieldset>`)

		b.WriteString(`<fieldset><legend>Company</legend><div class="grid">`)
		input(b, "Name", "company_name", "text", data.CompanyName, errs)
		input(b, "GSTIN", "company_gstin", "text", data.CompanyGSTIN, errs)
		input(b, "Email", "company_email", "email", data.CompanyEmail, errs)
		input(b, "Mobile", "company_mobile", "text", data.CompanyMobile, errs)
		textarea(b, "Address", "company_address", data.CompanyAddress, 2, errs)
		b.WriteString(`</div></fieldset>`)

		b.WriteString(`<fieldset><legend>Bill To</legend><div class="grid">`)
		input(b, "Name", "client_bill_to", "text", data.ClientBillTo, errs)
		input(b, "Company", "client_company_name", "text", data.ClientCompanyName, errs)
		input(b, "GST Number", "client_gst_number", "text", data.ClientGSTNumber, errs)
		input(b, "Phone", "client_phone_number", "text", data.ClientPhone, errs)
		input(b, "Email", "client_email", "email", data.ClientEmail, errs)
		textarea(b, "Address", "client_address", data.ClientAddress, 2, errs)
		b.WriteString(`</div></fieldset>`)

		b.WriteString(`<fieldset><legend>Items</legend><table><thead><tr>`)
		b.WriteString(`<th>Description</th><th>Room Type</th><th>Rooms</th><th>Rate</th><th>Nights</th><th>HSN/SAC</th><th>GST %</th><th>Custom Fields</th><th class="num">Amount</th><th></th>`)
		b.WriteString(`</tr></thead><tbody id="item-rows">`)
		for i, it := range data.Items {
			writeItemRow(b, i, it, errs)
		}
		b.WriteString(`</tbody></table>`)
		b.WriteString(`<button type="button" class="btn" onclick="addItemRow()">+ Add Item</button></fieldset>`)

		b.WriteString(`<fieldset><legend>Totals</legend><div class="grid">`)
		input(b, "Discount %", "discount", "number", data.Discount, errs)
		b.WriteString(`</div><div id="bill-totals" hx-post="/bills/totals" hx-include="#bill-form" hx-trigger="input from:#bill-form delay:300ms" hx-target="this" hx-swap="innerHTML">`)
		writeTotals(b, data.Totals)
		b.WriteString(`</div></fieldset>`)

		b.WriteString(`<fieldset><legend>Notes &amp; Terms</legend>`)
		textarea(b, "Notes", "notes", data.Notes, 3, errs)
		textarea(b, "Terms & Conditions", "terms", data.Terms, 3, errs)
		b.WriteString(`</fieldset>`)

		b.WriteString(`<button type="submit" class="btn primary">Save</button> `)
		cancel := "/bills"
		if data.IsEdit {
			cancel = "/bills/" + data.BillID
		}
		b.WriteString(`<a class="btn" href="` + esc(cancel) + `">Cancel</a>`)
		writeDatalist(b, "state-options", data.States)
		writeDatalist(b, "room-type-options", data.RoomTypes)
		writeDatalist(b, "gst-options", data.GSTOptions)
		b.WriteString(`</form><script>` + itemRowScript + `</script>`)
		return nil
	})
}

func writeItemRow(b *templruntime.Buffer, i int, it FormItem, errs map[string]string) {
	cell := func(name, typ, value string) {
		b.WriteString(`<td><input type="` + typ + `" name="` + name + `" value="` + esc(value) + `"`)
		if typ == "number" {
			b.WriteString(` step="any" min="0"`)
		}
		b.WriteString(`></td>`)
	}

	b.WriteString(`<tr class="item-row">`)
	b.WriteString(`<td><input type="hidden" name="item_id" value="` + esc(it.ID) + `">`)
	b.WriteString(`<input type="text" name="item_description" value="` + esc(it.Description) + `"></td>`)
	b.WriteString(`<td><input type="text" name="item_room_type" list="room-type-options" value="` + esc(it.RoomType) + `"></td>`)
	cell("item_rooms", "number", it.Rooms)
	cell("item_rate", "number", it.Rate)
	cell("item_nights", "number", it.Nights)
	cell("item_hsn_sac", "text", it.HSNSAC)
	b.WriteString(`<td><input type="number" step="any" name="item_gst_rate" list="gst-options" value="` + esc(it.GSTRate) + `">`)
	fieldError(b, "items."+strconv.Itoa(i)+".gst_rate", errs)
	b.WriteString(`</td>`)
	b.WriteString(`<td><textarea name="item_custom_fields" rows="2" placeholder="Name: Value">` + esc(it.CustomFields) + `</textarea></td>`)
	b.WriteString(`<td class="num item-amount">` + esc(it.Amount) + `</td>`)
	b.WriteString(`<td><button type="button" class="btn danger" onclick="removeItemRow(this)">&times;</button></td>`)
	b.WriteString(`</tr>`)
}

func writeDatalist(b *templruntime.Buffer, id string, options []string) {
	if len(options) == 0 {
		return
	}
	b.WriteString(`<datalist id="` + id + `">`)
	for _, opt := range options {
		b.WriteString(`<option value="` + esc(opt) + `"></option>`)
	}
	b.WriteString(`</datalist>`)
}

func BillFormPage(data BillFormData) templ.Component {
	title := "New Bill"
	if data.IsEdit {
		title = "Edit " + data.DocumentNumber
	}
	return Page(title, BillFormContent(data))
}
