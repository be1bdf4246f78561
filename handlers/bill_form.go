package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"invoicegen/services"
	"invoicegen/templates"
)

// itemFields are the repeated inputs of one line item row, in form order.
var itemFields = []string{
	"item_id",
	"item_description",
	"item_room_type",
	"item_rooms",
	"item_rate",
	"item_nights",
	"item_hsn_sac",
	"item_gst_rate",
	"item_custom_fields",
}

// readBillForm parses the bill form. It returns the draft to compute and
// save, and the form state as typed so a rejected submission re-renders
// unchanged. Rows with neither a description nor a rate are dropped.
func readBillForm(r *http.Request) (services.Draft, templates.BillFormData, error) {
	if err := r.ParseForm(); err != nil {
		return services.Draft{}, templates.BillFormData{}, err
	}
	field := func(name string) string {
		return strings.TrimSpace(r.FormValue(name))
	}

	d := services.Draft{
		InvoiceType: services.InvoiceType(field("invoice_type")),
		Company: services.Company{
			Name:    field("company_name"),
			Address: field("company_address"),
			GSTIN:   strings.ToUpper(field("company_gstin")),
			Email:   field("company_email"),
			Mobile:  field("company_mobile"),
		},
		Meta: services.DocumentMeta{
			LetterHead:     field("letter_head"),
			Title:          field("document_title"),
			DocumentType:   field("document_type"),
			Number:         field("document_number"),
			Dated:          services.NormalizeDate(field("dated")),
			Arrival:        services.NormalizeDate(field("arrival")),
			Departure:      services.NormalizeDate(field("departure")),
			PlaceOfSupply:  field("place_of_supply"),
			TermsOfPayment: field("terms_of_payment"),
		},
		Client: services.Client{
			BillTo:      field("client_bill_to"),
			CompanyName: field("client_company_name"),
			Address:     field("client_address"),
			GSTNumber:   strings.ToUpper(field("client_gst_number")),
			Phone:       field("client_phone_number"),
			Email:       field("client_email"),
		},
		Notes:    field("notes"),
		Terms:    field("terms"),
		Discount: services.ParseAmount(field("discount")),
	}

	rows := 0
	for _, name := range itemFields {
		if n := len(r.Form[name]); n > rows {
			rows = n
		}
	}

	var formItems []templates.FormItem
	for i := 0; i < rows; i++ {
		at := func(name string) string {
			values := r.Form[name]
			if i < len(values) {
				return strings.TrimSpace(values[i])
			}
			return ""
		}

		fi := templates.FormItem{
			ID:           at("item_id"),
			Description:  at("item_description"),
			RoomType:     at("item_room_type"),
			Rooms:        at("item_rooms"),
			Rate:         at("item_rate"),
			Nights:       at("item_nights"),
			HSNSAC:       at("item_hsn_sac"),
			GSTRate:      at("item_gst_rate"),
			CustomFields: at("item_custom_fields"),
		}
		if fi.Description == "" && fi.Rate == "" {
			continue
		}

		d.Items = append(d.Items, services.LineItem{
			ID:           fi.ID,
			Description:  fi.Description,
			RoomType:     fi.RoomType,
			Rooms:        services.ParseAmount(fi.Rooms),
			Rate:         services.ParseAmount(fi.Rate),
			Nights:       services.ParseAmount(fi.Nights),
			HSNSAC:       fi.HSNSAC,
			GSTRate:      services.ParseAmount(fi.GSTRate),
			CustomFields: services.ParseCustomFields(fi.CustomFields),
		})
		formItems = append(formItems, fi)
	}

	view := formDataFromDraft(d)
	view.InvoiceType = field("invoice_type")
	view.Dated = field("dated")
	view.Arrival = field("arrival")
	view.Departure = field("departure")
	view.Discount = field("discount")
	totals := services.ComputeTotals(d.Items, d.Discount, services.ParseInvoiceType(string(d.InvoiceType)))
	for i := range formItems {
		formItems[i].Amount = services.FormatINR(totals.Items[i].ItemTotal)
	}
	view.Items = formItems

	return d, view, nil
}

// formDataFromDraft builds the form state for a stored or default draft.
func formDataFromDraft(d services.Draft) templates.BillFormData {
	totals := services.ComputeTotals(d.Items, d.Discount, services.ParseInvoiceType(string(d.InvoiceType)))

	items := make([]templates.FormItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = templates.FormItem{
			ID:           it.ID,
			Description:  it.Description,
			RoomType:     it.RoomType,
			Rooms:        formatNumber(it.Rooms),
			Rate:         formatNumber(it.Rate),
			Nights:       formatNumber(it.Nights),
			HSNSAC:       it.HSNSAC,
			GSTRate:      formatNumber(it.GSTRate),
			CustomFields: services.FormatCustomFields(it.CustomFields),
			Amount:       services.FormatINR(totals.Items[i].ItemTotal),
		}
	}

	return templates.BillFormData{
		InvoiceType: string(services.ParseInvoiceType(string(d.InvoiceType))),

		CompanyName:    d.Company.Name,
		CompanyAddress: d.Company.Address,
		CompanyGSTIN:   d.Company.GSTIN,
		CompanyEmail:   d.Company.Email,
		CompanyMobile:  d.Company.Mobile,

		LetterHead:     d.Meta.LetterHead,
		DocumentTitle:  d.Meta.Title,
		DocumentType:   d.Meta.DocumentType,
		DocumentNumber: d.Meta.Number,
		Dated:          d.Meta.Dated,
		Arrival:        d.Meta.Arrival,
		Departure:      d.Meta.Departure,
		PlaceOfSupply:  d.Meta.PlaceOfSupply,
		TermsOfPayment: d.Meta.TermsOfPayment,

		ClientBillTo:      d.Client.BillTo,
		ClientCompanyName: d.Client.CompanyName,
		ClientAddress:     d.Client.Address,
		ClientGSTNumber:   d.Client.GSTNumber,
		ClientPhone:       d.Client.Phone,
		ClientEmail:       d.Client.Email,

		Notes:    d.Notes,
		Terms:    d.Terms,
		Discount: formatNumber(d.Discount),

		Items:  items,
		Totals: totalsView(totals),

		GSTOptions: gstOptions(),
		RoomTypes:  services.RoomTypeOptions,
		States:     services.IndianStates,
	}
}

func gstOptions() []string {
	out := make([]string, len(services.GSTRateOptions))
	for i, r := range services.GSTRateOptions {
		out[i] = formatNumber(r)
	}
	return out
}

// ensureItemRow keeps at least one editable row in the form so the client
// script has a row to clone.
func ensureItemRow(view *templates.BillFormData, blank services.LineItem) {
	if len(view.Items) > 0 {
		return
	}
	view.Items = []templates.FormItem{{
		Rooms:   formatNumber(blank.Rooms),
		Nights:  formatNumber(blank.Nights),
		HSNSAC:  blank.HSNSAC,
		GSTRate: formatNumber(blank.GSTRate),
	}}
}

func totalsView(t services.Totals) templates.TotalsView {
	halfRate := services.FormatPercent(services.EffectiveGSTRate(t) / 2)
	return templates.TotalsView{
		IsTax:          t.InvoiceType.IsTax(),
		HasDiscount:    t.DiscountPercent > 0,
		Subtotal:       services.FormatINR(t.Subtotal),
		DiscountLabel:  "Discount (" + services.FormatPercent(t.DiscountPercent) + ")",
		DiscountAmount: services.FormatINR(t.DiscountAmount),
		AfterDiscount:  services.FormatINR(t.SubtotalAfterDiscount),
		CGSTLabel:      "CGST @ " + halfRate,
		CGSTAmount:     services.FormatINR(t.TotalCGSTAmount),
		SGSTLabel:      "SGST @ " + halfRate,
		SGSTAmount:     services.FormatINR(t.TotalSGSTAmount),
		TotalGST:       services.FormatINR(t.TotalGSTAmount),
		GrandTotal:     services.FormatINR(t.GrandTotal),
		AmountInWords:  services.AmountInWords(t.GrandTotal),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(services.CoerceNumber(v), 'f', -1, 64)
}
