package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"invoicegen/services"
	"invoicegen/templates"
)

// HandleBillTotals recomputes the totals block from the form as it stands.
// Nothing is saved.
func HandleBillTotals() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d, _, err := readBillForm(e.Request)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		t := services.ComputeTotals(d.Items, d.Discount, services.ParseInvoiceType(string(d.InvoiceType)))
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.BillTotals(totalsView(t)).Render(e.Request.Context(), e.Response)
	}
}
