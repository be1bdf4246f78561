package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"invoicegen/config"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newFormRequest builds a url-encoded POST.
func newFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// testBillForm is a valid tax invoice submission: 2 rooms x 2500 x 3
// nights at 12% GST with a 10% discount. Grand total is 15120.
func testBillForm() url.Values {
	return url.Values{
		"invoice_type":     {"tax-invoice"},
		"company_name":     {"PARK GRAND HOSPITALITY"},
		"company_address":  {"Benaulim, South-Goa"},
		"company_gstin":    {"30ACEPL2168C1Z8"},
		"document_title":   {"Invoice"},
		"document_number":  {"INV-25-26-007"},
		"dated":            {"2025-02-08"},
		"arrival":          {"2025-02-10"},
		"departure":        {"2025-02-13"},
		"place_of_supply":  {"Goa"},
		"terms_of_payment": {"On Arrival"},
		"client_bill_to":   {"Anita Rao"},
		"client_email":     {"anita@example.com"},
		"discount":         {"10"},
		"notes":            {"Breakfast included"},

		"item_id":            {""},
		"item_description":   {"Deluxe Room"},
		"item_room_type":     {"Garden View"},
		"item_rooms":         {"2"},
		"item_rate":          {"2500"},
		"item_nights":        {"3"},
		"item_hsn_sac":       {"996311"},
		"item_gst_rate":      {"12"},
		"item_custom_fields": {"Booking Ref: BK-42"},
	}
}

func testConfig() *config.Config {
	return config.Load()
}
