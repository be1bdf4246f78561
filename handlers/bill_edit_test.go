package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicegen/services"
	"invoicegen/testhelpers"
)

func TestHandleBillEdit_RendersStoredValues(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bill := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Rahul Menon", "QTN-24-25-004"))

	handler := HandleBillEdit(app)

	req := httptest.NewRequest(http.MethodGet, "/bills/"+bill.ID+"/edit", nil)
	req.SetPathValue("id", bill.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Edit QTN-24-25-004",
		`action="/bills/`+bill.ID+`/save"`,
		`value="Rahul Menon"`,
		`value="1800"`,
		`value="14"`,
		`value="`+bill.Items[0].ID+`"`,
		"₹25,200.00",
	)
}

func TestHandleBillEdit_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBillEdit(app)

	req := httptest.NewRequest(http.MethodGet, "/bills/missing/edit", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Bill not found")
}

func TestHandleBillSave_Updates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bill := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Rahul Menon", "QTN-24-25-004"))

	handler := HandleBillSave(app, testConfig())

	req := newFormRequest("/bills/"+bill.ID+"/save", testBillForm())
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", bill.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/bills/"+bill.ID)

	updated, err := services.NewBillStore(app).GetByID(bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Client.BillTo != "Anita Rao" {
		t.Errorf("bill to = %q", updated.Client.BillTo)
	}
	if updated.InvoiceType != services.InvoiceTypeTax {
		t.Errorf("invoice type = %q", updated.InvoiceType)
	}
	if updated.GrandTotal != 15120 {
		t.Errorf("grand total = %v, want 15120", updated.GrandTotal)
	}
}

func TestHandleBillSave_ValidationKeepsEditState(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bill := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Rahul Menon", "QTN-24-25-004"))

	handler := HandleBillSave(app, testConfig())

	form := testBillForm()
	form.Set("document_title", "")
	req := newFormRequest("/bills/"+bill.ID+"/save", form)
	req.SetPathValue("id", bill.ID)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Document title is required",
		`action="/bills/`+bill.ID+`/save"`,
	)

	stored, err := services.NewBillStore(app).GetByID(bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Client.BillTo != "Rahul Menon" {
		t.Errorf("bill should be unchanged, got bill to %q", stored.Client.BillTo)
	}
}

func TestHandleBillSave_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBillSave(app, testConfig())

	req := newFormRequest("/bills/missing/save", testBillForm())
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap none on error toast")
	}
}
