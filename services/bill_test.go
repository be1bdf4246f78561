package services

import (
	"errors"
	"math"
	"testing"
)

func TestAssembleBill(t *testing.T) {
	d := sampleDraft()
	d.Items = append(d.Items,
		LineItem{ID: "a", Description: "dup id", Rooms: -1, Rate: math.NaN(), Nights: 2},
		LineItem{Description: "no id", Rooms: 1, Rate: 100, Nights: 1},
	)

	b := AssembleBill(d)

	ids := map[string]bool{}
	for _, it := range b.Items {
		if it.ID == "" {
			t.Fatal("item without id")
		}
		if ids[it.ID] {
			t.Fatalf("duplicate id %q", it.ID)
		}
		ids[it.ID] = true
	}
	if b.Items[0].ID != "a" || b.Items[1].ID != "b" {
		t.Errorf("existing ids should be kept, got %q %q", b.Items[0].ID, b.Items[1].ID)
	}
	if b.Items[2].Rooms != 0 || b.Items[2].Rate != 0 {
		t.Errorf("bad quantities not coerced: %+v", b.Items[2])
	}
	if d.Items[2].ID != "a" || d.Items[2].Rooms != -1 {
		t.Error("AssembleBill mutated the caller's items")
	}

	totals := ComputeTotals(b.Items, b.Discount, b.InvoiceType)
	if b.TotalAmount != totals.Subtotal || b.GrandTotal != totals.GrandTotal || b.TotalGSTAmount != totals.TotalGSTAmount {
		t.Errorf("snapshot %v/%v/%v does not match totals %+v", b.TotalAmount, b.TotalGSTAmount, b.GrandTotal, totals)
	}
}

func TestAssembleBill_PlainStoresNoGST(t *testing.T) {
	d := sampleDraft()
	d.InvoiceType = "something-else"
	b := AssembleBill(d)
	if b.InvoiceType != InvoiceTypePlain {
		t.Errorf("InvoiceType = %q, want plain", b.InvoiceType)
	}
	if b.TotalGSTAmount != 0 {
		t.Errorf("TotalGSTAmount = %v, want 0", b.TotalGSTAmount)
	}
	assertAmount(t, "GrandTotal", b.GrandTotal, 2700)
}

func TestValidateDraft(t *testing.T) {
	if err := ValidateDraft(sampleDraft()); err != nil {
		t.Fatalf("sample draft should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"missing title", func(d *Draft) { d.Meta.Title = "" }, "document_title"},
		{"missing number", func(d *Draft) { d.Meta.Number = "" }, "document_number"},
		{"missing company", func(d *Draft) { d.Company.Name = "" }, "company_name"},
		{"missing bill to", func(d *Draft) { d.Client.BillTo = "" }, "client_bill_to"},
		{"bad type", func(d *Draft) { d.InvoiceType = "proforma" }, "invoice_type"},
		{"negative discount", func(d *Draft) { d.Discount = -1 }, "discount"},
		{"discount over 100", func(d *Draft) { d.Discount = 120 }, "discount"},
		{"bad client email", func(d *Draft) { d.Client.Email = "not-an-email" }, "client_email"},
		{"bad gstin", func(d *Draft) { d.Company.GSTIN = "30ACEPL2168" }, "company_gstin"},
		{"bad client gstin", func(d *Draft) { d.Client.GSTNumber = "xx" }, "client_gst_number"},
		{"item gst rate", func(d *Draft) { d.Items[1].GSTRate = 150 }, "items.1.gst_rate"},
		{"unparseable date", func(d *Draft) { d.Meta.Dated = "next tuesday" }, "dated"},
		{"impossible date", func(d *Draft) { d.Meta.Arrival = "2025-02-30" }, "arrival"},
		{"display form not normalized", func(d *Draft) { d.Meta.Departure = "23/06/2025" }, "departure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDraft()
			tt.mutate(&d)

			err := ValidateDraft(d)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			fields := ve.FieldErrors()
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected error on %q, got %v", tt.field, fields)
			}
		})
	}
}

func TestValidateDraft_OptionalFieldsMayBeBlank(t *testing.T) {
	d := sampleDraft()
	d.Company.GSTIN = ""
	d.Company.Email = ""
	d.Client = Client{BillTo: "Walk-in guest"}
	d.Meta.Arrival = ""
	d.Meta.Departure = ""
	if err := ValidateDraft(d); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"30ACEPL2168C1Z8", true},
		{"27AAPFU0939F1ZV", true},
		{"30acepl2168c1z8", false},
		{"30ACEPL2168C1X8", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateGSTIN(tt.in); got != tt.want {
			t.Errorf("ValidateGSTIN(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
