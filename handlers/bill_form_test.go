package handlers

import (
	"math"
	"net/url"
	"testing"

	"invoicegen/services"
)

func TestReadBillForm_ParsesDraft(t *testing.T) {
	form := testBillForm()
	form.Set("company_gstin", "30aceps2168c1z8")
	form.Set("dated", "08/02/2025")

	d, view, err := readBillForm(newFormRequest("/bills", form))
	if err != nil {
		t.Fatalf("readBillForm: %v", err)
	}

	if d.InvoiceType != services.InvoiceTypeTax {
		t.Errorf("invoice type = %q", d.InvoiceType)
	}
	if d.Company.GSTIN != "30ACEPS2168C1Z8" {
		t.Errorf("GSTIN not upper-cased: %q", d.Company.GSTIN)
	}
	if d.Meta.Dated != "2025-02-08" {
		t.Errorf("dated = %q, want 2025-02-08", d.Meta.Dated)
	}
	if view.Dated != "08/02/2025" {
		t.Errorf("form should keep the typed date, got %q", view.Dated)
	}
	if d.Discount != 10 {
		t.Errorf("discount = %v", d.Discount)
	}

	if len(d.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(d.Items))
	}
	it := d.Items[0]
	if it.Description != "Deluxe Room" || it.RoomType != "Garden View" {
		t.Errorf("unexpected item text: %+v", it)
	}
	if it.Rooms != 2 || it.Rate != 2500 || it.Nights != 3 || it.GSTRate != 12 {
		t.Errorf("unexpected item numbers: %+v", it)
	}
	if len(it.CustomFields) != 1 || it.CustomFields[0].Name != "Booking Ref" || it.CustomFields[0].Value != "BK-42" {
		t.Errorf("unexpected custom fields: %+v", it.CustomFields)
	}

	if len(view.Items) != 1 || view.Items[0].Amount != "₹15,000.00" {
		t.Errorf("unexpected form items: %+v", view.Items)
	}
	if view.Totals.GrandTotal != "₹15,120.00" {
		t.Errorf("grand total = %q", view.Totals.GrandTotal)
	}
}

func TestReadBillForm_MultipleRowsAndBlankRows(t *testing.T) {
	form := testBillForm()
	form["item_id"] = []string{"a", "", ""}
	form["item_description"] = []string{"Room", "", "Dinner"}
	form["item_room_type"] = []string{"", "", ""}
	form["item_rooms"] = []string{"1", "1", "2"}
	form["item_rate"] = []string{"1000", "", "abc"}
	form["item_nights"] = []string{"2", "1", "1"}
	form["item_hsn_sac"] = []string{"996311", "996311", "996331"}
	form["item_gst_rate"] = []string{"12", "12", "5"}
	form["item_custom_fields"] = []string{"", "", ""}

	d, view, err := readBillForm(newFormRequest("/bills", form))
	if err != nil {
		t.Fatalf("readBillForm: %v", err)
	}

	if len(d.Items) != 2 {
		t.Fatalf("expected blank row to be dropped, got %d items", len(d.Items))
	}
	if d.Items[0].ID != "a" {
		t.Errorf("item id not kept: %q", d.Items[0].ID)
	}
	if d.Items[1].Description != "Dinner" || d.Items[1].Rate != 0 {
		t.Errorf("malformed rate should parse as zero: %+v", d.Items[1])
	}
	if len(view.Items) != 2 || view.Items[1].Rate != "abc" {
		t.Errorf("form should keep typed values: %+v", view.Items)
	}
}

func TestReadBillForm_ShortRepeatedFields(t *testing.T) {
	form := url.Values{
		"invoice_type":     {"invoice"},
		"item_description": {"Room", "Extra bed"},
		"item_rate":        {"1500"},
	}

	d, _, err := readBillForm(newFormRequest("/bills", form))
	if err != nil {
		t.Fatalf("readBillForm: %v", err)
	}
	if len(d.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(d.Items))
	}
	if d.Items[1].Rate != 0 || d.Items[1].Rooms != 0 {
		t.Errorf("missing values should be zero: %+v", d.Items[1])
	}
}

func TestTotalsView(t *testing.T) {
	items := []services.LineItem{
		{Rooms: 1, Rate: 1000, Nights: 1, GSTRate: 12},
		{Rooms: 1, Rate: 1000, Nights: 1, GSTRate: 18},
	}

	tests := []struct {
		name        string
		invoiceType services.InvoiceType
		discount    float64
		check       func(t *testing.T, v map[string]string, isTax, hasDiscount bool)
	}{
		{
			name:        "plain without discount",
			invoiceType: services.InvoiceTypePlain,
			check: func(t *testing.T, v map[string]string, isTax, hasDiscount bool) {
				if isTax || hasDiscount {
					t.Errorf("isTax=%v hasDiscount=%v", isTax, hasDiscount)
				}
				if v["grand"] != "₹2,000.00" {
					t.Errorf("grand = %q", v["grand"])
				}
			},
		},
		{
			name:        "tax with mixed rates",
			invoiceType: services.InvoiceTypeTax,
			discount:    50,
			check: func(t *testing.T, v map[string]string, isTax, hasDiscount bool) {
				if !isTax || !hasDiscount {
					t.Errorf("isTax=%v hasDiscount=%v", isTax, hasDiscount)
				}
				if v["cgst"] != "CGST @ 7.5%" || v["sgst"] != "SGST @ 7.5%" {
					t.Errorf("labels = %q / %q", v["cgst"], v["sgst"])
				}
				if v["discount"] != "Discount (50%)" {
					t.Errorf("discount label = %q", v["discount"])
				}
				if v["grand"] != "₹1,150.00" {
					t.Errorf("grand = %q", v["grand"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := totalsView(services.ComputeTotals(items, tt.discount, tt.invoiceType))
			tt.check(t, map[string]string{
				"grand":    tv.GrandTotal,
				"cgst":     tv.CGSTLabel,
				"sgst":     tv.SGSTLabel,
				"discount": tv.DiscountLabel,
			}, tv.IsTax, tv.HasDiscount)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{2.5, "2.5"},
		{math.NaN(), "0"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
