package services

import (
	"testing"
	"time"

	"invoicegen/config"
)

func TestNewDraft(t *testing.T) {
	cfg := &config.Config{
		Company: config.CompanyConfig{Name: "Sea Breeze", GSTIN: "30ACEPL2168C1Z8"},
		Document: config.DocumentConfig{
			InvoiceType: "tax-invoice",
			Title:       "Quotation",
			HSNSAC:      "996311",
			GSTRate:     12,
			Notes:       "Pay on arrival.",
		},
	}
	d := NewDraft(cfg, time.Date(2025, time.June, 14, 9, 0, 0, 0, time.UTC))

	if d.InvoiceType != InvoiceTypeTax {
		t.Errorf("InvoiceType = %q", d.InvoiceType)
	}
	if d.Company.Name != "Sea Breeze" || d.Meta.Title != "Quotation" || d.Notes != "Pay on arrival." {
		t.Errorf("defaults not applied: %+v", d)
	}
	if d.Meta.Dated != "2025-06-14" {
		t.Errorf("Dated = %q", d.Meta.Dated)
	}
	if len(d.Items) != 1 || d.Items[0].GSTRate != 12 || d.Items[0].HSNSAC != "996311" {
		t.Errorf("Items = %+v", d.Items)
	}
}
