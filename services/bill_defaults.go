package services

import (
	"time"

	"invoicegen/config"
)

// NewDraft returns the blank form state: company and document defaults from
// cfg, today's date and one empty line item.
func NewDraft(cfg *config.Config, today time.Time) Draft {
	return Draft{
		InvoiceType: ParseInvoiceType(cfg.Document.InvoiceType),
		Company: Company{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			GSTIN:   cfg.Company.GSTIN,
			Email:   cfg.Company.Email,
			Mobile:  cfg.Company.Mobile,
		},
		Meta: DocumentMeta{
			Title:          cfg.Document.Title,
			Dated:          today.Format(StorageDateLayout),
			PlaceOfSupply:  cfg.Document.PlaceOfSupply,
			TermsOfPayment: cfg.Document.TermsOfPayment,
		},
		Items:    []LineItem{NewLineItem(cfg)},
		Notes:    cfg.Document.Notes,
		Terms:    cfg.Document.Terms,
		Discount: 0,
	}
}

// NewLineItem is an empty row carrying the default HSN/SAC code and GST rate.
func NewLineItem(cfg *config.Config) LineItem {
	return LineItem{
		Rooms:   1,
		Nights:  1,
		HSNSAC:  cfg.Document.HSNSAC,
		GSTRate: cfg.Document.GSTRate,
	}
}
