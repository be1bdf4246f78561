package services

import (
	"fmt"
	"time"
)

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

// documentPrefix is "QTN" for quotations and plain invoices and "INV" for
// tax invoices.
func documentPrefix(t InvoiceType) string {
	if t.IsTax() {
		return "INV"
	}
	return "QTN"
}

func formatDocumentNumber(prefix, fiscalYear string, sequence int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, fiscalYear, sequence)
}

// NextDocumentNumber suggests the next number for a new document.
// Format: {QTN|INV}-{fiscal_year}-{sequence}
// - fiscal_year: Indian fiscal year (Apr-Mar), e.g. "25-26"
// - sequence: 3-digit zero-padded, per prefix per fiscal year
//
// It is only a suggestion for the create form; whatever the user saves is
// kept verbatim.
func (s *BillStore) NextDocumentNumber(t InvoiceType, now time.Time) string {
	prefix := fmt.Sprintf("%s-%s-", documentPrefix(t), GetFiscalYear(now))

	existing, err := s.app.FindRecordsByFilter(
		BillsCollection,
		"document_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// No bills yet (or collection missing): start at 1.
		existing = nil
	}

	return formatDocumentNumber(documentPrefix(t), GetFiscalYear(now), len(existing)+1)
}
