package services

import (
	"strings"
)

// ExportItem is one line item with its derived amounts, ready for printing.
type ExportItem struct {
	SINo int
	LineItem
	ItemBreakdown
}

// BillExportData holds everything needed to render a bill in any format.
// All amounts come from ComputeTotals; renderers only format them.
type BillExportData struct {
	Bill   Bill
	Totals Totals
	Items  []ExportItem

	Heading          string
	EffectiveGSTRate float64
	AmountInWords    string
	CustomFieldNames []string
}

// BuildBillExportData projects a stored bill into its printable form.
func BuildBillExportData(b Bill) BillExportData {
	totals := b.Totals()

	items := make([]ExportItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = ExportItem{SINo: i + 1, LineItem: it, ItemBreakdown: totals.Items[i]}
	}

	return BillExportData{
		Bill:             b,
		Totals:           totals,
		Items:            items,
		Heading:          DocumentHeading(b.InvoiceType, b.Meta.Title),
		EffectiveGSTRate: EffectiveGSTRate(totals),
		AmountInWords:    AmountInWords(totals.GrandTotal),
		CustomFieldNames: CustomFieldNames(b.Items),
	}
}

// DocumentHeading is the large title printed on the document: "TAX INVOICE"
// for tax invoices, otherwise the document title (QUOTATION by default).
func DocumentHeading(t InvoiceType, title string) string {
	if t.IsTax() {
		return "TAX INVOICE"
	}
	if title = strings.TrimSpace(title); title != "" {
		return strings.ToUpper(title)
	}
	return "QUOTATION"
}

// CompanyFooter is the "For {company}" line above the signatory.
func (d BillExportData) CompanyFooter() string {
	return "For " + d.Bill.Company.Name
}

// StayDates renders the arrival/departure pair for the document header.
func (d BillExportData) StayDates() string {
	arr, dep := DisplayDate(d.Bill.Meta.Arrival), DisplayDate(d.Bill.Meta.Departure)
	switch {
	case arr != "" && dep != "":
		return arr + " to " + dep
	case arr != "":
		return "From " + arr
	case dep != "":
		return "Until " + dep
	}
	return ""
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
