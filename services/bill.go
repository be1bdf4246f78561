package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Company is the issuing business as printed on the letterhead.
type Company struct {
	Name    string
	Address string
	GSTIN   string
	Email   string
	Mobile  string
}

// DocumentMeta holds the header fields of a quotation or invoice.
// Dates are stored as YYYY-MM-DD.
type DocumentMeta struct {
	LetterHead     string
	Title          string
	DocumentType   string
	Number         string
	Dated          string
	Arrival        string
	Departure      string
	PlaceOfSupply  string
	TermsOfPayment string
}

// Client is the party being billed.
type Client struct {
	BillTo      string
	CompanyName string
	Address     string
	GSTNumber   string
	Phone       string
	Email       string
}

// Draft is the in-memory form state of a document. It is passed by value;
// nothing downstream mutates the caller's copy.
type Draft struct {
	InvoiceType InvoiceType
	Company     Company
	Meta        DocumentMeta
	Client      Client
	Items       []LineItem
	Notes       string
	Terms       string
	Discount    float64
}

// Bill is a persisted document: the draft plus the totals snapshot taken at
// save time and the storage-owned id and timestamps.
type Bill struct {
	Draft

	ID      string
	Created time.Time
	Updated time.Time

	TotalAmount    float64
	TotalGSTAmount float64
	GrandTotal     float64
}

// Totals recomputes the full breakdown from the stored items. Views and
// exports use this rather than reading the snapshot fields.
func (b Bill) Totals() Totals {
	return ComputeTotals(b.Items, b.Discount, b.InvoiceType)
}

// Summary is the list projection of a bill.
type Summary struct {
	ID             string
	Created        time.Time
	InvoiceType    InvoiceType
	DocumentTitle  string
	DocumentNumber string
	Dated          string
	ClientBillTo   string
	TotalAmount    float64
	GrandTotal     float64
}

// AssembleBill turns a draft into a persistable bill: items get ids where
// missing and the totals snapshot is taken from ComputeTotals. Every
// create, update and recompute path goes through here so the snapshot
// always matches the stored items, discount and invoice type.
func AssembleBill(d Draft) Bill {
	d.InvoiceType = ParseInvoiceType(string(d.InvoiceType))
	d.Discount = CoerceNumber(d.Discount)
	d.Items = normalizeItems(d.Items)

	totals := ComputeTotals(d.Items, d.Discount, d.InvoiceType)

	b := Bill{
		Draft:       d,
		TotalAmount: totals.Subtotal,
		GrandTotal:  totals.GrandTotal,
	}
	if d.InvoiceType.IsTax() {
		b.TotalGSTAmount = totals.TotalGSTAmount
	}
	return b
}

// normalizeItems copies items, coercing quantities and assigning fresh ids to
// blank or duplicate ones.
func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" || seen[it.ID] {
			it.ID = uuid.NewString()
		}
		seen[it.ID] = true

		it.Rooms = nonNegative(it.Rooms)
		it.Rate = nonNegative(it.Rate)
		it.Nights = nonNegative(it.Nights)
		it.GSTRate = CoerceNumber(it.GSTRate)
		it.CustomFields = append([]CustomField(nil), it.CustomFields...)
		out[i] = it
	}
	return out
}

func nonNegative(v float64) float64 {
	v = CoerceNumber(v)
	if v < 0 {
		return 0
	}
	return v
}
