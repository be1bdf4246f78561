// Package services holds the billing engine, document assembly, storage and
// export code for quotations and invoices.
package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// InvoiceType selects whether GST is computed for a document.
type InvoiceType string

const (
	InvoiceTypePlain InvoiceType = "invoice"
	InvoiceTypeTax   InvoiceType = "tax-invoice"
)

// ParseInvoiceType maps a stored or submitted value to an InvoiceType.
// Anything unrecognised is treated as a plain invoice.
func ParseInvoiceType(s string) InvoiceType {
	if InvoiceType(s) == InvoiceTypeTax {
		return InvoiceTypeTax
	}
	return InvoiceTypePlain
}

// IsTax reports whether t computes CGST/SGST.
func (t InvoiceType) IsTax() bool {
	return t == InvoiceTypeTax
}

// Label is the human-readable document type.
func (t InvoiceType) Label() string {
	if t.IsTax() {
		return "Tax Invoice"
	}
	return "Invoice"
}

// LineItem is one purchased unit: rooms x rate x nights.
type LineItem struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	RoomType     string        `json:"room_type,omitempty"`
	Rooms        float64       `json:"rooms"`
	Rate         float64       `json:"rate"`
	Nights       float64       `json:"nights"`
	HSNSAC       string        `json:"hsn_sac"`
	GSTRate      float64       `json:"gst_rate"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// Total returns rooms * rate * nights after coercing the quantities.
func (li LineItem) Total() float64 {
	return li.total().InexactFloat64()
}

func (li LineItem) total() decimal.Decimal {
	return coerceDecimal(li.Rooms, true).
		Mul(coerceDecimal(li.Rate, true)).
		Mul(coerceDecimal(li.Nights, true))
}

// ItemBreakdown holds the derived monetary fields of a single line item.
type ItemBreakdown struct {
	ItemTotal                 float64
	ItemDiscount              float64
	ItemSubtotalAfterDiscount float64
	ItemCGSTRate              float64
	ItemSGSTRate              float64
	ItemCGSTAmount            float64
	ItemSGSTAmount            float64
	ItemGSTTotal              float64
	ItemGrandTotal            float64
}

// Totals is the complete breakdown of a document. Items is index-aligned
// with the line items it was computed from.
type Totals struct {
	InvoiceType           InvoiceType
	DiscountPercent       float64
	Subtotal              float64
	DiscountAmount        float64
	SubtotalAfterDiscount float64
	Items                 []ItemBreakdown
	TotalCGSTAmount       float64
	TotalSGSTAmount       float64
	TotalGSTAmount        float64
	GrandTotal            float64
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives every monetary field of a document from its line
// items, a document-level discount percentage and the invoice type.
//
// Item discounts are allocated in proportion to each item's share of the
// subtotal. For tax invoices GST is split evenly into CGST and SGST on the
// item's post-discount amount, and aggregates are the sums of the item
// amounts. The function never fails: NaN, infinite and negative quantities
// count as zero.
func ComputeTotals(items []LineItem, discountPercent float64, invoiceType InvoiceType) Totals {
	pct := coerceDecimal(discountPercent, false)

	itemTotals := make([]decimal.Decimal, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		itemTotals[i] = it.total()
		subtotal = subtotal.Add(itemTotals[i])
	}

	discountAmount := subtotal.Mul(pct).Div(hundred)
	afterDiscount := subtotal.Sub(discountAmount)

	out := Totals{
		InvoiceType:           invoiceType,
		DiscountPercent:       pct.InexactFloat64(),
		Subtotal:              subtotal.InexactFloat64(),
		DiscountAmount:        discountAmount.InexactFloat64(),
		SubtotalAfterDiscount: afterDiscount.InexactFloat64(),
		Items:                 make([]ItemBreakdown, len(items)),
	}

	totalCGST := decimal.Zero
	totalSGST := decimal.Zero

	for i, it := range items {
		itemDiscount := decimal.Zero
		if subtotal.IsPositive() {
			itemDiscount = itemTotals[i].Mul(discountAmount).Div(subtotal)
		}
		itemAfter := itemTotals[i].Sub(itemDiscount)

		b := ItemBreakdown{
			ItemTotal:                 itemTotals[i].InexactFloat64(),
			ItemDiscount:              itemDiscount.InexactFloat64(),
			ItemSubtotalAfterDiscount: itemAfter.InexactFloat64(),
		}

		if invoiceType.IsTax() {
			sideRate := coerceDecimal(it.GSTRate, false).Div(decimal.NewFromInt(2))
			side := itemAfter.Mul(sideRate).Div(hundred)
			totalCGST = totalCGST.Add(side)
			totalSGST = totalSGST.Add(side)

			b.ItemCGSTRate = sideRate.InexactFloat64()
			b.ItemSGSTRate = b.ItemCGSTRate
			b.ItemCGSTAmount = side.InexactFloat64()
			b.ItemSGSTAmount = b.ItemCGSTAmount
			b.ItemGSTTotal = side.Add(side).InexactFloat64()
			itemAfter = itemAfter.Add(side).Add(side)
		}
		b.ItemGrandTotal = itemAfter.InexactFloat64()

		out.Items[i] = b
	}

	totalGST := totalCGST.Add(totalSGST)
	out.TotalCGSTAmount = totalCGST.InexactFloat64()
	out.TotalSGSTAmount = totalSGST.InexactFloat64()
	out.TotalGSTAmount = totalGST.InexactFloat64()

	if invoiceType.IsTax() {
		out.GrandTotal = afterDiscount.Add(totalGST).InexactFloat64()
	} else {
		out.GrandTotal = out.SubtotalAfterDiscount
	}

	return out
}

// EffectiveGSTRate returns the document-wide GST percentage back-derived from
// the aggregates. Items may carry different rates, so this is the only rate
// shown at document level. Each of CGST and SGST is half of it.
func EffectiveGSTRate(t Totals) float64 {
	if t.SubtotalAfterDiscount == 0 {
		return 0
	}
	return t.TotalGSTAmount / t.SubtotalAfterDiscount * 100
}

// CoerceNumber maps NaN and infinities to zero.
func CoerceNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func coerceDecimal(v float64, nonNegative bool) decimal.Decimal {
	v = CoerceNumber(v)
	if nonNegative && v < 0 {
		v = 0
	}
	return decimal.NewFromFloat(v)
}
