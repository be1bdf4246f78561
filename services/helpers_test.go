package services

import (
	"bytes"
	"math"
	"testing"
	"time"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func assertAmount(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// sampleDraft is a two-item tax invoice used across tests.
func sampleDraft() Draft {
	return Draft{
		InvoiceType: InvoiceTypeTax,
		Company: Company{
			Name:    "PARK GRAND HOSPITALITY",
			Address: "H.No: 708 A, Ascona Cana, Benaulim, South-Goa, Goa 403717",
			GSTIN:   "30ACEPL2168C1Z8",
			Email:   "sots.parkgrand@gmail.com",
			Mobile:  "9552433413",
		},
		Meta: DocumentMeta{
			Title:          "Quotation",
			Number:         "INV-25-26-001",
			Dated:          "2025-06-14",
			Arrival:        "2025-06-20",
			Departure:      "2025-06-23",
			PlaceOfSupply:  "Goa",
			TermsOfPayment: "On Arrival",
		},
		Client: Client{
			BillTo:      "Asha Menon",
			CompanyName: "Menon Travels",
			Phone:       "9876543210",
			Email:       "asha@example.com",
		},
		Items: []LineItem{
			{ID: "a", Description: "Deluxe Room", Rooms: 1, Rate: 1000, Nights: 1, HSNSAC: "996311", GSTRate: 12,
				CustomFields: []CustomField{{Name: "Meal Plan", Value: "CP"}}},
			{ID: "b", Description: "Suite", RoomType: "Sea view", Rooms: 1, Rate: 2000, Nights: 1, HSNSAC: "996311", GSTRate: 18},
		},
		Notes:    "The payment has to be made on arrival at the property.",
		Terms:    "1. Goods once sold will not be taken back or exchanged\n2. All disputes are subject to Goa Jurisdiction only.",
		Discount: 10,
	}
}

func sampleBill() Bill {
	b := AssembleBill(sampleDraft())
	b.ID = "bill0000000001"
	b.Created = time.Date(2025, time.June, 14, 10, 30, 0, 0, time.UTC)
	b.Updated = b.Created
	return b
}
