// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"context"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"

	"invoicegen/collections"
	"invoicegen/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// TestDraft returns a valid single-item quotation for the given client.
func TestDraft(billTo, number string) services.Draft {
	return services.Draft{
		InvoiceType: services.InvoiceTypePlain,
		Company: services.Company{
			Name:    "PARK GRAND HOSPITALITY",
			Address: "H.No: 708 A, Ascona Cana, Benaulim, South-Goa, Goa 403717",
			GSTIN:   "30ACEPL2168C1Z8",
		},
		Meta: services.DocumentMeta{
			Title:  "Quotation",
			Number: number,
			Dated:  "2025-02-08",
		},
		Client: services.Client{BillTo: billTo},
		Items: []services.LineItem{
			{Description: "Room No. 204", Rooms: 1, Rate: 1800, Nights: 14, HSNSAC: "996311", GSTRate: 12},
		},
	}
}

// CreateTestBill saves d through the bill store and returns the stored bill.
func CreateTestBill(t *testing.T, app *pocketbase.PocketBase, d services.Draft) *services.Bill {
	t.Helper()

	b, err := services.NewBillStore(app).Create(context.Background(), d)
	if err != nil {
		t.Fatalf("failed to save test bill: %v", err)
	}
	return b
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q", frag)
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
