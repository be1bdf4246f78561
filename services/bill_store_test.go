package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicegen/services"
	"invoicegen/testhelpers"
)

func TestBillStore_CreateAndGet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	d := testhelpers.TestDraft("Mikhail & Elena Medvedeva", "QTN-24-25-002")
	d.InvoiceType = services.InvoiceTypeTax
	d.Discount = 10
	d.Items[0].CustomFields = []services.CustomField{{Name: "Meal Plan", Value: "CP"}}

	created, err := store.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" || created.Created.IsZero() {
		t.Fatalf("store should assign id and created: %+v", created)
	}

	got, err := store.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Client.BillTo != "Mikhail & Elena Medvedeva" || got.InvoiceType != services.InvoiceTypeTax {
		t.Errorf("unexpected bill: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].ID == "" {
		t.Fatalf("items = %+v", got.Items)
	}
	if v := services.CustomFieldValue(got.Items[0].CustomFields, "Meal Plan"); v != "CP" {
		t.Errorf("custom field = %q, want CP", v)
	}
	// 25200 - 10% = 22680; GST 12% = 2721.6
	if got.TotalAmount != 25200 {
		t.Errorf("TotalAmount = %v, want 25200", got.TotalAmount)
	}
	if got.GrandTotal != 25401.6 {
		t.Errorf("GrandTotal = %v, want 25401.6", got.GrandTotal)
	}
}

func TestBillStore_RoundTripReproducesSnapshot(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	d := testhelpers.TestDraft("Asha", "INV-25-26-004")
	d.InvoiceType = services.InvoiceTypeTax
	d.Discount = 7.5
	d.Items = append(d.Items,
		services.LineItem{Description: "Extra bed", Rooms: 1, Rate: 333.33, Nights: 3, GSTRate: 18},
		services.LineItem{Description: "Airport pickup", Rooms: 1, Rate: 1499.99, Nights: 1, GSTRate: 5},
	)
	created := testhelpers.CreateTestBill(t, app, d)

	reloaded, err := store.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	totals := reloaded.Totals()
	if totals.Subtotal != reloaded.TotalAmount {
		t.Errorf("recomputed subtotal %v != stored %v", totals.Subtotal, reloaded.TotalAmount)
	}
	if totals.GrandTotal != reloaded.GrandTotal {
		t.Errorf("recomputed grand total %v != stored %v", totals.GrandTotal, reloaded.GrandTotal)
	}
	if totals.TotalGSTAmount != reloaded.TotalGSTAmount {
		t.Errorf("recomputed GST %v != stored %v", totals.TotalGSTAmount, reloaded.TotalGSTAmount)
	}
}

func TestBillStore_Update(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)
	created := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Asha", "QTN-25-26-001"))

	d := created.Draft
	d.Items[0].Nights = 2
	d.Client.BillTo = "Asha Menon"

	updated, err := store.Update(context.Background(), created.ID, d)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed: %s -> %s", created.ID, updated.ID)
	}
	if updated.TotalAmount != 3600 || updated.GrandTotal != 3600 {
		t.Errorf("totals not recomputed: %v / %v", updated.TotalAmount, updated.GrandTotal)
	}
	if updated.Items[0].ID != created.Items[0].ID {
		t.Errorf("item id should be kept across updates")
	}

	_, err = store.Update(context.Background(), "doesnotexist00", d)
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
	var pe *services.PersistenceError
	if !errors.As(err, &pe) || pe.Op != "update" {
		t.Errorf("Update(missing) should be a PersistenceError, got %T", err)
	}
}

func TestBillStore_SaveReturnsStoredTimestamps(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	d := testhelpers.TestDraft("Asha", "QTN-25-26-001")
	created, err := store.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	reread, err := store.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !created.Created.Equal(reread.Created) || !created.Updated.Equal(reread.Updated) {
		t.Errorf("Create() timestamps %v/%v differ from stored %v/%v",
			created.Created, created.Updated, reread.Created, reread.Updated)
	}

	updated, err := store.Update(context.Background(), created.ID, d)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	reread, err = store.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !updated.Updated.Equal(reread.Updated) {
		t.Errorf("Update() updated = %v, stored %v", updated.Updated, reread.Updated)
	}
}

func TestBillStore_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	if _, err := store.GetByID("doesnotexist00"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetByID(""); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("GetByID(blank) error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(context.Background(), "doesnotexist00"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestBillStore_Delete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)
	b := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Asha", "QTN-25-26-001"))

	if err := store.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(b.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("bill still present after delete: %v", err)
	}
}

func TestBillStore_ListSummariesNewestFirst(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	first := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("First", "QTN-25-26-001"))
	time.Sleep(5 * time.Millisecond)
	second := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Second", "QTN-25-26-002"))

	list, err := store.ListSummaries()
	if err != nil {
		t.Fatalf("ListSummaries() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("order = %s, %s; want %s, %s", list[0].ID, list[1].ID, second.ID, first.ID)
	}
	if list[0].GrandTotal != 25200 || list[0].DocumentNumber != "QTN-25-26-002" {
		t.Errorf("summary projection = %+v", list[0])
	}
}

func TestBillStore_Search(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Mikhail Medvedev", "QTN-25-26-001"))
	testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Asha Menon", "INV-25-26-001"))
	testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Rahul", "QTN-25-26-002"))

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"menon", 1},
		{"MEDVEDEV", 1},
		{"qtn-25", 2},
		{"inv", 1},
		{"nobody", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := store.Search(tt.query)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", tt.query, err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestBillStore_ListByDateRange(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	for _, c := range []struct{ number, dated string }{
		{"QTN-24-25-001", "2025-01-10"},
		{"QTN-24-25-002", "2025-02-08"},
		{"QTN-24-25-003", "2025-03-31"},
	} {
		d := testhelpers.TestDraft("Guest", c.number)
		d.Meta.Dated = c.dated
		testhelpers.CreateTestBill(t, app, d)
	}

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"inclusive bounds", "2025-02-08", "2025-03-31", []string{"QTN-24-25-003", "QTN-24-25-002"}},
		{"display format", "01/01/2025", "31/01/2025", []string{"QTN-24-25-001"}},
		{"open start", "", "2025-02-01", []string{"QTN-24-25-001"}},
		{"open end", "2025-03-01", "", []string{"QTN-24-25-003"}},
		{"unbounded", "", "", []string{"QTN-24-25-003", "QTN-24-25-002", "QTN-24-25-001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListByDateRange(tt.start, tt.end)
			if err != nil {
				t.Fatalf("ListByDateRange() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.DocumentNumber != tt.want[i] {
					t.Errorf("result %d = %s, want %s", i, s.DocumentNumber, tt.want[i])
				}
			}
		})
	}
}

func TestBillStore_FilterCombinesSearchAndRange(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	a := testhelpers.TestDraft("Asha", "QTN-24-25-001")
	a.Meta.Dated = "2025-01-10"
	b := testhelpers.TestDraft("Asha", "QTN-24-25-002")
	b.Meta.Dated = "2025-03-10"
	testhelpers.CreateTestBill(t, app, a)
	testhelpers.CreateTestBill(t, app, b)

	got, err := store.Filter("asha", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 1 || got[0].DocumentNumber != "QTN-24-25-002" {
		t.Errorf("Filter() = %+v", got)
	}
}

func TestBillStore_RecomputeAll(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)

	good := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Good", "QTN-25-26-001"))
	stale := testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("Stale", "QTN-25-26-002"))

	rec, err := app.FindRecordById(services.BillsCollection, stale.ID)
	if err != nil {
		t.Fatal(err)
	}
	rec.Set("grand_total", 1)
	rec.Set("total_amount", 1)
	if err := app.Save(rec); err != nil {
		t.Fatal(err)
	}

	n, err := store.RecomputeAll(context.Background())
	if err != nil {
		t.Fatalf("RecomputeAll() error = %v", err)
	}
	if n != 1 {
		t.Errorf("RecomputeAll() updated %d bills, want 1", n)
	}

	fixed, _ := store.GetByID(stale.ID)
	if fixed.GrandTotal != 25200 || fixed.TotalAmount != 25200 {
		t.Errorf("stale bill not repaired: %v / %v", fixed.TotalAmount, fixed.GrandTotal)
	}
	untouched, _ := store.GetByID(good.ID)
	if !untouched.Updated.Equal(good.Updated) {
		t.Errorf("consistent bill should not be rewritten")
	}
}

func TestBillStore_NextDocumentNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewBillStore(app)
	now := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	if got := store.NextDocumentNumber(services.InvoiceTypePlain, now); got != "QTN-25-26-001" {
		t.Errorf("first quotation number = %q", got)
	}

	testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("A", "QTN-25-26-001"))
	testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("B", "QTN-25-26-002"))
	testhelpers.CreateTestBill(t, app, testhelpers.TestDraft("C", "QTN-24-25-014"))

	if got := store.NextDocumentNumber(services.InvoiceTypePlain, now); got != "QTN-25-26-003" {
		t.Errorf("next quotation number = %q, want QTN-25-26-003", got)
	}
	if got := store.NextDocumentNumber(services.InvoiceTypeTax, now); got != "INV-25-26-001" {
		t.Errorf("first tax invoice number = %q, want INV-25-26-001", got)
	}
}
