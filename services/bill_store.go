package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// BillsCollection is the PocketBase collection backing BillStore.
const BillsCollection = "bills"

// BillStore persists bills in PocketBase. PocketBase owns ids and the
// created/updated timestamps.
type BillStore struct {
	app core.App
}

// NewBillStore returns a store over app's bills collection.
func NewBillStore(app core.App) *BillStore {
	return &BillStore{app: app}
}

// Create assembles d and inserts it.
func (s *BillStore) Create(ctx context.Context, d Draft) (*Bill, error) {
	col, err := s.app.FindCollectionByNameOrId(BillsCollection)
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	b := AssembleBill(d)
	rec := core.NewRecord(col)
	writeBillRecord(rec, b)

	if err := s.app.SaveWithContext(ctx, rec); err != nil {
		zap.L().Error("bill create failed",
			zap.String("document_number", b.Meta.Number),
			zap.Error(err))
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	billsSaved.WithLabelValues(string(b.InvoiceType), "create").Inc()
	// Reload so timestamps carry the stored (millisecond) precision.
	return s.GetByID(rec.Id)
}

// Update replaces the bill's content with d, recomputing the totals
// snapshot before saving.
func (s *BillStore) Update(ctx context.Context, id string, d Draft) (*Bill, error) {
	rec, err := s.findRecord(id)
	if err != nil {
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	b := AssembleBill(d)
	writeBillRecord(rec, b)

	if err := s.app.SaveWithContext(ctx, rec); err != nil {
		zap.L().Error("bill update failed", zap.String("id", id), zap.Error(err))
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	billsSaved.WithLabelValues(string(b.InvoiceType), "update").Inc()
	return s.GetByID(rec.Id)
}

// GetByID loads a single bill. It returns ErrNotFound for unknown ids.
func (s *BillStore) GetByID(id string) (*Bill, error) {
	rec, err := s.findRecord(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	return billFromRecord(rec)
}

// Delete removes a bill permanently.
func (s *BillStore) Delete(ctx context.Context, id string) error {
	rec, err := s.findRecord(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &PersistenceError{Op: "delete", Err: err}
	}
	if err := s.app.DeleteWithContext(ctx, rec); err != nil {
		zap.L().Error("bill delete failed", zap.String("id", id), zap.Error(err))
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

// ListSummaries returns every bill, newest first.
func (s *BillStore) ListSummaries() ([]Summary, error) {
	return s.Filter("", "", "")
}

// Search matches client name or document number, case-insensitively.
// A blank query lists everything.
func (s *BillStore) Search(query string) ([]Summary, error) {
	return s.Filter(query, "", "")
}

// ListByDateRange returns bills whose document date lies within
// [start, end], most recent document date first. Either bound may be blank.
func (s *BillStore) ListByDateRange(start, end string) ([]Summary, error) {
	filter, params := buildBillFilter("", start, end)
	return s.summaries(filter, "-dated,-created", params)
}

// Filter combines Search and ListByDateRange for the list page. Results are
// ordered newest first by creation time.
func (s *BillStore) Filter(query, start, end string) ([]Summary, error) {
	filter, params := buildBillFilter(query, start, end)
	return s.summaries(filter, "-created", params)
}

// FullBills loads the complete bills behind a set of summaries, in order.
// The detailed spreadsheet exports need items, not just the projection.
func (s *BillStore) FullBills(summaries []Summary) ([]*Bill, error) {
	bills := make([]*Bill, 0, len(summaries))
	for _, sum := range summaries {
		b, err := s.GetByID(sum.ID)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// RecomputeAll re-derives the totals snapshot of every stored bill and saves
// those that drifted. It returns how many were rewritten.
func (s *BillStore) RecomputeAll(ctx context.Context) (int, error) {
	records, err := s.app.FindRecordsByFilter(BillsCollection, "id != ''", "created", 0, 0)
	if err != nil {
		return 0, &PersistenceError{Op: "recompute", Err: err}
	}

	updated := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		stored, err := billFromRecord(rec)
		if err != nil {
			zap.L().Warn("skipping unreadable bill", zap.String("id", rec.Id), zap.Error(err))
			continue
		}
		fresh := AssembleBill(stored.Draft)
		if fresh.TotalAmount == stored.TotalAmount &&
			fresh.GrandTotal == stored.GrandTotal &&
			fresh.TotalGSTAmount == stored.TotalGSTAmount {
			continue
		}
		writeBillRecord(rec, fresh)
		if err := s.app.SaveWithContext(ctx, rec); err != nil {
			return updated, &PersistenceError{Op: "recompute", Err: err}
		}
		zap.L().Info("bill totals recomputed",
			zap.String("id", rec.Id),
			zap.Float64("old_grand_total", stored.GrandTotal),
			zap.Float64("new_grand_total", fresh.GrandTotal))
		updated++
	}
	return updated, nil
}

func (s *BillStore) findRecord(id string) (*core.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	rec, err := s.app.FindRecordById(BillsCollection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *BillStore) summaries(filter, sort string, params map[string]any) ([]Summary, error) {
	records, err := s.app.FindRecordsByFilter(BillsCollection, filter, sort, 0, 0, params)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	out := make([]Summary, 0, len(records))
	for _, rec := range records {
		out = append(out, summaryFromRecord(rec))
	}
	return out, nil
}

// buildBillFilter builds a PocketBase filter expression. The "~" operator is
// a case-insensitive contains match.
func buildBillFilter(query, start, end string) (string, map[string]any) {
	clauses := []string{"id != ''"}
	params := map[string]any{}

	if q := strings.TrimSpace(query); q != "" {
		clauses = append(clauses, "(client_bill_to ~ {:q} || document_number ~ {:q})")
		params["q"] = q
	}
	if start = NormalizeDate(start); start != "" {
		clauses = append(clauses, "dated >= {:start}")
		params["start"] = start
	}
	if end = NormalizeDate(end); end != "" {
		clauses = append(clauses, "dated <= {:end}")
		params["end"] = end
	}
	return strings.Join(clauses, " && "), params
}

func writeBillRecord(rec *core.Record, b Bill) {
	rec.Set("invoice_type", string(b.InvoiceType))

	rec.Set("company_name", b.Company.Name)
	rec.Set("company_address", b.Company.Address)
	rec.Set("company_gstin", b.Company.GSTIN)
	rec.Set("company_email", b.Company.Email)
	rec.Set("company_mobile", b.Company.Mobile)

	rec.Set("letter_head", b.Meta.LetterHead)
	rec.Set("document_title", b.Meta.Title)
	rec.Set("document_type", b.Meta.DocumentType)
	rec.Set("document_number", b.Meta.Number)
	rec.Set("dated", b.Meta.Dated)
	rec.Set("arrival", b.Meta.Arrival)
	rec.Set("departure", b.Meta.Departure)
	rec.Set("place_of_supply", b.Meta.PlaceOfSupply)
	rec.Set("terms_of_payment", b.Meta.TermsOfPayment)

	rec.Set("client_bill_to", b.Client.BillTo)
	rec.Set("client_company_name", b.Client.CompanyName)
	rec.Set("client_address", b.Client.Address)
	rec.Set("client_gst_number", b.Client.GSTNumber)
	rec.Set("client_phone_number", b.Client.Phone)
	rec.Set("client_email", b.Client.Email)

	items := b.Items
	if items == nil {
		items = []LineItem{}
	}
	rec.Set("items", items)
	rec.Set("notes", b.Notes)
	rec.Set("terms", b.Terms)

	rec.Set("discount", b.Discount)
	rec.Set("total_amount", b.TotalAmount)
	rec.Set("total_gst_amount", b.TotalGSTAmount)
	rec.Set("grand_total", b.GrandTotal)
}

func billFromRecord(rec *core.Record) (*Bill, error) {
	var items []LineItem
	if err := rec.UnmarshalJSONField("items", &items); err != nil {
		return nil, fmt.Errorf("decode items of bill %s: %w", rec.Id, err)
	}
	if items == nil {
		items = []LineItem{}
	}

	return &Bill{
		Draft: Draft{
			InvoiceType: ParseInvoiceType(rec.GetString("invoice_type")),
			Company: Company{
				Name:    rec.GetString("company_name"),
				Address: rec.GetString("company_address"),
				GSTIN:   rec.GetString("company_gstin"),
				Email:   rec.GetString("company_email"),
				Mobile:  rec.GetString("company_mobile"),
			},
			Meta: DocumentMeta{
				LetterHead:     rec.GetString("letter_head"),
				Title:          rec.GetString("document_title"),
				DocumentType:   rec.GetString("document_type"),
				Number:         rec.GetString("document_number"),
				Dated:          rec.GetString("dated"),
				Arrival:        rec.GetString("arrival"),
				Departure:      rec.GetString("departure"),
				PlaceOfSupply:  rec.GetString("place_of_supply"),
				TermsOfPayment: rec.GetString("terms_of_payment"),
			},
			Client: Client{
				BillTo:      rec.GetString("client_bill_to"),
				CompanyName: rec.GetString("client_company_name"),
				Address:     rec.GetString("client_address"),
				GSTNumber:   rec.GetString("client_gst_number"),
				Phone:       rec.GetString("client_phone_number"),
				Email:       rec.GetString("client_email"),
			},
			Items:    items,
			Notes:    rec.GetString("notes"),
			Terms:    rec.GetString("terms"),
			Discount: rec.GetFloat("discount"),
		},
		ID:             rec.Id,
		Created:        rec.GetDateTime("created").Time(),
		Updated:        rec.GetDateTime("updated").Time(),
		TotalAmount:    rec.GetFloat("total_amount"),
		TotalGSTAmount: rec.GetFloat("total_gst_amount"),
		GrandTotal:     rec.GetFloat("grand_total"),
	}, nil
}

func summaryFromRecord(rec *core.Record) Summary {
	return Summary{
		ID:             rec.Id,
		Created:        rec.GetDateTime("created").Time(),
		InvoiceType:    ParseInvoiceType(rec.GetString("invoice_type")),
		DocumentTitle:  rec.GetString("document_title"),
		DocumentNumber: rec.GetString("document_number"),
		Dated:          rec.GetString("dated"),
		ClientBillTo:   rec.GetString("client_bill_to"),
		TotalAmount:    rec.GetFloat("total_amount"),
		GrandTotal:     rec.GetFloat("grand_total"),
	}
}
