package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"go.uber.org/zap"

	"invoicegen/config"
	"invoicegen/services"
)

// Seed inserts one sample quotation built from the configured letterhead so a
// fresh install has something to preview and export. It is safe to call on
// every startup because it returns early if any bill already exists.
func Seed(app *pocketbase.PocketBase, cfg *config.Config) error {
	existing, err := app.FindRecordsByFilter(services.BillsCollection, "id != ''", "", 1, 0)
	if err != nil {
		return fmt.Errorf("seed: could not query bills: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	zap.L().Info("seed: bills collection is empty, inserting sample quotation")

	now := time.Now()
	store := services.NewBillStore(app)

	d := services.NewDraft(cfg, now)
	d.InvoiceType = services.InvoiceTypePlain
	d.Meta.Number = store.NextDocumentNumber(d.InvoiceType, now)
	d.Meta.Arrival = now.AddDate(0, 0, 15).Format(services.StorageDateLayout)
	d.Meta.Departure = now.AddDate(0, 0, 29).Format(services.StorageDateLayout)
	d.Client = services.Client{
		BillTo: "Mikhail & Elena Medvedeva",
		Phone:  "9204511935",
	}
	d.Items = []services.LineItem{{
		Description: "Room No. 204 - Grand Royale Palms Benaulim, Goa",
		RoomType:    "Deluxe",
		Rooms:       1,
		Rate:        1800,
		Nights:      14,
		HSNSAC:      cfg.Document.HSNSAC,
		GSTRate:     cfg.Document.GSTRate,
	}}

	if _, err := store.Create(context.Background(), d); err != nil {
		return fmt.Errorf("seed: could not create sample bill: %w", err)
	}
	return nil
}
