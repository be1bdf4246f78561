package collections

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/services"
)

// Setup programmatically creates/ensures the bills collection exists.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, services.BillsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "invoice_type",
			Required:  true,
			Values:    []string{string(services.InvoiceTypePlain), string(services.InvoiceTypeTax)},
			MaxSelect: 1,
		})

		c.Fields.Add(&core.TextField{Name: "company_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "company_address"})
		c.Fields.Add(&core.TextField{Name: "company_gstin"})
		c.Fields.Add(&core.TextField{Name: "company_email"})
		c.Fields.Add(&core.TextField{Name: "company_mobile"})

		c.Fields.Add(&core.TextField{Name: "letter_head"})
		c.Fields.Add(&core.TextField{Name: "document_title", Required: true})
		c.Fields.Add(&core.TextField{Name: "document_type"})
		c.Fields.Add(&core.TextField{Name: "document_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "dated"})
		c.Fields.Add(&core.TextField{Name: "arrival"})
		c.Fields.Add(&core.TextField{Name: "departure"})
		c.Fields.Add(&core.TextField{Name: "place_of_supply"})
		c.Fields.Add(&core.TextField{Name: "terms_of_payment"})

		c.Fields.Add(&core.TextField{Name: "client_bill_to", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_company_name"})
		c.Fields.Add(&core.TextField{Name: "client_address"})
		c.Fields.Add(&core.TextField{Name: "client_gst_number"})
		c.Fields.Add(&core.TextField{Name: "client_phone_number"})
		c.Fields.Add(&core.TextField{Name: "client_email"})

		c.Fields.Add(&core.JSONField{Name: "items", MaxSize: 1 << 20})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.TextField{Name: "terms"})

		// NumberField.Required rejects zero, which is a legal amount.
		c.Fields.Add(&core.NumberField{Name: "discount"})
		c.Fields.Add(&core.NumberField{Name: "total_amount"})
		c.Fields.Add(&core.NumberField{Name: "total_gst_amount"})
		c.Fields.Add(&core.NumberField{Name: "grand_total"})

		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		c.AddIndex("idx_bills_document_number", false, "document_number", "")
		c.AddIndex("idx_bills_dated", false, "dated", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		zap.L().Debug("collection already exists, skipping creation", zap.String("collection", name))
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		zap.L().Fatal("failed to create collection", zap.String("collection", name), zap.Error(err))
	}

	zap.L().Info("created collection", zap.String("collection", name), zap.String("id", collection.Id))
	return collection
}
