package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/config"
	"invoicegen/services"
	"invoicegen/templates"
)

// HandleBillNew renders a blank form pre-filled from config with a
// suggested document number.
func HandleBillNew(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		now := time.Now()
		d := services.NewDraft(cfg, now)
		d.Meta.Number = services.NewBillStore(app).NextDocumentNumber(d.InvoiceType, now)

		data := formDataFromDraft(d)
		data.Action = "/bills"
		return render(e, http.StatusOK, templates.BillFormContent(data), templates.BillFormPage(data))
	}
}

// HandleBillCreate validates and saves a new bill, then redirects to its
// preview.
func HandleBillCreate(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d, data, err := readBillForm(e.Request)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		data.Action = "/bills"

		if err := services.ValidateDraft(d); err != nil {
			return renderInvalidForm(e, err, data, cfg)
		}

		bill, err := services.NewBillStore(app).Create(e.Request.Context(), d)
		if err != nil {
			zap.L().Error("create bill", zap.String("document_number", d.Meta.Number), zap.Error(err))
			return renderSaveFailure(e, data, cfg)
		}

		SetToast(e, "success", bill.Meta.Number+" saved")
		return redirect(e, "/bills/"+bill.ID)
	}
}

// renderInvalidForm re-renders a rejected submission with field messages.
func renderInvalidForm(e *core.RequestEvent, err error, data templates.BillFormData, cfg *config.Config) error {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return ErrorToast(e, http.StatusBadRequest, err.Error())
	}
	data.Errors = verr.FieldErrors()
	ensureItemRow(&data, services.NewLineItem(cfg))
	return render(e, http.StatusUnprocessableEntity, templates.BillFormContent(data), templates.BillFormPage(data))
}

// renderSaveFailure answers a save the store rejected. HTMX keeps the page in
// place and only shows the toast; a plain POST gets its form back with the
// submitted values.
func renderSaveFailure(e *core.RequestEvent, data templates.BillFormData, cfg *config.Config) error {
	if isHTMX(e) {
		return ErrorToast(e, http.StatusInternalServerError, "Failed to save bill")
	}
	SetToast(e, "error", "Failed to save bill")
	data.FormError = "The bill could not be saved. Please try again."
	ensureItemRow(&data, services.NewLineItem(cfg))
	return render(e, http.StatusInternalServerError, templates.BillFormContent(data), templates.BillFormPage(data))
}
