package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/config"
	"invoicegen/services"
	"invoicegen/templates"
)

// HandleBillEdit renders the form for an existing bill.
func HandleBillEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		bill, err := services.NewBillStore(app).GetByID(id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return notFound(e)
			}
			zap.L().Error("load bill for edit", zap.String("id", id), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load bill")
		}

		data := editFormData(formDataFromDraft(bill.Draft), id)
		return render(e, http.StatusOK, templates.BillFormContent(data), templates.BillFormPage(data))
	}
}

// HandleBillSave updates an existing bill from the submitted form.
func HandleBillSave(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		d, data, err := readBillForm(e.Request)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		data = editFormData(data, id)

		if err := services.ValidateDraft(d); err != nil {
			return renderInvalidForm(e, err, data, cfg)
		}

		bill, err := services.NewBillStore(app).Update(e.Request.Context(), id, d)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return notFound(e)
			}
			zap.L().Error("update bill", zap.String("id", id), zap.Error(err))
			return renderSaveFailure(e, data, cfg)
		}

		SetToast(e, "success", bill.Meta.Number+" updated")
		return redirect(e, "/bills/"+bill.ID)
	}
}

func editFormData(data templates.BillFormData, id string) templates.BillFormData {
	data.IsEdit = true
	data.BillID = id
	data.Action = "/bills/" + id + "/save"
	return data
}
