package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/services"
)

// HandleBillDelete removes a bill and sends the client back to the list.
func HandleBillDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		if err := services.NewBillStore(app).Delete(e.Request.Context(), id); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return ErrorToast(e, http.StatusNotFound, "Bill not found")
			}
			zap.L().Error("delete bill", zap.String("id", id), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete bill")
		}

		SetToast(e, "success", "Bill deleted")
		return redirect(e, "/bills")
	}
}
