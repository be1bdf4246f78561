package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// itemWorkbooks are the export types that need full bills rather than
// summaries.
var itemWorkbooks = map[string]func([]services.BillExportData) ([]byte, error){
	"itemized":      services.GenerateItemizedExcel,
	"detailed":      services.GenerateDetailedExcel,
	"comprehensive": services.GenerateComprehensiveExcel,
}

func exportKind(e *core.RequestEvent, fallback string) string {
	kind := strings.ToLower(strings.TrimSpace(e.Request.URL.Query().Get("type")))
	if kind == "" {
		return fallback
	}
	return kind
}

// HandleBillExportPDF streams the PDF rendition of one bill.
func HandleBillExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		bill, err := loadBillForExport(e, app)
		if bill == nil {
			return err
		}

		pdfBytes, err := services.GenerateBillPDF(services.BuildBillExportData(*bill))
		services.RecordExport("pdf", err)
		if err != nil {
			zap.L().Error("pdf export", zap.String("id", bill.ID), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		return sendFile(e, "application/pdf", billFilename(bill, "pdf"), pdfBytes)
	}
}

// HandleBillExportExcel streams a one-bill workbook. type is itemized
// (default) or detailed.
func HandleBillExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind := exportKind(e, "itemized")
		if kind != "itemized" && kind != "detailed" {
			return ErrorToast(e, http.StatusBadRequest, "Unknown export type")
		}

		bill, err := loadBillForExport(e, app)
		if bill == nil {
			return err
		}

		xlsx, err := itemWorkbooks[kind]([]services.BillExportData{services.BuildBillExportData(*bill)})
		services.RecordExport("excel", err)
		if err != nil {
			zap.L().Error("excel export", zap.String("id", bill.ID), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		return sendFile(e, xlsxContentType, billFilename(bill, "xlsx"), xlsx)
	}
}

// HandleBillsExport streams a workbook over every bill matching the list
// filters. type is summary (default), itemized, detailed or comprehensive.
func HandleBillsExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := readListFilter(e)
		kind := exportKind(e, "summary")
		generate, ok := itemWorkbooks[kind]
		if !ok && kind != "summary" {
			return ErrorToast(e, http.StatusBadRequest, "Unknown export type")
		}

		store := services.NewBillStore(app)
		summaries, err := store.Filter(filter.Query, filter.Start, filter.End)
		if err != nil {
			zap.L().Error("bulk export: list bills", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load bills")
		}

		var xlsx []byte
		if kind == "summary" {
			xlsx, err = services.GenerateSummaryExcel(summaries)
		} else {
			var bills []*services.Bill
			bills, err = store.FullBills(summaries)
			if err != nil {
				zap.L().Error("bulk export: load bills", zap.Error(err))
				return ErrorToast(e, http.StatusInternalServerError, "Failed to load bills")
			}
			data := make([]services.BillExportData, len(bills))
			for i, b := range bills {
				data[i] = services.BuildBillExportData(*b)
			}
			xlsx, err = generate(data)
		}
		services.RecordExport("excel_"+kind, err)
		if err != nil {
			zap.L().Error("bulk export", zap.String("type", kind), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("bills_%s_%s.xlsx", kind, time.Now().Format("2006-01-02"))
		return sendFile(e, xlsxContentType, filename, xlsx)
	}
}

// loadBillForExport returns the bill named by the id path value. On failure
// it has already written the error response and returns a nil bill.
func loadBillForExport(e *core.RequestEvent, app *pocketbase.PocketBase) (*services.Bill, error) {
	id := e.Request.PathValue("id")
	bill, err := services.NewBillStore(app).GetByID(id)
	if err == nil {
		return bill, nil
	}
	if errors.Is(err, services.ErrNotFound) {
		return nil, ErrorToast(e, http.StatusNotFound, "Bill not found")
	}
	zap.L().Error("load bill for export", zap.String("id", id), zap.Error(err))
	return nil, ErrorToast(e, http.StatusInternalServerError, "Failed to load bill")
}

func sendFile(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(body)
	return err
}

// billFilename builds a download name such as "qtn-25-26-001-john-doe.pdf".
func billFilename(b *services.Bill, ext string) string {
	name := slug.Make(b.Meta.Number + " " + b.Client.BillTo)
	if name == "" {
		name = "bill"
	}
	return name + "." + ext
}
