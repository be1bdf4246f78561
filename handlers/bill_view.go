package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/services"
	"invoicegen/templates"
)

// HandleBillView renders the printable preview of a bill.
func HandleBillView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		bill, err := services.NewBillStore(app).GetByID(id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return notFound(e)
			}
			zap.L().Error("load bill", zap.String("id", id), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load bill")
		}

		data := viewData(services.BuildBillExportData(*bill))
		return render(e, http.StatusOK, templates.BillViewContent(data), templates.BillViewPage(data))
	}
}

func viewData(d services.BillExportData) templates.BillViewData {
	b := d.Bill

	items := make([]templates.ViewItem, len(d.Items))
	for i, it := range d.Items {
		var custom []string
		for _, cf := range it.CustomFields {
			custom = append(custom, cf.Name+": "+cf.Value)
		}
		items[i] = templates.ViewItem{
			SINo:         strconv.Itoa(it.SINo),
			Description:  it.Description,
			RoomType:     it.RoomType,
			CustomFields: custom,
			HSNSAC:       it.HSNSAC,
			Rooms:        services.FormatQty(it.Rooms),
			Rate:         services.FormatINR(it.Rate),
			Nights:       services.FormatQty(it.Nights),
			GSTRate:      services.FormatPercent(it.GSTRate),
			GSTAmount:    services.FormatINR(it.ItemGSTTotal),
			Amount:       services.FormatINR(it.ItemTotal),
		}
	}

	client := []string{b.Client.BillTo}
	for _, line := range []string{
		b.Client.CompanyName,
		b.Client.Address,
		labelled("GSTIN", b.Client.GSTNumber),
		labelled("Phone", b.Client.Phone),
		labelled("Email", b.Client.Email),
	} {
		if line != "" {
			client = append(client, line)
		}
	}

	return templates.BillViewData{
		ID:      b.ID,
		Heading: d.Heading,
		IsTax:   b.InvoiceType.IsTax(),

		LetterHead:     b.Meta.LetterHead,
		CompanyName:    b.Company.Name,
		CompanyAddress: b.Company.Address,
		CompanyGSTIN:   b.Company.GSTIN,
		CompanyEmail:   b.Company.Email,
		CompanyMobile:  b.Company.Mobile,

		DocumentNumber: b.Meta.Number,
		DocumentType:   b.Meta.DocumentType,
		Dated:          services.DisplayDate(b.Meta.Dated),
		StayDates:      d.StayDates(),
		PlaceOfSupply:  b.Meta.PlaceOfSupply,
		TermsOfPayment: b.Meta.TermsOfPayment,

		ClientLines: client,
		Items:       items,
		Totals:      totalsView(d.Totals),

		Notes:         b.Notes,
		Terms:         b.Terms,
		CompanyFooter: d.CompanyFooter(),
	}
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
