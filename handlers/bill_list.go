package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"invoicegen/services"
	"invoicegen/templates"
)

// listFilter is the q/start/end query shared by the list page and the bulk
// export.
type listFilter struct {
	Query string
	Start string
	End   string
}

func readListFilter(e *core.RequestEvent) listFilter {
	q := e.Request.URL.Query()
	return listFilter{
		Query: strings.TrimSpace(q.Get("q")),
		Start: services.NormalizeDate(q.Get("start")),
		End:   services.NormalizeDate(q.Get("end")),
	}
}

// HandleBillList returns a handler that renders the bills list, optionally
// filtered by client/number search and a document date range.
func HandleBillList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := readListFilter(e)

		summaries, err := services.NewBillStore(app).Filter(filter.Query, filter.Start, filter.End)
		if err != nil {
			zap.L().Error("list bills", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load bills")
		}

		data := templates.BillListData{
			Bills:      make([]templates.BillListItem, len(summaries)),
			Query:      filter.Query,
			Start:      filter.Start,
			End:        filter.End,
			TotalCount: len(summaries),
		}
		for i, s := range summaries {
			data.Bills[i] = listItem(s)
		}

		return render(e, http.StatusOK, templates.BillListContent(data), templates.BillListPage(data))
	}
}

func listItem(s services.Summary) templates.BillListItem {
	created := ""
	if !s.Created.IsZero() {
		created = s.Created.Local().Format(services.DisplayDateLayout)
	}
	return templates.BillListItem{
		ID:             s.ID,
		DocumentNumber: s.DocumentNumber,
		DocumentTitle:  s.DocumentTitle,
		TypeLabel:      s.InvoiceType.Label(),
		Dated:          services.DisplayDate(s.Dated),
		ClientBillTo:   s.ClientBillTo,
		TotalAmount:    services.FormatRupees(s.TotalAmount),
		GrandTotal:     services.FormatRupees(s.GrandTotal),
		Created:        created,
	}
}
