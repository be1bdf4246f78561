package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

type excelColumn struct {
	Header string
	Width  float64
}

var summaryColumns = []excelColumn{
	{"S.No", 6},
	{"Document Type", 14},
	{"Document Title", 18},
	{"Document Number", 18},
	{"Date", 12},
	{"Client Name", 28},
	{"Total Amount", 14},
	{"Grand Total", 14},
	{"Created Date", 12},
	{"Created Time", 12},
}

// Item-row sheets are built from three column groups: bill identity and
// parties (repeated on every row), the line item, and bill totals (first row
// of each bill only). Custom field columns are appended per export.
var itemizedBillColumns = []excelColumn{
	{"S.No", 6},
	{"Bill ID", 18},
	{"Document Type", 14},
	{"Document Title", 18},
	{"Document Number", 18},
	{"Document Date", 12},
	{"Arrival", 12},
	{"Departure", 12},
	{"Place of Supply", 14},
	{"Payment Terms", 14},
	{"Company Name", 24},
	{"Company GSTIN", 18},
	{"Client Bill To", 24},
	{"Client Company Name", 24},
	{"Client GST Number", 18},
	{"Client Phone Number", 14},
	{"Client Email", 22},
}

var detailedBillColumns = []excelColumn{
	{"S.No", 6},
	{"Bill ID", 18},
	{"Document Type", 14},
	{"Document Title", 18},
	{"Document Number", 18},
	{"Document Date", 12},
	{"Arrival", 12},
	{"Departure", 12},
	{"Place of Supply", 14},
	{"Payment Terms", 14},
	{"Company Name", 24},
	{"Company Address", 36},
	{"Company GSTIN", 18},
	{"Company Email", 22},
	{"Company Mobile", 14},
	{"Client Bill To", 24},
	{"Client Company Name", 24},
	{"Client Address", 36},
	{"Client GST Number", 18},
	{"Client Phone Number", 14},
	{"Client Email", 22},
}

var itemLineColumns = []excelColumn{
	{"Item S.No", 8},
	{"Item ID", 18},
	{"Description", 30},
	{"Room Type", 14},
	{"No. of Rooms", 10},
	{"Rate per Room", 12},
	{"No. of Nights", 10},
	{"HSN/SAC Code", 12},
	{"GST Rate (%)", 10},
	{"Item Total", 12},
	{"Item Discount", 12},
	{"Item Subtotal After Discount", 14},
	{"CGST Rate (%)", 10},
	{"CGST Amount", 12},
	{"SGST Rate (%)", 10},
	{"SGST Amount", 12},
	{"Item GST Total", 12},
	{"Item Grand Total", 14},
}

var billTotalColumns = []excelColumn{
	{"Discount (%)", 10},
	{"Bill Subtotal", 14},
	{"Bill Discount Amount", 14},
	{"Bill Subtotal After Discount", 14},
	{"Bill Total CGST", 14},
	{"Bill Total SGST", 14},
	{"Bill Total GST", 14},
	{"Bill Grand Total", 14},
	{"Amount in Words", 40},
}

var detailedTailColumns = []excelColumn{
	{"Notes", 40},
	{"Terms and Conditions", 40},
	{"Created Date", 12},
	{"Created Time", 12},
	{"Updated Date", 12},
	{"Updated Time", 12},
}

var comprehensiveSummaryColumns = []excelColumn{
	{"S.No", 6},
	{"Document Type", 14},
	{"Document Number", 18},
	{"Date", 12},
	{"Client Name", 28},
	{"Total Amount", 14},
	{"Grand Total", 14},
	{"Created Date", 12},
}

var comprehensiveDetailedColumns = []excelColumn{
	{"S.No", 6},
	{"Document Type", 14},
	{"Document Number", 18},
	{"Date", 12},
	{"Client Name", 28},
	{"Client Company", 24},
	{"Client Phone", 14},
	{"Client Email", 22},
	{"Subtotal", 14},
	{"Discount Amount", 14},
	{"GST Amount", 14},
	{"Grand Total", 14},
	{"Items Count", 8},
	{"Notes", 40},
	{"Created Date", 12},
}

// GenerateSummaryExcel writes one row per document.
func GenerateSummaryExcel(summaries []Summary) ([]byte, error) {
	rows := make([][]any, 0, len(summaries))
	for i, s := range summaries {
		rows = append(rows, []any{
			i + 1,
			s.InvoiceType.Label(),
			sanitizeExcelCell(s.DocumentTitle),
			sanitizeExcelCell(s.DocumentNumber),
			DisplayDate(s.Dated),
			sanitizeExcelCell(s.ClientBillTo),
			s.TotalAmount,
			s.GrandTotal,
			createdDate(s.Created),
			createdTime(s.Created),
		})
	}

	return buildWorkbook("summary", []excelSheet{
		{Name: "Bills Summary", Columns: summaryColumns, Rows: rows},
	})
}

// GenerateItemizedExcel writes one row per line item. Every monetary field
// is copied from the bill's breakdown. Bill-level totals appear on the
// first row of each bill only, and a bill without items still gets a row.
func GenerateItemizedExcel(bills []BillExportData) ([]byte, error) {
	columns, rows := itemizedSheet(bills, false)
	return buildWorkbook("itemized", []excelSheet{
		{Name: "Itemized Bills", Columns: columns, Rows: rows},
	})
}

// GenerateDetailedExcel is the itemized layout carrying every stored field:
// company and client addresses and contacts, notes, terms, and the created
// and updated timestamps.
func GenerateDetailedExcel(bills []BillExportData) ([]byte, error) {
	columns, rows := itemizedSheet(bills, true)
	return buildWorkbook("detailed", []excelSheet{
		{Name: "Detailed Bills", Columns: columns, Rows: rows},
	})
}

// GenerateComprehensiveExcel writes a Summary sheet, a per-document
// Detailed sheet and the itemized Items sheet.
func GenerateComprehensiveExcel(bills []BillExportData) ([]byte, error) {
	summary := make([][]any, 0, len(bills))
	detailed := make([][]any, 0, len(bills))
	for i, d := range bills {
		b := d.Bill
		summary = append(summary, []any{
			i + 1,
			b.InvoiceType.Label(),
			sanitizeExcelCell(b.Meta.Number),
			DisplayDate(b.Meta.Dated),
			sanitizeExcelCell(b.Client.BillTo),
			d.Totals.Subtotal,
			d.Totals.GrandTotal,
			createdDate(b.Created),
		})
		detailed = append(detailed, []any{
			i + 1,
			b.InvoiceType.Label(),
			sanitizeExcelCell(b.Meta.Number),
			DisplayDate(b.Meta.Dated),
			sanitizeExcelCell(b.Client.BillTo),
			sanitizeExcelCell(b.Client.CompanyName),
			sanitizeExcelCell(b.Client.Phone),
			sanitizeExcelCell(b.Client.Email),
			d.Totals.Subtotal,
			d.Totals.DiscountAmount,
			d.Totals.TotalGSTAmount,
			d.Totals.GrandTotal,
			len(b.Items),
			sanitizeExcelCell(b.Notes),
			createdDate(b.Created),
		})
	}

	columns, items := itemizedSheet(bills, false)
	return buildWorkbook("comprehensive", []excelSheet{
		{Name: "Summary", Columns: comprehensiveSummaryColumns, Rows: summary},
		{Name: "Detailed", Columns: comprehensiveDetailedColumns, Rows: detailed},
		{Name: "Items", Columns: columns, Rows: items},
	})
}

func itemizedSheet(bills []BillExportData, detailed bool) ([]excelColumn, [][]any) {
	var all []LineItem
	for _, d := range bills {
		all = append(all, d.Bill.Items...)
	}
	customNames := CustomFieldNames(all)

	billColumns := itemizedBillColumns
	if detailed {
		billColumns = detailedBillColumns
	}
	var columns []excelColumn
	columns = append(columns, billColumns...)
	columns = append(columns, itemLineColumns...)
	columns = append(columns, billTotalColumns...)
	if detailed {
		columns = append(columns, detailedTailColumns...)
	}
	for _, name := range customNames {
		columns = append(columns, excelColumn{Header: sanitizeExcelCell(name), Width: 16})
	}

	var rows [][]any
	for bi, d := range bills {
		b := d.Bill
		billCells := itemBillCells(bi+1, b, detailed)
		t := d.Totals
		totalCells := []any{
			t.DiscountPercent,
			t.Subtotal,
			t.DiscountAmount,
			t.SubtotalAfterDiscount,
			t.TotalCGSTAmount,
			t.TotalSGSTAmount,
			t.TotalGSTAmount,
			t.GrandTotal,
			d.AmountInWords,
		}
		if detailed {
			totalCells = append(totalCells,
				sanitizeExcelCell(b.Notes),
				sanitizeExcelCell(b.Terms),
				createdDate(b.Created),
				createdTime(b.Created),
				createdDate(b.Updated),
				createdTime(b.Updated),
			)
		}
		blankTotals := blankCells(len(totalCells))

		if len(d.Items) == 0 {
			row := append([]any{}, billCells...)
			row = append(row, blankCells(len(itemLineColumns))...)
			row = append(row, totalCells...)
			rows = append(rows, row)
			continue
		}

		for ii, it := range d.Items {
			row := append([]any{}, billCells...)
			row = append(row,
				it.SINo,
				it.ID,
				sanitizeExcelCell(it.Description),
				sanitizeExcelCell(it.RoomType),
				it.Rooms,
				it.Rate,
				it.Nights,
				sanitizeExcelCell(it.HSNSAC),
				it.GSTRate,
				it.ItemTotal,
				it.ItemDiscount,
				it.ItemSubtotalAfterDiscount,
				it.ItemCGSTRate,
				it.ItemCGSTAmount,
				it.ItemSGSTRate,
				it.ItemSGSTAmount,
				it.ItemGSTTotal,
				it.ItemGrandTotal,
			)
			if ii == 0 {
				row = append(row, totalCells...)
			} else {
				row = append(row, blankTotals...)
			}
			for _, name := range customNames {
				row = append(row, sanitizeExcelCell(CustomFieldValue(it.CustomFields, name)))
			}
			rows = append(rows, row)
		}
	}
	return columns, rows
}

// itemBillCells follows itemizedBillColumns, or detailedBillColumns when
// detailed is set.
func itemBillCells(sno int, b Bill, detailed bool) []any {
	cells := []any{
		sno,
		b.ID,
		b.InvoiceType.Label(),
		sanitizeExcelCell(b.Meta.Title),
		sanitizeExcelCell(b.Meta.Number),
		DisplayDate(b.Meta.Dated),
		DisplayDate(b.Meta.Arrival),
		DisplayDate(b.Meta.Departure),
		sanitizeExcelCell(b.Meta.PlaceOfSupply),
		sanitizeExcelCell(b.Meta.TermsOfPayment),
		sanitizeExcelCell(b.Company.Name),
	}
	if detailed {
		cells = append(cells,
			sanitizeExcelCell(b.Company.Address),
			sanitizeExcelCell(b.Company.GSTIN),
			sanitizeExcelCell(b.Company.Email),
			sanitizeExcelCell(b.Company.Mobile),
			sanitizeExcelCell(b.Client.BillTo),
			sanitizeExcelCell(b.Client.CompanyName),
			sanitizeExcelCell(b.Client.Address),
		)
	} else {
		cells = append(cells,
			sanitizeExcelCell(b.Company.GSTIN),
			sanitizeExcelCell(b.Client.BillTo),
			sanitizeExcelCell(b.Client.CompanyName),
		)
	}
	return append(cells,
		sanitizeExcelCell(b.Client.GSTNumber),
		sanitizeExcelCell(b.Client.Phone),
		sanitizeExcelCell(b.Client.Email),
	)
}

type excelSheet struct {
	Name    string
	Columns []excelColumn
	Rows    [][]any
}

// buildWorkbook writes each sheet with a styled header row and returns the
// file contents. Failures are reported as *ExportError.
func buildWorkbook(format string, sheets []excelSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, &ExportError{Format: format, Err: fmt.Errorf("create header style: %w", err)}
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, &ExportError{Format: format, Err: fmt.Errorf("create body style: %w", err)}
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, &ExportError{Format: format, Err: fmt.Errorf("set sheet name: %w", err)}
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, &ExportError{Format: format, Err: fmt.Errorf("new sheet %s: %w", sheet.Name, err)}
		}

		if err := writeSheet(f, sheet, headerStyle, bodyStyle); err != nil {
			return nil, &ExportError{Format: format, Err: err}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, &ExportError{Format: format, Err: fmt.Errorf("write excel: %w", err)}
	}

	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet excelSheet, headerStyle, bodyStyle int) error {
	lastCol, err := excelize.ColumnNumberToName(len(sheet.Columns))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}

	headers := make([]any, len(sheet.Columns))
	for i, c := range sheet.Columns {
		headers[i] = c.Header
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet.Name, name, name, c.Width); err != nil {
			return fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	f.SetCellStyle(sheet.Name, "A1", lastCol+"1", headerStyle)

	for i, r := range sheet.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := r
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(sheet.Rows) > 0 {
		f.SetCellStyle(sheet.Name, "A2", fmt.Sprintf("%s%d", lastCol, len(sheet.Rows)+1), bodyStyle)
	}

	return f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func blankCells(n int) []any {
	cells := make([]any, n)
	for i := range cells {
		cells[i] = ""
	}
	return cells
}

func createdDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DisplayDateLayout)
}

func createdTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04:05")
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
