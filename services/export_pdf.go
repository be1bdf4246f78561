package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	mutedColor  = &props.Color{Red: 100, Green: 100, Blue: 100}
	darkColor   = &props.Color{Red: 33, Green: 37, Blue: 41}
	whiteColor  = &props.Color{Red: 255, Green: 255, Blue: 255}
	panelColor  = &props.Color{Red: 245, Green: 243, Blue: 239}
	stripeColor = &props.Color{Red: 248, Green: 249, Blue: 250}
)

// GenerateBillPDF renders a quotation or invoice as an A4 PDF using maroto/v2.
// It returns the raw PDF bytes or an *ExportError.
func GenerateBillPDF(data BillExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBillHeader(m, data)
	addBillParties(m, data)
	addBillItemsTable(m, data)
	addBillTotals(m, data)
	addBillAmountInWords(m, data)
	addBillNotes(m, data)
	addBillSignatory(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}

	return doc.GetBytes(), nil
}

// addBillHeader adds the letterhead, company block and document heading.
func addBillHeader(m core.Maroto, data BillExportData) {
	b := data.Bill

	if lh := strings.TrimSpace(b.Meta.LetterHead); lh != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(lh, props.Text{
					Size:  8,
					Align: align.Center,
					Color: mutedColor,
				})),
			),
		)
	}

	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(b.Company.Name, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New(data.Heading, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: darkColor,
				}),
			),
		),
	)

	small := props.Text{Size: 8, Align: align.Left, Color: mutedColor}
	contact := joinNonEmpty([]string{
		fmtField("GSTIN", b.Company.GSTIN),
		fmtField("Email", b.Company.Email),
		fmtField("Mobile", b.Company.Mobile),
	}, " | ")

	m.AddRows(
		row.New(8).Add(
			col.New(7).Add(text.New(b.Company.Address, small)),
			col.New(5).Add(text.New(fmt.Sprintf("No: %s", b.Meta.Number), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)
	if contact != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(contact, small))))
	}

	m.AddRows(row.New(3))
}

// addBillParties adds the client block on the left and document details on
// the right.
func addBillParties(m core.Maroto, data BillExportData) {
	b := data.Bill

	sectionLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor}
	rightLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: mutedColor}
	valueStyle := props.Text{Size: 8, Align: align.Left}
	rightValue := props.Text{Size: 8, Align: align.Right}
	headerCell := &props.Cell{BackgroundColor: panelColor}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("BILL TO", sectionLabel)).WithStyle(headerCell),
			col.New(6).Add(text.New("DETAILS", rightLabel)).WithStyle(headerCell),
		),
	)

	left := []string{
		b.Client.BillTo,
		b.Client.CompanyName,
		b.Client.Address,
		fmtField("GSTIN", b.Client.GSTNumber),
		fmtField("Phone", b.Client.Phone),
		fmtField("Email", b.Client.Email),
	}
	right := []struct{ label, value string }{
		{"Dated", DisplayDate(b.Meta.Dated)},
		{"Document Type", b.Meta.DocumentType},
		{"Stay", data.StayDates()},
		{"Place of Supply", b.Meta.PlaceOfSupply},
		{"Terms of Payment", b.Meta.TermsOfPayment},
	}

	var lefts []string
	for _, l := range left {
		if strings.TrimSpace(l) != "" {
			lefts = append(lefts, l)
		}
	}
	var rights []struct{ label, value string }
	for _, r := range right {
		if strings.TrimSpace(r.value) != "" {
			rights = append(rights, r)
		}
	}

	n := max(len(lefts), len(rights))
	for i := 0; i < n; i++ {
		l, rl, rv := "", "", ""
		if i < len(lefts) {
			l = lefts[i]
		}
		if i < len(rights) {
			rl, rv = rights[i].label+":", rights[i].value
		}
		ls := valueStyle
		if i == 0 {
			ls.Style = fontstyle.Bold
		}
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(text.New(l, ls)),
				col.New(3).Add(text.New(rl, rightLabel)),
				col.New(3).Add(text.New(rv, rightValue)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addBillItemsTable adds the line items. Tax invoices get GST rate and GST
// amount columns.
func addBillItemsTable(m core.Maroto, data BillExportData) {
	tax := data.Bill.InvoiceType.IsTax()

	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: whiteColor}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerCell := &props.Cell{BackgroundColor: darkColor}

	descWidth := 5
	if tax {
		descWidth = 3
	}

	header := []core.Col{
		col.New(1).Add(text.New("SI No", headerText)).WithStyle(headerCell),
		col.New(descWidth).Add(text.New("Description", headerLeft)).WithStyle(headerCell),
		col.New(1).Add(text.New("HSN/SAC", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("Rooms", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("Rate", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("Nights", headerText)).WithStyle(headerCell),
	}
	if tax {
		header = append(header,
			col.New(1).Add(text.New("GST%", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("GST Amt", headerText)).WithStyle(headerCell),
		)
	}
	header = append(header, col.New(2).Add(text.New("Amount", headerText)).WithStyle(headerCell))
	m.AddRows(row.New(8).Add(header...))

	for i, item := range data.Items {
		center := props.Text{Size: 7, Align: align.Center}
		left := props.Text{Size: 7, Align: align.Left}
		right := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: stripeColor}
		}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.SINo), center)),
			col.New(descWidth).Add(text.New(itemDescription(item.LineItem), left)),
			col.New(1).Add(text.New(item.HSNSAC, center)),
			col.New(1).Add(text.New(FormatQty(item.Rooms), right)),
			col.New(1).Add(text.New(FormatINR(item.Rate), right)),
			col.New(1).Add(text.New(FormatQty(item.Nights), right)),
		}
		if tax {
			cols = append(cols,
				col.New(1).Add(text.New(FormatPercent(item.GSTRate), center)),
				col.New(1).Add(text.New(FormatINR(item.ItemGSTTotal), right)),
			)
		}
		cols = append(cols, col.New(2).Add(text.New(FormatINR(item.ItemTotal), right)))

		if cellStyle != nil {
			for _, c := range cols {
				c.WithStyle(cellStyle)
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(2))
}

// itemDescription joins the description, room type and custom fields into
// the single description cell.
func itemDescription(it LineItem) string {
	parts := []string{it.Description}
	if it.RoomType != "" {
		parts = append(parts, "("+it.RoomType+")")
	}
	for _, cf := range it.CustomFields {
		parts = append(parts, fmtField(cf.Name, cf.Value))
	}
	return joinNonEmpty(parts, " ")
}

// addBillTotals adds the right-aligned totals block.
func addBillTotals(m core.Maroto, data BillExportData) {
	t := data.Totals
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	lines := []struct{ label, value string }{
		{"Subtotal", FormatINR(t.Subtotal)},
	}
	if t.DiscountPercent != 0 {
		lines = append(lines,
			struct{ label, value string }{fmt.Sprintf("Discount (%s)", FormatPercent(t.DiscountPercent)), "- " + FormatINR(t.DiscountAmount)},
			struct{ label, value string }{"Subtotal After Discount", FormatINR(t.SubtotalAfterDiscount)},
		)
	}
	if t.InvoiceType.IsTax() {
		half := data.EffectiveGSTRate / 2
		lines = append(lines,
			struct{ label, value string }{fmt.Sprintf("CGST (%s)", FormatPercent(half)), FormatINR(t.TotalCGSTAmount)},
			struct{ label, value string }{fmt.Sprintf("SGST (%s)", FormatPercent(half)), FormatINR(t.TotalSGSTAmount)},
			struct{ label, value string }{"Total GST", FormatINR(t.TotalGSTAmount)},
		)
	}

	for _, l := range lines {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(l.label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(l.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandCell := &props.Cell{BackgroundColor: darkColor}
	grandStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: whiteColor}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(t.GrandTotal), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

func addBillAmountInWords(m core.Maroto, data BillExportData) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount Chargeable (in words): %s", data.AmountInWords), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)
	m.AddRows(row.New(3))
}

// addBillNotes adds the notes and terms sections when present.
func addBillNotes(m core.Maroto, data BillExportData) {
	sectionLabel := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: darkColor}
	body := props.Text{Size: 8, Align: align.Left}

	sections := []struct{ label, value string }{
		{"NOTES", data.Bill.Notes},
		{"TERMS & CONDITIONS", data.Bill.Terms},
	}
	for _, s := range sections {
		if strings.TrimSpace(s.value) == "" {
			continue
		}
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New(s.label, sectionLabel))))
		for _, line := range strings.Split(s.value, "\n") {
			m.AddRows(row.New(5).Add(col.New(12).Add(text.New(strings.TrimRight(line, "\r"), body))))
		}
		m.AddRows(row.New(3))
	}
}

func addBillSignatory(m core.Maroto, data BillExportData) {
	right := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	muted := props.Text{Size: 7, Align: align.Right, Color: mutedColor}

	m.AddRows(row.New(7).Add(col.New(12).Add(text.New(data.CompanyFooter(), right))))
	m.AddRows(row.New(12))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("Authorised Signatory", muted))))
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("This is a Computer Generated Invoice", props.Text{
			Size:  7,
			Align: align.Center,
			Color: mutedColor,
		}))),
	)
}
