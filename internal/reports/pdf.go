package reports

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders an estimate report using maroto/v2 and returns the raw
// PDF bytes.
func GeneratePDF(data ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
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

	addTitle(m)
	addProjectDetails(m, data)
	addCostSummary(m, data)
	addBoQTable(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addTitle(m core.Maroto) {
	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New("Construction Cost Estimate", props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addProjectDetails(m core.Maroto, data ReportData) {
	addSectionHeading(m, "Project Details")

	details := [][2]string{
		{"Project Type:", titleCase(data.ProjectType)},
		{"Location:", data.Location},
		{"Size:", fmt.Sprintf("%s %s", formatQty(data.Size), data.SizeUnit)},
		{"Start Month:", fmt.Sprintf("%d", data.StartMonth)},
		{"Duration:", fmt.Sprintf("%d months", data.DurationMonths)},
		{"Generated:", data.GeneratedAt},
	}

	labelStyle := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}
	valueStyle := props.Text{Size: 10, Align: align.Left}

	for _, d := range details {
		m.AddRows(
			row.New(6).Add(
				col.New(4).Add(text.New(d[0], labelStyle)),
				col.New(8).Add(text.New(d[1], valueStyle)),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addCostSummary(m core.Maroto, data ReportData) {
	addSectionHeading(m, "Cost Summary")

	headerBg := &props.Color{Red: 90, Green: 90, Blue: 90}
	headerCell := &props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("Estimate Level", headerText)).WithStyle(headerCell),
			col.New(6).Add(text.New("Cost (EUR)", headerText)).WithStyle(headerCell),
		),
	)

	bodyBg := &props.Color{Red: 245, Green: 243, Blue: 235}
	bodyCell := &props.Cell{BackgroundColor: bodyBg}
	labelText := props.Text{Size: 9, Align: align.Center}
	valueText := props.Text{Size: 9, Align: align.Right}

	summary := []struct {
		label string
		value float64
	}{
		{"Optimistic (P25)", data.Bands.P25},
		{"Most Likely (P50)", data.Bands.P50},
		{"Conservative (P75)", data.Bands.P75},
	}
	for _, s := range summary {
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New(s.label, labelText)).WithStyle(bodyCell),
				col.New(6).Add(text.New(FormatEUR(s.value), valueText)).WithStyle(bodyCell),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addBoQTable(m core.Maroto, data ReportData) {
	addSectionHeading(m, "Bill of Quantities")

	headerBg := &props.Color{Red: 90, Green: 90, Blue: 90}
	headerCell := &props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Material", headerTextLeft)).WithStyle(headerCell),
			col.New(2).Add(text.New("Quantity", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("Total (EUR)", headerText)).WithStyle(headerCell),
		),
	)

	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	for _, r := range data.Rows {
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(r.Material, leftText)),
				col.New(2).Add(text.New(formatQty(r.Quantity), rightText)),
				col.New(1).Add(text.New(r.Unit, baseText)),
				col.New(2).Add(text.New(FormatEUR(r.UnitPrice), rightText)),
				col.New(3).Add(text.New(FormatEUR(r.TotalPrice), rightText)),
			),
		)
	}

	// Total row
	totalBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	totalCell := &props.Cell{BackgroundColor: totalBg}
	totalStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Total (P50)", totalStyle)).WithStyle(totalCell),
			col.New(3).Add(text.New(FormatEUR(data.TotalCost), totalStyle)).WithStyle(totalCell),
		),
	)
}

func addSectionHeading(m core.Maroto, heading string) {
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(heading, props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

func addFooter(m core.Maroto, data ReportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Estimate %s, generated on %s. VAT not included.", data.EstimateID, data.GeneratedAt),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
