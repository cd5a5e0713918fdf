package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/cardwise-api/internal/domain/advisor"
	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/pkg/money"
)

const exportSheet = "Analysis"

// ExportExcel renders a report as a single-sheet workbook: spending
// breakdown, insights, then the recommendation table.
func ExportExcel(rep *advisor.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	row := 1
	setRow := func(values ...any) {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetSheetRow(exportSheet, cell, &values)
		row++
	}

	setRow("Spending Analysis")
	setRow("Generated", rep.Metadata.GeneratedAt.Format("2006-01-02 15:04"))
	setRow("Total spending", money.Format(rep.TotalSpending))
	setRow("Data quality", rep.DataQuality, rep.Metadata.ConfidenceLevel)
	row++

	setRow("Category", "Total", "Monthly average")
	for _, category := range sortedCategories(rep) {
		setRow(category.Label(),
			money.Format(rep.SpendingBreakdown[category]),
			money.Format(rep.MonthlyAverages[category]),
		)
	}
	row++

	if len(rep.Insights) > 0 {
		setRow("Insights")
		for _, insight := range rep.Insights {
			setRow(insight)
		}
		row++
	}

	if len(rep.Recommendations) > 0 {
		setRow("Recommended cards")
		setRow("Card", "Issuer", "Annual value", "Net benefit", "First year", "Confidence")
		for _, rec := range rep.Recommendations {
			setRow(rec.Offer.Name, rec.Offer.Issuer,
				money.Format(rec.AnnualValue),
				money.Format(rec.NetAnnualBenefit),
				money.Format(rec.FirstYearValue),
				rec.ConfidenceScore,
			)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sortedCategories orders breakdown rows by total descending, then name.
func sortedCategories(rep *advisor.Report) []analysis.Category {
	categories := make([]analysis.Category, 0, len(rep.SpendingBreakdown))
	for category := range rep.SpendingBreakdown {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		ti, tj := rep.SpendingBreakdown[categories[i]], rep.SpendingBreakdown[categories[j]]
		if ti != tj {
			return ti > tj
		}
		return categories[i] < categories[j]
	})
	return categories
}
