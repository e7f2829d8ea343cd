package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/addis-care/market-cli/internal/model"
)

// WriteXLSX writes the full result as a workbook: one sheet each for risk,
// revenue, and opportunity tables.
func WriteXLSX(path string, result *model.AnalysisResult) error {
	f := xlsx.NewFile()

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"Risk", RiskHeader, RiskRows(result)},
		{"Revenue", RevenueHeader, RevenueRows(result)},
		{"Opportunity", OpportunityHeader, OpportunityRows(result)},
	}

	for _, s := range sheets {
		sheet, err := f.AddSheet(s.name)
		if err != nil {
			return eris.Wrapf(err, "report: add sheet %s", s.name)
		}
		addRow(sheet, s.header)
		for _, row := range s.rows {
			addRow(sheet, row)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save xlsx %s", path)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, value := range cells {
		row.AddCell().SetString(value)
	}
}
