package loader

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// ReadXLSX parses a provider extract from the first sheet of an XLSX
// workbook. The sheet must carry the same header row as the CSV extract.
func ReadXLSX(path string) (*Result, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("loader: xlsx %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("loader: xlsx %s sheet is empty", path)
	}

	header := rowToStrings(sheet.Rows[0])
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if len(cells) == 0 {
			continue
		}
		rec, err := parseRow(cells, idx)
		if err != nil {
			res.Excluded++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	zap.L().Info("loader: xlsx parsed",
		zap.String("path", path),
		zap.Int("records", len(res.Records)),
		zap.Int("excluded", res.Excluded),
	)
	return res, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}
