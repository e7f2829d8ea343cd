// Package loader reads provider extracts into ProviderRecord values.
// Malformed rows are counted and skipped, never fatal to the run.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/addis-care/market-cli/internal/model"
)

// ErrInvalidRecord marks a malformed input row. Rows carrying it are
// excluded from aggregation and surfaced through Result.Excluded.
var ErrInvalidRecord = eris.New("loader: invalid record")

// Result holds parsed records plus the count of rows dropped as malformed.
type Result struct {
	Records  []model.ProviderRecord
	Excluded int
}

// Column names recognized in the extract header. The NPPES-derived CSVs
// are not consistent about naming, so aliases map to canonical fields.
var columnAliases = map[string]string{
	"npi":                "npi",
	"org_or_person_name": "name",
	"name":               "name",
	"provider_name":      "name",
	"address_full":       "address",
	"address":            "address",
	"city":               "city",
	"state":              "state",
	"zip":                "zip",
	"zip_code":           "zip",
	"lat":                "lat",
	"latitude":           "lat",
	"lon":                "lon",
	"lng":                "lon",
	"longitude":          "lon",
	"provider_type":      "type",
	"type":               "type",
	"medicare_enrolled":  "medicare",
	"medicaid_enrolled":  "medicaid",
}

// ReadCSV parses a provider extract from a CSV file.
func ReadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "loader: read header")
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row is an excluded record, not a
			// failed run.
			res.Excluded++
			continue
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			res.Excluded++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	zap.L().Info("loader: csv parsed",
		zap.String("path", path),
		zap.Int("records", len(res.Records)),
		zap.Int("excluded", res.Excluded),
	)
	return res, nil
}

// headerIndex maps canonical field names to column positions.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if canonical, ok := columnAliases[name]; ok {
			if _, dup := idx[canonical]; !dup {
				idx[canonical] = i
			}
		}
	}
	for _, required := range []string{"state", "zip", "type"} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("loader: required column %q not found in header", required)
		}
	}
	return idx, nil
}

// parseRow converts one CSV row into a ProviderRecord.
func parseRow(row []string, idx map[string]int) (model.ProviderRecord, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	state := strings.ToUpper(field("state"))
	zip := normalizeZIP(field("zip"))
	if state == "" && zip == "" {
		return model.ProviderRecord{}, eris.Wrap(ErrInvalidRecord, "missing geographic key")
	}

	ptype, err := model.ParseProviderType(field("type"))
	if err != nil {
		return model.ProviderRecord{}, eris.Wrap(ErrInvalidRecord, "bad provider type")
	}

	rec := model.ProviderRecord{
		NPI:     field("npi"),
		Name:    field("name"),
		Address: field("address"),
		City:    field("city"),
		State:   state,
		ZIP:     zip,
		Type:    ptype,
	}

	if lat, lon, ok := parseCoords(field("lat"), field("lon")); ok {
		rec.Lat, rec.Lon, rec.HasCoords = lat, lon, true
	}
	rec.MedicareEnrolled = parseFlag(field("medicare"))
	rec.MedicaidEnrolled = parseFlag(field("medicaid"))

	return rec, nil
}

// normalizeZIP trims ZIP+4 suffixes and left-pads short ZIPs that lost
// leading zeros in a spreadsheet round trip.
func normalizeZIP(zip string) string {
	if i := strings.IndexByte(zip, '-'); i >= 0 {
		zip = zip[:i]
	}
	if zip == "" {
		return ""
	}
	if len(zip) > 5 {
		zip = zip[:5]
	}
	for len(zip) < 5 {
		zip = "0" + zip
	}
	return zip
}

func parseCoords(latS, lonS string) (float64, float64, bool) {
	if latS == "" || lonS == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(lonS, 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

func parseFlag(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return nil
	}
	return &v
}
