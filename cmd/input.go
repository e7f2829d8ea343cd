package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/addis-care/market-cli/internal/loader"
	"github.com/addis-care/market-cli/internal/model"
	"github.com/addis-care/market-cli/internal/revenue"
)

// loadRecords reads a provider extract, picking the parser by extension.
func loadRecords(path string) (*loader.Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loader.ReadCSV(path)
	case ".xlsx":
		return loader.ReadXLSX(path)
	default:
		return nil, eris.Errorf("unsupported input format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// loadScenarios reads scenarios from a YAML file, or falls back to the
// published defaults when no file is given.
func loadScenarios(path string) ([]model.ScenarioConfig, error) {
	if path == "" {
		return revenue.DefaultScenarios(), nil
	}
	return revenue.LoadScenarios(path)
}
