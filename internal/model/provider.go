// Package model defines the core data types shared across the analysis pipeline.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ProviderType is the provider category from the NPPES extract.
type ProviderType string

const (
	// ProviderHCBS is a Home and Community-Based Services agency.
	ProviderHCBS ProviderType = "HCBS"
	// ProviderALF is an Assisted Living Facility.
	ProviderALF ProviderType = "ALF"
)

// AllProviderTypes returns the known provider types in stable order.
func AllProviderTypes() []ProviderType {
	return []ProviderType{ProviderALF, ProviderHCBS}
}

// ParseProviderType normalizes a raw provider_type field.
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HCBS":
		return ProviderHCBS, nil
	case "ALF":
		return ProviderALF, nil
	default:
		return "", eris.Errorf("model: unknown provider type %q", s)
	}
}

// Granularity selects the geographic grouping key.
type Granularity string

const (
	GranularityZIP   Granularity = "zip"
	GranularityState Granularity = "state"
)

// ParseGranularity normalizes a granularity flag value.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zip":
		return GranularityZIP, nil
	case "state":
		return GranularityState, nil
	default:
		return "", eris.Errorf("model: granularity must be zip or state (got %q)", s)
	}
}

// ProviderRecord is one row of the provider extract. Records are created at
// load and never mutated.
type ProviderRecord struct {
	NPI     string       `json:"npi"`
	Name    string       `json:"name"`
	Address string       `json:"address,omitempty"`
	City    string       `json:"city,omitempty"`
	State   string       `json:"state"`
	ZIP     string       `json:"zip"`
	Type    ProviderType `json:"provider_type"`

	// Geocoded coordinates; valid only when HasCoords is true.
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
	HasCoords bool    `json:"has_coords,omitempty"`

	// Enrollment flags from the Medicare/Medicaid enrichment; nil when the
	// extract was not enriched.
	MedicareEnrolled *bool `json:"medicare_enrolled,omitempty"`
	MedicaidEnrolled *bool `json:"medicaid_enrolled,omitempty"`
}

// Key returns the record's grouping key for the given granularity, or ""
// when the field is missing.
func (r ProviderRecord) Key(g Granularity) string {
	if g == GranularityState {
		return strings.TrimSpace(r.State)
	}
	return strings.TrimSpace(r.ZIP)
}
