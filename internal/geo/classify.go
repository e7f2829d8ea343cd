// Package geo derives spatial context for geographic keys: centroids from
// geocoded records and a metro-distance density classification.
package geo

// Density classification constants.
const (
	ClassUrbanCore = "urban_core"
	ClassSuburban  = "suburban"
	ClassExurban   = "exurban"
	ClassRural     = "rural"
)

// Distance thresholds for classification (kilometers from the nearest
// major metro center).
const (
	urbanCoreThreshold = 10.0
	suburbanThreshold  = 40.0
	exurbanThreshold   = 100.0
)

// Classify returns the density classification for a point by distance to
// the nearest metro center. Rural keys are the "limited alternative
// funding" signal in the risk narrative.
func Classify(metroKM float64) string {
	switch {
	case metroKM <= urbanCoreThreshold:
		return ClassUrbanCore
	case metroKM <= suburbanThreshold:
		return ClassSuburban
	case metroKM <= exurbanThreshold:
		return ClassExurban
	default:
		return ClassRural
	}
}
