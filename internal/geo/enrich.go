package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"

	"github.com/addis-care/market-cli/internal/model"
)

// Enrich computes per-key centroids and density classifications from the
// records' geocoded coordinates. Keys whose records carry no usable
// coordinates are omitted from the returned map.
func Enrich(records []model.ProviderRecord, g model.Granularity) map[string]model.GeoContext {
	type acc struct {
		latSum, lonSum float64
		n              int
	}
	byKey := make(map[string]*acc)

	for _, rec := range records {
		if !rec.HasCoords {
			continue
		}
		key := rec.Key(g)
		if key == "" {
			continue
		}
		a, ok := byKey[key]
		if !ok {
			a = &acc{}
			byKey[key] = a
		}
		a.latSum += rec.Lat
		a.lonSum += rec.Lon
		a.n++
	}

	out := make(map[string]model.GeoContext, len(byKey))
	for key, a := range byKey {
		lat := a.latSum / float64(a.n)
		lon := a.lonSum / float64(a.n)

		point := geom.NewPointFlat(geom.XY, []float64{lon, lat})
		centroidWKT, err := wkt.Marshal(point)
		if err != nil {
			zap.L().Warn("geo: marshal centroid", zap.String("key", key), zap.Error(err))
			continue
		}

		metro, km := NearestMetro(lat, lon)
		out[key] = model.GeoContext{
			Key:          key,
			CentroidWKT:  centroidWKT,
			Lat:          lat,
			Lon:          lon,
			NearestMetro: metro.Name,
			MetroKM:      km,
			Class:        Classify(km),
		}
	}
	return out
}
