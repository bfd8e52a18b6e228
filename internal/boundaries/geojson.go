package boundaries

import (
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// LoadGeoJSON reads a FeatureCollection of state outlines. The state id is
// the feature id, or else a GEOID/STATEFP property; the name comes from a
// name/NAME property.
func LoadGeoJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading geojson %s: %w", path, err)
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON is LoadGeoJSON for in-memory data
func ParseGeoJSON(data []byte) (Set, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Set{}, fmt.Errorf("parsing geojson: %w", err)
	}

	var set Set
	for _, f := range fc.Features {
		mp, ok := toMultiPolygon(f.Geometry)
		if !ok {
			zap.L().Debug("skipping non-areal feature", zap.Any("id", f.ID))
			continue
		}
		set.States = append(set.States, State{
			GEOID:    featureID(f),
			Name:     firstString(f.Properties, "name", "NAME"),
			Abbr:     firstString(f.Properties, "STUSPS", "abbr"),
			Geometry: mp,
		})
	}
	return set, nil
}

func featureID(f *geojson.Feature) string {
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%02d", int(id))
	}
	if v := firstString(f.Properties, "GEOID", "STATEFP", "id"); v != "" {
		return v
	}
	if n, ok := f.Properties["GEOID"].(float64); ok {
		return fmt.Sprintf("%02d", int(n))
	}
	return ""
}

func firstString(props geojson.Properties, keys ...string) string {
	for _, k := range keys {
		switch v := props[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
