package boundaries

import (
	"database/sql"
	"fmt"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Save replaces the cached outlines. Geometry is stored as GeoJSON text.
func Save(db *sql.DB, states []State) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on error

	if _, err := tx.Exec("DELETE FROM state_boundaries"); err != nil {
		return 0, fmt.Errorf("clearing state_boundaries: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO state_boundaries (
			geoid, name, stusps, geometry,
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, st := range states {
		geometryJSON, err := geojson.NewGeometry(st.Geometry).MarshalJSON()
		if err != nil {
			zap.L().Warn("marshaling geometry", zap.String("geoid", st.GEOID), zap.Error(err))
			continue
		}

		bbox := st.Geometry.Bound()
		_, err = stmt.Exec(st.GEOID, st.Name, st.Abbr, string(geometryJSON),
			bbox.Min.Lat(), bbox.Max.Lat(), bbox.Min.Lon(), bbox.Max.Lon())
		if err != nil {
			zap.L().Warn("inserting state boundary", zap.String("geoid", st.GEOID), zap.Error(err))
			continue
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// ReadAll returns the cached outlines ordered by GEOID
func ReadAll(db *sql.DB) ([]State, error) {
	rows, err := db.Query("SELECT geoid, name, stusps, geometry FROM state_boundaries ORDER BY geoid")
	if err != nil {
		return nil, fmt.Errorf("querying state boundaries: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var st State
		var abbr sql.NullString
		var geometryJSON string
		if err := rows.Scan(&st.GEOID, &st.Name, &abbr, &geometryJSON); err != nil {
			return nil, fmt.Errorf("scanning state boundary: %w", err)
		}
		st.Abbr = abbr.String

		g, err := geojson.UnmarshalGeometry([]byte(geometryJSON))
		if err != nil {
			return nil, fmt.Errorf("parsing geometry for %s: %w", st.GEOID, err)
		}
		mp, ok := toMultiPolygon(g.Geometry())
		if !ok {
			return nil, fmt.Errorf("unexpected geometry type %s for %s", g.Type, st.GEOID)
		}
		st.Geometry = mp
		states = append(states, st)
	}
	return states, rows.Err()
}
