package boundaries

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// readShapefile converts every polygon record of a Census state shapefile
func readShapefile(shapefilePath string) ([]State, error) {
	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	fields := fieldIndex(shape.Fields())
	geoidField, ok := fields["GEOID"]
	if !ok {
		geoidField, ok = fields["STATEFP"]
	}
	if !ok {
		return nil, fmt.Errorf("shapefile has no GEOID or STATEFP attribute")
	}

	var states []State
	for shape.Next() {
		n, p := shape.Shape()

		polygon, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		st := State{
			GEOID:    attribute(shape, n, geoidField),
			Geometry: polygonToOrb(polygon),
		}
		if i, ok := fields["NAME"]; ok {
			st.Name = attribute(shape, n, i)
		}
		if i, ok := fields["STUSPS"]; ok {
			st.Abbr = attribute(shape, n, i)
		}
		if len(st.Geometry) == 0 {
			zap.L().Debug("skipping empty shape", zap.String("geoid", st.GEOID))
			continue
		}
		states = append(states, st)
	}

	return states, nil
}

func fieldIndex(fields []shp.Field) map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(string(f.Name[:]), "\x00")
		idx[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return idx
}

func attribute(shape *shp.Reader, row, field int) string {
	return strings.TrimSpace(strings.Trim(shape.ReadAttribute(row, field), "\x00"))
}

// polygonToOrb splits the shapefile parts into rings. Shapefile outer rings
// are clockwise; each starts a new polygon and counter-clockwise rings are
// holes of the polygon before them.
func polygonToOrb(polygon *shp.Polygon) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for partIdx := 0; partIdx < len(polygon.Parts); partIdx++ {
		startIdx := int(polygon.Parts[partIdx])
		endIdx := len(polygon.Points)
		if partIdx+1 < len(polygon.Parts) {
			endIdx = int(polygon.Parts[partIdx+1])
		}
		if endIdx-startIdx < 4 {
			continue
		}

		ring := make(orb.Ring, 0, endIdx-startIdx)
		for i := startIdx; i < endIdx; i++ {
			pt := polygon.Points[i]
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}

		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			last := len(mp) - 1
			mp[last] = append(mp[last], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	return mp
}

// unzipFile extracts a zip file to a destination directory
func unzipFile(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)

		// Check for ZipSlip vulnerability
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}
		if err := extractFile(f, fpath); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, fpath string) error {
	outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer outFile.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(outFile, rc)
	return err
}

// findShapefile returns the first .shp file under dir
func findShapefile(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found == "" && !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".shp") {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no .shp file in archive")
	}
	return found, nil
}
