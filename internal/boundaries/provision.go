package boundaries

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ngmaloney/warehouse-map/internal/database"
	"go.uber.org/zap"
)

// DefaultURL is the Census 1:20,000,000 cartographic boundary file for
// states, Puerto Rico included
const DefaultURL = "https://www2.census.gov/geo/tiger/GENZ2023/shp/cb_2023_us_state_20m.zip"

const sourceName = "state_boundaries"

// Source says where outlines come from. A File (GeoJSON) takes precedence
// over the URL and bypasses the cache.
type Source struct {
	URL    string
	File   string
	Client *http.Client
}

func (s Source) url() string {
	if s.URL == "" {
		return DefaultURL
	}
	return s.URL
}

func (s Source) client() *http.Client {
	if s.Client == nil {
		return &http.Client{Timeout: 60 * time.Second}
	}
	return s.Client
}

// Provision downloads the shapefile archive and replaces the cached
// outlines. It returns the number of states stored.
func Provision(ctx context.Context, db *sql.DB, src Source, progressChan chan<- string) (int, error) {
	sendProgress := func(msg string) {
		if progressChan != nil {
			progressChan <- msg
		} else {
			zap.L().Info(msg)
		}
	}

	workDir, err := os.MkdirTemp("", "warehouse-map-boundaries")
	if err != nil {
		return 0, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	zipPath := filepath.Join(workDir, "states.zip")
	sendProgress(fmt.Sprintf("Downloading state boundaries from %s...", src.url()))
	if err := downloadFile(ctx, src, zipPath); err != nil {
		return 0, fmt.Errorf("downloading shapefile: %w", err)
	}

	sendProgress("Extracting shapefile...")
	extractDir := filepath.Join(workDir, "shp")
	if err := unzipFile(zipPath, extractDir); err != nil {
		return 0, fmt.Errorf("extracting shapefile: %w", err)
	}
	shapefilePath, err := findShapefile(extractDir)
	if err != nil {
		return 0, err
	}

	sendProgress("Building state boundaries cache...")
	states, err := readShapefile(shapefilePath)
	if err != nil {
		return 0, err
	}
	n, err := Save(db, states)
	if err != nil {
		return 0, fmt.Errorf("building boundaries cache: %w", err)
	}
	if err := database.RecordSource(db, sourceName, src.url(), n); err != nil {
		return n, err
	}

	sendProgress(fmt.Sprintf("Successfully cached %d state boundaries", n))
	return n, nil
}

func downloadFile(ctx context.Context, src Source, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.url(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := src.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// Load returns the outlines, provisioning the cache at dbPath on first use
func Load(ctx context.Context, dbPath string, src Source, progressChan chan<- string) (Set, error) {
	if src.File != "" {
		return LoadGeoJSON(src.File)
	}

	db, err := database.GetDB(dbPath)
	if err != nil {
		return Set{}, fmt.Errorf("opening database: %w", err)
	}

	has, err := database.HasRows(db, sourceName)
	if err != nil {
		return Set{}, err
	}
	if !has {
		if _, err := Provision(ctx, db, src, progressChan); err != nil {
			return Set{}, err
		}
	}

	states, err := ReadAll(db)
	if err != nil {
		return Set{}, err
	}
	return Set{States: states}, nil
}
