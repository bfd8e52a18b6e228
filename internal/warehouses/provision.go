package warehouses

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/ngmaloney/warehouse-map/internal/database"
	"github.com/ngmaloney/warehouse-map/internal/models"
	"go.uber.org/zap"
)

// DefaultURL is the published warehouse feed
const DefaultURL = "https://raw.githubusercontent.com/Grist-Data-Desk/eto-warehouses/refs/heads/main/eto-warehouses.csv"

const sourceName = "warehouses"

// Source says where the warehouse list comes from. A File takes
// precedence over the URL and bypasses the cache.
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
		return &http.Client{Timeout: 30 * time.Second}
	}
	return s.Client
}

// Fetch downloads and parses the feed
func Fetch(ctx context.Context, src Source) ([]models.Warehouse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.url(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := src.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching warehouses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("warehouse feed returned status %d", resp.StatusCode)
	}

	ws, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return ws, nil
}

// Provision downloads the feed and replaces the cached copy. It returns
// the number of rows stored.
func Provision(ctx context.Context, db *sql.DB, src Source, progressChan chan<- string) (int, error) {
	sendProgress := func(msg string) {
		if progressChan != nil {
			progressChan <- msg
		} else {
			zap.L().Info(msg)
		}
	}

	sendProgress(fmt.Sprintf("Downloading warehouse data from %s...", src.url()))
	ws, err := Fetch(ctx, src)
	if err != nil {
		return 0, err
	}

	sendProgress("Building warehouse cache...")
	n, err := Save(db, ws)
	if err != nil {
		return 0, fmt.Errorf("building warehouse cache: %w", err)
	}
	if err := database.RecordSource(db, sourceName, src.url(), n); err != nil {
		return n, err
	}

	sendProgress(fmt.Sprintf("Successfully cached %d warehouses", n))
	return n, nil
}

// Load returns the warehouse list, provisioning the cache at dbPath on
// first use
func Load(ctx context.Context, dbPath string, src Source, progressChan chan<- string) ([]models.Warehouse, error) {
	if src.File != "" {
		return LoadFile(src.File)
	}

	db, err := database.GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	has, err := database.HasRows(db, "warehouses")
	if err != nil {
		return nil, err
	}
	if !has {
		if _, err := Provision(ctx, db, src, progressChan); err != nil {
			return nil, err
		}
	}

	return ReadAll(db)
}
