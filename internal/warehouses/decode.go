// Package warehouses loads the warehouse list from the published CSV feed
// and caches it in the local sqlite database.
package warehouses

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/ngmaloney/warehouse-map/internal/models"
	"go.uber.org/zap"
)

// record is one CSV row. Coordinates stay strings so a single bad row does
// not abort the whole feed.
type record struct {
	Company   string `csv:"Company"`
	Address   string `csv:"Warehouse Address"`
	State     string `csv:"State"`
	Source    string `csv:"Source"`
	Type      string `csv:"Type"`
	Latitude  string `csv:"Latitude"`
	Longitude string `csv:"Longitude"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses the warehouse CSV. Rows without usable coordinates are
// skipped.
func Decode(r io.Reader) ([]models.Warehouse, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var (
		out     []models.Warehouse
		skipped int
	)
	for {
		var rec record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding CSV row: %w", err)
		}

		w, ok := rec.warehouse()
		if !ok {
			skipped++
			continue
		}
		out = append(out, w)
	}

	if skipped > 0 {
		zap.L().Warn("skipped warehouse rows without coordinates", zap.Int("skipped", skipped))
	}
	return out, nil
}

func (r record) warehouse() (models.Warehouse, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
	if err != nil {
		return models.Warehouse{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
	if err != nil {
		return models.Warehouse{}, false
	}

	return models.Warehouse{
		Company:   strings.TrimSpace(r.Company),
		Address:   strings.TrimSpace(r.Address),
		State:     strings.TrimSpace(r.State),
		Source:    strings.TrimSpace(r.Source),
		Type:      strings.TrimSpace(r.Type),
		Latitude:  lat,
		Longitude: lon,
	}, true
}

// LoadFile reads a local copy of the feed
func LoadFile(path string) ([]models.Warehouse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse file: %w", err)
	}
	defer f.Close()

	ws, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ws, nil
}
