package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// nominatimResponse represents one element of the Nominatim search response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// searchURL builds the /search request for a free-text query
func (g *Gateway) searchURL(query string, limit int) string {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("countrycodes", countryCodes)
	params.Set("limit", strconv.Itoa(limit))

	return strings.TrimRight(g.baseURL, "/") + "/search?" + params.Encode()
}

// fetch performs one rate-limited request against Nominatim
func (g *Gateway) fetch(ctx context.Context, query string, limit int) ([]models.GeocodeHit, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocoding: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.searchURL(query, limit), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocoding: build request")
	}

	// Nominatim usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocoding: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("geocoding: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocoding: read body")
	}

	var results []nominatimResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "geocoding: parse response")
	}

	hits := make([]models.GeocodeHit, 0, len(results))
	for _, r := range results {
		hit, err := r.hit()
		if err != nil {
			g.logger().Debug("dropping geocode result", zap.Error(err))
			continue
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

func (r nominatimResponse) hit() (models.GeocodeHit, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return models.GeocodeHit{}, fmt.Errorf("parsing latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return models.GeocodeHit{}, fmt.Errorf("parsing longitude %q: %w", r.Lon, err)
	}

	return models.GeocodeHit{DisplayName: r.DisplayName, Lat: lat, Lon: lon}, nil
}
