// Package geocoding turns free-text addresses into coordinates through the
// Nominatim search API.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/ngmaloney/warehouse-map/internal/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://nominatim.openstreetmap.org"
	DefaultClientID = "Grist EtO Warehouse Map/1.0"
	DefaultContact  = "caldern@grist.org"

	// DefaultLimit is used when a caller passes limit <= 0
	DefaultLimit = 5

	countryCodes = "us,pr"
)

// ErrEmptyQuery is returned by Lookup for a blank query
var ErrEmptyQuery = errors.New("geocoding: query cannot be empty")

// Gateway issues geocoding requests. It is safe for concurrent use.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	cache      *expirable.LRU[string, []models.GeocodeHit]
	log        *zap.Logger
}

// Option configures the gateway
type Option func(*Gateway)

// WithBaseURL points the gateway at another Nominatim instance
func WithBaseURL(u string) Option {
	return func(g *Gateway) {
		g.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default client
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the client identifier and contact address sent in
// the User-Agent header
func WithUserAgent(clientID, contact string) Option {
	return func(g *Gateway) {
		g.userAgent = userAgent(clientID, contact)
	}
}

// WithRateLimit sets the maximum requests per second
func WithRateLimit(rps float64) Option {
	return func(g *Gateway) {
		if rps <= 0 {
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCache sets the size and TTL of the in-memory result cache.
// A size <= 0 disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(g *Gateway) {
		if size <= 0 {
			g.cache = nil
			return
		}
		g.cache = expirable.NewLRU[string, []models.GeocodeHit](size, nil, ttl)
	}
}

// WithLogger sets the logger; the global zap logger is used otherwise
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		g.log = l
	}
}

// NewGateway creates a gateway with Nominatim's public usage policy
// defaults: one request per second and an identifying User-Agent.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent(DefaultClientID, DefaultContact),
		limiter:    rate.NewLimiter(1, 1),
		cache:      expirable.NewLRU[string, []models.GeocodeHit](256, nil, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Search returns up to limit hits for query in service order. It never
// fails: any error is logged and yields an empty slice.
func (g *Gateway) Search(ctx context.Context, query string, limit int) []models.GeocodeHit {
	hits, err := g.Lookup(ctx, query, limit)
	if err != nil {
		if !errors.Is(err, ErrEmptyQuery) {
			g.logger().Warn("geocoding failed", zap.String("query", query), zap.Error(err))
		}
		return []models.GeocodeHit{}
	}
	return hits
}

// Lookup is Search with the failure cause kept
func (g *Gateway) Lookup(ctx context.Context, query string, limit int) ([]models.GeocodeHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := cacheKey(query, limit)
	if g.cache != nil {
		if hits, ok := g.cache.Get(key); ok {
			g.logger().Debug("geocode cache hit", zap.String("query", query), zap.Int("hits", len(hits)))
			return cloneHits(hits), nil
		}
	}

	start := time.Now()
	hits, err := g.fetch(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	g.logger().Debug("geocoded",
		zap.String("query", query),
		zap.Int("limit", limit),
		zap.Int("hits", len(hits)),
		zap.Duration("took", time.Since(start)),
	)

	if g.cache != nil {
		g.cache.Add(key, cloneHits(hits))
	}
	return hits, nil
}

func (g *Gateway) logger() *zap.Logger {
	if g.log != nil {
		return g.log
	}
	return zap.L()
}

func userAgent(clientID, contact string) string {
	if contact == "" {
		return clientID
	}
	return fmt.Sprintf("%s (contact: %s)", clientID, contact)
}

func cloneHits(hits []models.GeocodeHit) []models.GeocodeHit {
	out := make([]models.GeocodeHit, len(hits))
	copy(out, hits)
	return out
}
