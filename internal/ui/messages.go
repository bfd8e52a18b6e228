package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/warehouse-map/internal/boundaries"
	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/warehouses"
)

// Message types for async operations

// loadStartedMsg carries the channels of a running data load
type loadStartedMsg struct {
	progressChan <-chan string
	resultChan   <-chan loadResultMsg
}

// loadProgressMsg is a provisioning progress line
type loadProgressMsg string

// loadResultMsg is sent once warehouses and boundaries are both loaded
type loadResultMsg struct {
	warehouses []models.Warehouse
	boundaries boundaries.Set
	err        error
}

// debounceMsg fires when the typing pause for seq has elapsed
type debounceMsg struct {
	seq uint64
}

// suggestionsMsg carries autocomplete hits for request seq
type suggestionsMsg struct {
	seq  uint64
	hits []models.GeocodeHit
}

// searchResultMsg carries the hits of direct search seq
type searchResultMsg struct {
	seq  uint64
	hits []models.GeocodeHit
}

// frameMsg drives zoom/pan animation
type frameMsg time.Time

// frameInterval is roughly 60 frames per second
const frameInterval = time.Second / 60

// searchTimeout bounds one geocoding request, rate-limit wait included
const searchTimeout = 15 * time.Second

// Searcher is the geocoding dependency of the UI
type Searcher interface {
	Search(ctx context.Context, query string, limit int) []models.GeocodeHit
}

// DataSources says where startup data comes from
type DataSources struct {
	DBPath     string
	Warehouses warehouses.Source
	Boundaries boundaries.Source
}

// startLoading loads warehouses and boundaries concurrently. Progress lines
// from first-run provisioning are streamed on progressChan.
func startLoading(src DataSources) tea.Cmd {
	return func() tea.Msg {
		progressChan := make(chan string, 16)
		resultChan := make(chan loadResultMsg, 1)

		go func() {
			defer close(progressChan)

			var res loadResultMsg
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() error {
				ws, err := warehouses.Load(ctx, src.DBPath, src.Warehouses, progressChan)
				res.warehouses = ws
				return err
			})
			g.Go(func() error {
				set, err := boundaries.Load(ctx, src.DBPath, src.Boundaries, progressChan)
				res.boundaries = set
				return err
			})
			res.err = g.Wait()
			if res.err != nil {
				zap.L().Error("loading map data failed", zap.Error(res.err))
			} else {
				zap.L().Info("map data loaded",
					zap.Int("warehouses", len(res.warehouses)),
					zap.Int("boundaries", len(res.boundaries.States)),
				)
			}
			resultChan <- res
		}()

		return loadStartedMsg{progressChan: progressChan, resultChan: resultChan}
	}
}

// waitForLoadProgress waits for the next progress line. It returns nil
// once the channel is closed.
func waitForLoadProgress(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return loadProgressMsg(line)
	}
}

// waitForLoadResult waits for the load to finish
func waitForLoadResult(ch <-chan loadResultMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// debounce waits d and then reports seq as due
func debounce(seq uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// fetchSuggestions runs an autocomplete lookup in the background
func fetchSuggestions(s Searcher, seq uint64, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		return suggestionsMsg{seq: seq, hits: s.Search(ctx, query, limit)}
	}
}

// directSearch runs a single-result lookup in the background
func directSearch(s Searcher, seq uint64, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		return searchResultMsg{seq: seq, hits: s.Search(ctx, query, limit)}
	}
}

// nextFrame schedules the next animation frame
func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
