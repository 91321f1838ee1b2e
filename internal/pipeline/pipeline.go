// Package pipeline drives the fetch-parse-publish refresh cycle and holds
// the latest normalized observation for the API layer.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/marine-obs-service/internal/domain"
	"github.com/couchcryptid/marine-obs-service/internal/observability"
)

// Fetcher retrieves the two candidate feed texts for the station.
type Fetcher interface {
	FetchTabular(ctx context.Context) (string, error)
	FetchNarrative(ctx context.Context) (string, error)
}

// Publisher forwards normalized observations downstream.
type Publisher interface {
	Publish(ctx context.Context, obs domain.Observation) error
}

// Pipeline polls the station feeds on an interval and keeps the most recent
// successfully parsed observation in memory.
type Pipeline struct {
	fetcher   Fetcher
	publisher Publisher // nil when publishing is disabled
	stationID string
	interval  time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready  atomic.Bool
	latest atomic.Pointer[domain.Observation]

	mu      sync.Mutex
	lastErr error
}

// New creates a Pipeline for one station. publisher may be nil, in which
// case observations are only held for the API.
func New(fetcher Fetcher, publisher Publisher, stationID string, interval time.Duration, clk clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		publisher: publisher,
		stationID: stationID,
		interval:  interval,
		clock:     clk,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one observation has been
// ingested, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no observation ingested yet")
	}
	return nil
}

// Latest returns the most recent normalized observation, if any.
func (p *Pipeline) Latest() (domain.Observation, bool) {
	obs := p.latest.Load()
	if obs == nil {
		return domain.Observation{}, false
	}
	return *obs, true
}

// LastFailure returns the terminal error from the most recent failed
// refresh, or nil after a successful one.
func (p *Pipeline) LastFailure() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Run refreshes immediately, then on every poll tick until the context is
// cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "station", p.stationID, "interval", p.interval)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.refresh(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.refresh(ctx)
		}
	}
}

// refresh wraps Refresh with failure logging so the poll loop stays small.
func (p *Pipeline) refresh(ctx context.Context) {
	if _, err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error("refresh failed", "error", err)
	}
}

// Refresh performs one fetch-parse-publish cycle and returns the new
// observation. A failed fetch of either feed is tolerated: the parser
// decides what is recoverable from whatever arrived.
func (p *Pipeline) Refresh(ctx context.Context) (domain.Observation, error) {
	start := time.Now()

	// Both candidates are fetched up front; the narrative report costs one
	// extra request and saves a second round trip whenever the tabular row
	// is rejected.
	tabularText := p.fetchCandidate(ctx, "tabular", p.fetcher.FetchTabular)
	narrativeText := p.fetchCandidate(ctx, "narrative", p.fetcher.FetchNarrative)

	obs, err := domain.ParseObservation(tabularText, narrativeText)
	if err != nil {
		p.recordFailure(err)
		return domain.Observation{}, err
	}
	obs.StationID = p.stationID

	p.metrics.ParseResults.WithLabelValues(obs.Source, "success").Inc()
	if obs.Source == domain.SourceNarrative && tabularText != "" {
		p.metrics.Fallbacks.Inc()
		p.logger.Warn("tabular feed rejected, used narrative report")
	}
	for _, note := range obs.UnknownUnits {
		p.metrics.UnknownUnits.Inc()
		p.logger.Warn("unknown unit in feed", "detail", note)
	}

	p.latest.Store(&obs)
	p.ready.Store(true)
	p.clearFailure()
	p.metrics.LastObservationTime.Set(float64(obs.Timestamp.Unix()))

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, obs); err != nil {
			// Publishing is best-effort; the observation is still served.
			p.metrics.PublishErrors.Inc()
			p.logger.Error("publish observation failed", "error", err)
		} else {
			p.metrics.ObservationsPublished.Inc()
		}
	}

	p.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("observation refreshed",
		"source", obs.Source,
		"observed_at", obs.Timestamp,
		"wind_kt", obs.WindSpeedKt,
		"gust_kt", obs.GustSpeedKt,
	)
	return obs, nil
}

// fetchCandidate retrieves one feed, treating any failure as an absent
// candidate.
func (p *Pipeline) fetchCandidate(ctx context.Context, feed string, fetch func(context.Context) (string, error)) string {
	text, err := fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("feed unavailable", "feed", feed, "error", err)
		}
		return ""
	}
	return text
}

func (p *Pipeline) recordFailure(err error) {
	source := "none"
	var pf *domain.ParseFailure
	if errors.As(err, &pf) && pf.Diag.ChosenSource != "" {
		source = pf.Diag.ChosenSource
	}
	p.metrics.ParseResults.WithLabelValues(source, "failure").Inc()

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}

func (p *Pipeline) clearFailure() {
	p.mu.Lock()
	p.lastErr = nil
	p.mu.Unlock()
}
