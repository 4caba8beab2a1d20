package series

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/speedracer/pkg/race"
)

// ErrSeriesStarted is returned when an entrant is added or Run is called
// after the series has already started
var ErrSeriesStarted = errors.New("series already started")

// Entrant is a named participant in a series. Start produces a fresh unit of
// work for each heat, since a Work is consumed by the race that runs it.
type Entrant[T any] struct {
	Name  string
	Start func() race.Work[T]
}

// HeatReport holds the full rankings of one heat
type HeatReport[T any] struct {
	// ID is the race identifier of the heat's underlying race track
	ID string `json:"id"`

	// Number is the 1-based position of the heat within the series
	Number int `json:"number"`

	// Rankings is the complete classified result list of the heat
	Rankings []race.RaceResult[T] `json:"rankings"`
}

// Series races the same field of entrants over a configured number of heats,
// pacing heat starts and aggregating standings across the whole series.
type Series[T any] struct {
	config    *Config
	limiter   *rate.Limiter
	stats     *race.StatsTracker
	histogram *Histogram
	collector race.Collector

	mu       sync.Mutex
	started  bool
	entrants []Entrant[T]
	reports  []HeatReport[T]
}

// New creates a Series from a validated configuration
func New[T any](config *Config) (*Series[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Series[T]{
		config:    config,
		limiter:   rate.NewLimiter(rate.Limit(config.StartRatePerSec), 1),
		stats:     race.NewStatsTracker(),
		histogram: NewHistogram(config.SampleSize),
	}, nil
}

// SetCollector installs an event collector passed to every heat's race track.
// Must be called before Run.
func (s *Series[T]) SetCollector(c race.Collector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collector = c
}

// AddEntrant registers a participant for every heat of the series.
// Returns ErrSeriesStarted once the series has started.
func (s *Series[T]) AddEntrant(name string, start func() race.Work[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrSeriesStarted
	}

	s.entrants = append(s.entrants, Entrant[T]{Name: name, Start: start})
	return nil
}

// Run races the configured number of heats to completion. Heat starts are
// paced by the series rate limiter; cancelling ctx stops the series between
// heats (or mid-heat, disqualifying that heat's unsettled entrants) and
// returns the context's error. Heats already completed keep their reports.
func (s *Series[T]) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrSeriesStarted
	}
	s.started = true
	entrants := s.entrants
	collector := s.collector
	s.mu.Unlock()

	for heat := 1; heat <= s.config.Heats; heat++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("series stopped before heat %d: %w", heat, err)
		}

		track := race.DisqualifyAfter[T](s.config.Deadline())
		track.SetCollector(collector)
		for _, e := range entrants {
			if err := track.AddRacer(e.Name, e.Start()); err != nil {
				return err
			}
		}

		runErr := track.Run(ctx)

		rankings, err := track.Rankings()
		if err != nil {
			return err
		}
		s.recordHeat(track.ID(), heat, rankings)

		if runErr != nil {
			return runErr
		}
	}

	return nil
}

func (s *Series[T]) recordHeat(id string, number int, rankings []race.RaceResult[T]) {
	for _, result := range rankings {
		race.RecordResult(s.stats, result)
		if result.Status == race.StatusFinished {
			s.histogram.Add(result.Duration)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, HeatReport[T]{
		ID:       id,
		Number:   number,
		Rankings: rankings,
	})
}

// Reports returns the per-heat reports recorded so far, in heat order
func (s *Series[T]) Reports() []HeatReport[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := make([]HeatReport[T], len(s.reports))
	copy(reports, s.reports)
	return reports
}

// Standings returns a copy of every entrant's accumulated stats
func (s *Series[T]) Standings() map[string]*race.RacerStats {
	return s.stats.AllStats()
}

// Timings returns the distribution of finish times observed across all heats
func (s *Series[T]) Timings() TimingSummary {
	return s.histogram.Summary()
}

// Leader returns the entrant with the best win rate across completed heats,
// and that rate. Returns zero values before any heat has run. Ties are
// broken arbitrarily.
func (s *Series[T]) Leader() (string, float64) {
	best := ""
	bestRate := -1.0
	for name, stats := range s.stats.AllStats() {
		if stats.WinRate > bestRate {
			best = name
			bestRate = stats.WinRate
		}
	}
	if bestRate < 0 {
		return "", 0
	}
	return best, bestRate
}
