package race

import (
	"sync"
	"time"
)

// StatsTracker accumulates per-racer standings across races. It is safe for
// concurrent use, though a single race records results from one goroutine.
type StatsTracker struct {
	mu    sync.RWMutex
	stats map[string]*RacerStats
}

// RacerStats holds the accumulated standings of one racer name
type RacerStats struct {
	Races             int64         `json:"races"`
	Wins              int64         `json:"wins"`
	Finishes          int64         `json:"finishes"`
	Failures          int64         `json:"failures"`
	Disqualifications int64         `json:"disqualifications"`
	TotalDuration     time.Duration `json:"-"`
	AvgDuration       time.Duration `json:"avg_duration"`
	WinRate           float64       `json:"win_rate"`
	LastUpdated       time.Time     `json:"last_updated"`
}

// NewStatsTracker creates an empty StatsTracker
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{
		stats: make(map[string]*RacerStats),
	}
}

// RecordResult ingests one racer's result from a completed race.
// A free function rather than a method so it can stay generic over the
// race's value type.
func RecordResult[T any](st *StatsTracker, result RaceResult[T]) {
	st.mu.Lock()
	defer st.mu.Unlock()

	stats := st.getOrCreate(result.Name)
	stats.Races++

	switch {
	case result.Disqualified:
		stats.Disqualifications++
	default:
		stats.Finishes++
		if result.FinishOrder == 0 {
			stats.Wins++
		}
		if result.Err != nil {
			stats.Failures++
		}
		stats.TotalDuration += result.Duration
		stats.AvgDuration = stats.TotalDuration / time.Duration(stats.Finishes)
	}

	stats.WinRate = float64(stats.Wins) / float64(stats.Races)
	stats.LastUpdated = time.Now()
}

// Stats returns a copy of the standings for a racer name and whether the
// racer has been recorded at all
func (st *StatsTracker) Stats(name string) (RacerStats, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	stats, ok := st.stats[name]
	if !ok {
		return RacerStats{}, false
	}
	return *stats, true
}

// AllStats returns a copy of the standings of every recorded racer
func (st *StatsTracker) AllStats() map[string]*RacerStats {
	st.mu.RLock()
	defer st.mu.RUnlock()

	result := make(map[string]*RacerStats, len(st.stats))
	for name, stats := range st.stats {
		statsCopy := *stats
		result[name] = &statsCopy
	}
	return result
}

func (st *StatsTracker) getOrCreate(name string) *RacerStats {
	stats, ok := st.stats[name]
	if !ok {
		stats = &RacerStats{}
		st.stats[name] = stats
	}
	return stats
}
