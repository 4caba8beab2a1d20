package race

import (
	"context"
	"time"
)

// EventType represents the type of race event being recorded
type EventType string

const (
	// EventRaceStart is emitted once when Run begins, before any racer starts
	EventRaceStart EventType = "race_start"

	// EventRacerFinish is emitted each time a racer's settlement is observed
	EventRacerFinish EventType = "racer_finish"

	// EventRacerDisqualified is emitted for each racer still unsettled when
	// the race resolves
	EventRacerDisqualified EventType = "racer_disqualified"

	// EventRaceComplete is emitted once after every racer has been classified
	EventRaceComplete EventType = "race_complete"
)

// Event represents a single race observation delivered to a Collector
type Event struct {
	// Type of the event
	Type EventType `json:"type"`

	// RaceID identifies the race the event belongs to
	RaceID string `json:"race_id"`

	// Racer is the name of the racer the event concerns, if any
	Racer string `json:"racer,omitempty"`

	// FinishOrder is the rank assigned to a finishing racer
	FinishOrder int `json:"finish_order,omitempty"`

	// Duration is the racer's time to settle, or the whole race duration
	// on a race_complete event
	Duration time.Duration `json:"duration,omitempty"`

	// Participants lists every registered racer (race_start, race_complete)
	Participants []string `json:"participants,omitempty"`

	// Winner is the name of the first finisher, empty if nobody finished
	Winner string `json:"winner,omitempty"`

	// Error carries a finishing racer's failure message, if any
	Error string `json:"error,omitempty"`

	// Timestamp is when the event was recorded
	Timestamp time.Time `json:"timestamp"`
}

// Collector receives race events as they happen. Implementations must be
// safe for concurrent use and must not block: events are emitted from the
// race coordinator while the race is in flight.
type Collector interface {
	RecordEvent(ctx context.Context, event Event)
}

func emit(ctx context.Context, c Collector, event Event) {
	if c == nil {
		return
	}
	c.RecordEvent(ctx, event)
}
