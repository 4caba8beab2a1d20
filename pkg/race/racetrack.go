package race

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Work is a deferred unit of asynchronous computation. Once driven it settles
// exactly once: with a value on success or an error on failure. The supplied
// context is cancelled when the race deadline fires; work that wants to be
// stoppable at the deadline should honor it, but the engine never waits for
// it to do so.
type Work[T any] func(ctx context.Context) (T, error)

var (
	// ErrRaceStarted is returned when a racer is added or Run is called
	// after the race has already started
	ErrRaceStarted = errors.New("race already started")

	// ErrRaceNotFinished is returned when rankings are requested before
	// Run has completed
	ErrRaceNotFinished = errors.New("race not finished")
)

type raceState int

const (
	stateNotStarted raceState = iota
	stateRunning
	stateFinished
)

// racer pairs a registration tag with its not-yet-running work
type racer[T any] struct {
	name string
	work Work[T]
}

// settlement is the message a racer goroutine sends back to the coordinator
type settlement[T any] struct {
	index    int
	value    T
	err      error
	duration time.Duration
}

// RaceTrack races a set of registered work units against a shared deadline
// and ranks them by completion order. The zero value is not usable; construct
// with DisqualifyAfter or NewFromConfig.
//
// A RaceTrack runs exactly one race: racers may only be added before Run,
// Run is not re-entrant, and Rankings is only available after Run completes.
type RaceTrack[T any] struct {
	id        string
	deadline  time.Duration
	collector Collector

	mu       sync.Mutex
	state    raceState
	racers   []racer[T]
	rankings []RaceResult[T]
}

// DisqualifyAfter creates an empty RaceTrack whose racers are disqualified
// once the given deadline has elapsed after the race starts. The deadline is
// taken as-is: a zero or negative value yields a race whose timer fires
// immediately, disqualifying everything that has not already settled.
func DisqualifyAfter[T any](deadline time.Duration) *RaceTrack[T] {
	return &RaceTrack[T]{
		id:       uuid.New().String(),
		deadline: deadline,
	}
}

// ID returns the unique identifier of this race, carried on emitted events.
func (rt *RaceTrack[T]) ID() string {
	return rt.id
}

// SetCollector installs an event collector for race observability.
// Must be called before Run. A nil collector disables emission.
func (rt *RaceTrack[T]) SetCollector(c Collector) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.collector = c
}

// AddRacer registers a named unit of work. The name is an opaque tag carried
// through to the result unchanged; the engine never interprets it.
// Returns ErrRaceStarted once the race has started.
func (rt *RaceTrack[T]) AddRacer(name string, work Work[T]) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.state != stateNotStarted {
		return ErrRaceStarted
	}

	rt.racers = append(rt.racers, racer[T]{name: name, work: work})
	return nil
}

// Run starts every registered racer concurrently and waits until all of them
// have settled or the deadline has elapsed, whichever comes first. Racers
// that settle are ranked in the order their settlements are observed; the
// rest are disqualified and their work is cancelled best-effort through its
// context, without waiting for it to unwind.
//
// Run is not re-entrant: a second call returns ErrRaceStarted. If the
// caller's context is cancelled before the race resolves, the unsettled
// remainder is disqualified exactly as at the deadline, rankings are still
// complete, and Run returns the context's error.
func (rt *RaceTrack[T]) Run(ctx context.Context) error {
	rt.mu.Lock()
	if rt.state != stateNotStarted {
		rt.mu.Unlock()
		return ErrRaceStarted
	}
	rt.state = stateRunning
	racers := rt.racers
	collector := rt.collector
	rt.mu.Unlock()

	participants := make([]string, len(racers))
	for i, r := range racers {
		participants[i] = r.name
	}

	emit(ctx, collector, Event{
		Type:         EventRaceStart,
		RaceID:       rt.id,
		Participants: participants,
		Timestamp:    time.Now(),
	})

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered to the field size so racer goroutines never block on send,
	// even after the coordinator has stopped reading.
	results := make(chan settlement[T], len(racers))
	start := time.Now()

	for i := range racers {
		go func(idx int, w Work[T]) {
			value, err := drive(raceCtx, w)
			results <- settlement[T]{
				index:    idx,
				value:    value,
				err:      err,
				duration: time.Since(start),
			}
		}(i, racers[i].work)
	}

	timer := time.NewTimer(rt.deadline)
	defer timer.Stop()

	settled := make([]bool, len(racers))
	rankings := make([]RaceResult[T], 0, len(racers))
	remaining := len(racers)
	var runErr error

collect:
	for remaining > 0 {
		select {
		case s := <-results:
			settled[s.index] = true
			remaining--

			result := RaceResult[T]{
				Name:        racers[s.index].name,
				Status:      StatusFinished,
				FinishOrder: len(rankings),
				Duration:    s.duration,
				Value:       s.value,
				Err:         s.err,
			}
			rankings = append(rankings, result)

			emit(ctx, collector, Event{
				Type:        EventRacerFinish,
				RaceID:      rt.id,
				Racer:       result.Name,
				FinishOrder: result.FinishOrder,
				Duration:    result.Duration,
				Error:       result.ErrorMessage(),
				Timestamp:   time.Now(),
			})

		case <-timer.C:
			cancel()
			break collect

		case <-ctx.Done():
			cancel()
			runErr = ctx.Err()
			break collect
		}
	}

	// Whatever has not settled by now is out of the race. Classified in
	// registration order, always behind every finisher.
	for idx := range racers {
		if settled[idx] {
			continue
		}
		result := RaceResult[T]{
			Name:         racers[idx].name,
			Status:       StatusDisqualified,
			Disqualified: true,
			FinishOrder:  -1,
		}
		rankings = append(rankings, result)

		emit(ctx, collector, Event{
			Type:      EventRacerDisqualified,
			RaceID:    rt.id,
			Racer:     result.Name,
			Timestamp: time.Now(),
		})
	}

	rt.mu.Lock()
	rt.rankings = rankings
	rt.state = stateFinished
	rt.mu.Unlock()

	var winner string
	if len(rankings) > 0 && rankings[0].Status == StatusFinished {
		winner = rankings[0].Name
	}
	emit(ctx, collector, Event{
		Type:         EventRaceComplete,
		RaceID:       rt.id,
		Participants: participants,
		Winner:       winner,
		Duration:     time.Since(start),
		Timestamp:    time.Now(),
	})

	return runErr
}

// Rankings returns one RaceResult per registered racer: finishers first, in
// the order their settlements were observed, then every disqualified racer.
// Returns ErrRaceNotFinished until Run has completed. The returned slice is
// stable across calls; no re-computation happens.
func (rt *RaceTrack[T]) Rankings() ([]RaceResult[T], error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.state != stateFinished {
		return nil, ErrRaceNotFinished
	}
	return rt.rankings, nil
}

// drive runs a racer's work, converting a panic into an ordinary failure so
// a crashing racer still yields a ranked entry instead of a silent drop.
func drive[T any](ctx context.Context, w Work[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("racer panicked: %v", r)
		}
	}()
	return w(ctx)
}
