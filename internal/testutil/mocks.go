// Package testutil provides shared mock work constructors and fixtures
// for use across the speedracer test suite.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/cecil-the-coder/speedracer/pkg/race"
)

// Sleeper returns work that succeeds with value after the given delay.
// It honors cancellation, returning ctx.Err() if cancelled first.
func Sleeper[T any](delay time.Duration, value T) race.Work[T] {
	return func(ctx context.Context) (T, error) {
		select {
		case <-time.After(delay):
			return value, nil
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Failer returns work that fails with err after the given delay
func Failer[T any](delay time.Duration, err error) race.Work[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		select {
		case <-time.After(delay):
			return zero, err
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Blocker returns work that never settles on its own; it only returns once
// its context is cancelled
func Blocker[T any]() race.Work[T] {
	return func(ctx context.Context) (T, error) {
		<-ctx.Done()
		var zero T
		return zero, ctx.Err()
	}
}

// Panicker returns work that panics with the given value after the delay
func Panicker[T any](delay time.Duration, v any) race.Work[T] {
	return func(ctx context.Context) (T, error) {
		time.Sleep(delay)
		panic(v)
	}
}

// RecordingCollector is a race.Collector that captures every event it
// receives, for assertions in tests
type RecordingCollector struct {
	mu     sync.Mutex
	events []race.Event
}

// RecordEvent implements race.Collector
func (c *RecordingCollector) RecordEvent(ctx context.Context, event race.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of every recorded event in arrival order
func (c *RecordingCollector) Events() []race.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := make([]race.Event, len(c.events))
	copy(events, c.events)
	return events
}

// EventsOfType returns every recorded event of the given type
func (c *RecordingCollector) EventsOfType(t race.EventType) []race.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var events []race.Event
	for _, e := range c.events {
		if e.Type == t {
			events = append(events, e)
		}
	}
	return events
}
