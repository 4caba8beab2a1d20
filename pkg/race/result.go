package race

import (
	"time"
)

// Status represents the terminal classification of a racer
type Status string

const (
	// StatusFinished means the racer settled (successfully or not) before the deadline
	StatusFinished Status = "finished"

	// StatusDisqualified means the racer had not settled when the deadline fired
	StatusDisqualified Status = "disqualified"
)

// RaceResult represents the outcome of a single racer after a race has run.
// Every registered racer produces exactly one RaceResult.
type RaceResult[T any] struct {
	// Name is the tag the racer was registered under, carried through unchanged
	Name string `json:"name"`

	// Status is the terminal classification of the racer
	Status Status `json:"status"`

	// Disqualified is true iff the racer had not settled by the deadline
	Disqualified bool `json:"disqualified"`

	// FinishOrder is the zero-based position in which the racer settled
	// relative to other finishers. It is -1 for disqualified racers, which
	// are always ranked after every finisher.
	FinishOrder int `json:"finish_order"`

	// Duration is the time from race start until the settlement was observed.
	// It is zero for disqualified racers.
	Duration time.Duration `json:"duration"`

	// Value is the value produced by the racer's work on success
	Value T `json:"value,omitempty"`

	// Err is the failure cause reported by the racer's work, nil on success.
	// Its content is opaque to the engine.
	Err error `json:"-"`
}

// IsSuccess returns true if the racer finished and its work succeeded
func (r *RaceResult[T]) IsSuccess() bool {
	return r.Status == StatusFinished && r.Err == nil
}

// IsFailure returns true if the racer finished but its work reported an error
func (r *RaceResult[T]) IsFailure() bool {
	return r.Status == StatusFinished && r.Err != nil
}

// ErrorMessage returns the racer's failure cause as a string for logging,
// or an empty string when there is none
func (r *RaceResult[T]) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
