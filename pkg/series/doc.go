// Package series runs the same field of entrants through repeated races
// ("heats") against a shared deadline, pacing heat starts with a rate
// limiter and aggregating per-entrant standings and finish-time
// distributions across the whole series.
package series
