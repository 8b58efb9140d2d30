// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Guesses counts submitted guesses by mode and outcome
	// (in_progress, solved, exhausted, rejected).
	Guesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_guesses_total",
		Help: "Submitted guesses by mode and resulting state",
	}, []string{"mode", "result"})

	// Sessions counts created puzzle sessions and pruners.
	Sessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_sessions_total",
		Help: "Created sessions by kind (game, daily, solver)",
	}, []string{"kind"})

	// Candidates tracks the candidate count left after each prune.
	Candidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordle_prune_candidates",
		Help:    "Remaining candidates after applying one guess",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500, 2500, 15000},
	})

	// PersistErrors counts failed best-effort writes after a finished game.
	PersistErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_persist_errors_total",
		Help: "Failed solved-word / daily-result writes",
	}, []string{"kind"})
)

// ObserveGuess records one guess outcome.
func ObserveGuess(mode, result string) {
	Guesses.WithLabelValues(mode, result).Inc()
}
