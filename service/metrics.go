package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// mazesProcessed counts mazes taken off the queue by outcome
	mazesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_mazes_processed_total",
		Help: "Mazes taken from the queue by outcome",
	}, []string{"outcome"})

	// solveDuration tracks the time spent solving one maze
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathfinder_solve_duration_seconds",
		Help:    "Time to run A* and training for one maze",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	}, []string{"status"})
)

// Outcomes recorded besides the solution statuses.
const (
	outcomeDecodeError = "decode_error"
	outcomeSolveError  = "solve_error"
	outcomeSaveError   = "save_error"
)
