package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizPicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_picks_total",
		Help:      "Quiz question requests by outcome (served, exhausted, rejected).",
	}, []string{"outcome"})

	searchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trivia",
		Name:      "search_results",
		Help:      "Number of questions matched per search.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	})

	categoryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "category_cache_lookups_total",
		Help:      "Category cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
