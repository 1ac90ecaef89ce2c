package ioimport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedb_import_items_total",
		Help: "Imported items by stage and outcome (success or error)",
	}, []string{"stage", "outcome"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokedb_import_stage_duration_seconds",
		Help:    "Duration of import stages in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"stage"})
)
