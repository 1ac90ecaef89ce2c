package iosource

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedb_upstream_requests_total",
		Help: "Upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokedb_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedb_response_cache_lookups_total",
		Help: "Response cache lookups by result (hit or miss)",
	}, []string{"result"})
)
