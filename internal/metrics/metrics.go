// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentReadsTotal counts served document reads by source.
	DocumentReadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "document_reads_total",
		Help: "Total number of document reads",
	}, []string{"source"}) // "cache" or "store"

	// DocumentWritesTotal counts document writes by document name.
	DocumentWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "document_writes_total",
		Help: "Total number of document writes",
	}, []string{"document"})

	// UploadsTotal counts image upload attempts by provider and outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total number of image upload attempts",
	}, []string{"provider", "outcome"})

	// AuthDeniedTotal counts rejected admin requests by reason.
	AuthDeniedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_denied_total",
		Help: "Total number of rejected admin requests",
	}, []string{"reason"})

	// HTTPRequestDuration observes request latency by method, route, and
	// status code.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
