package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests requests served, by route template, method and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmymajor_http_requests_total",
		Help: "HTTP requests served.",
	}, []string{"route", "method", "status"})

	// HTTPDuration request latency, by route template and method
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mapmymajor_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ProgressRecomputations full requirement-progress recomputations
	ProgressRecomputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mapmymajor_progress_recomputations_total",
		Help: "Requirement progress recomputations.",
	})

	// CoursesImported course bank rows written by the spreadsheet importer
	CoursesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mapmymajor_courses_imported_total",
		Help: "Course bank rows upserted by imports.",
	})

	// Exports map downloads, by format
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmymajor_exports_total",
		Help: "Map exports generated.",
	}, []string{"format"})
)
