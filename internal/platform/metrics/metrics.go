package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venue_booking",
			Name:      "requests_total",
			Help:      "Count of public booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venue_booking",
			Name:      "status_changes_total",
			Help:      "Count of admin status changes by target status.",
		},
		[]string{"status"},
	)

	deletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "venue_booking",
			Name:      "deletions_total",
			Help:      "Count of bookings deleted by admins.",
		},
	)

	availabilityCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venue_booking",
			Name:      "availability_cache_total",
			Help:      "Availability cache lookups by result.",
		},
		[]string{"result"},
	)
)

const (
	OutcomeCreated    = "created"
	OutcomeValidation = "validation"
	OutcomeConflict   = "conflict"
	OutcomeError      = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Register registers collectors with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingRequests, statusChanges, deletions, availabilityCache)
	})
}

func IncBookingRequest(outcome string) {
	bookingRequests.WithLabelValues(outcome).Inc()
}

func IncStatusChange(status string) {
	statusChanges.WithLabelValues(status).Inc()
}

func IncDeletion() {
	deletions.Inc()
}

func IncAvailabilityCache(result string) {
	availabilityCache.WithLabelValues(result).Inc()
}
