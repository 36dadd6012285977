package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courtside",
			Name:      "bookings_created_total",
			Help:      "Count of bookings created by initial status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courtside",
			Name:      "bookings_cancelled_total",
			Help:      "Count of bookings cancelled or rejected, by party.",
		},
		[]string{"by"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "courtside",
			Name:      "slot_conflicts_total",
			Help:      "Count of booking attempts rejected for overlapping an existing slot.",
		},
	)

	debitsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "courtside",
			Name:      "debits_rejected_total",
			Help:      "Count of debits rejected for insufficient credit.",
		},
	)

	notifyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "courtside",
			Name:      "notification_failures_total",
			Help:      "Count of lifecycle events that failed to dispatch.",
		},
	)
)

// Register registers all metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingCancelled, slotConflicts, debitsRejected, notifyFailures)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled(by string) {
	bookingCancelled.WithLabelValues(by).Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func IncDebitRejected() {
	debitsRejected.Inc()
}

func IncNotifyFailure() {
	notifyFailures.Inc()
}
