// Package metrics exposes Prometheus counters for the reservation core.
// Labels are limited to statuses and reasons; ids never become labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationTransitionsTotal counts committed reservation transitions by target status.
	ReservationTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_reservation_transitions_total",
		Help: "Committed reservation lifecycle transitions, by target status.",
	}, []string{"status"})

	// RejectedOperationsTotal counts operations refused by the core.
	RejectedOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_rejected_operations_total",
		Help: "Operations rejected by the reservation core, by operation and reason.",
	}, []string{"operation", "reason"})

	// RoomStatusChangesTotal counts room status writes by new status and origin.
	RoomStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_room_status_changes_total",
		Help: "Room status changes, by new status and source (staff or lifecycle).",
	}, []string{"status", "source"})

	// AvailabilityQueriesTotal counts availability searches.
	AvailabilityQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_availability_queries_total",
		Help: "Availability searches served.",
	})

	// AvailableRoomTypes observes how many room types each search returned.
	AvailableRoomTypes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hotel_availability_result_room_types",
		Help:    "Number of room types returned per availability search.",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})

	// EventPublishFailuresTotal counts lifecycle events that could not be delivered.
	EventPublishFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_event_publish_failures_total",
		Help: "Lifecycle events that failed to publish, by event type.",
	}, []string{"type"})
)

func RecordTransition(status string) {
	ReservationTransitionsTotal.WithLabelValues(status).Inc()
}

func RecordRejection(operation, reason string) {
	RejectedOperationsTotal.WithLabelValues(operation, reason).Inc()
}

func RecordRoomStatus(status, source string) {
	RoomStatusChangesTotal.WithLabelValues(status, source).Inc()
}

func RecordAvailability(results int) {
	AvailabilityQueriesTotal.Inc()
	AvailableRoomTypes.Observe(float64(results))
}

func RecordPublishFailure(eventType string) {
	EventPublishFailuresTotal.WithLabelValues(eventType).Inc()
}
