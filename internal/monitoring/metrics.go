package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	seatChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webinar_seat_changes_total",
			Help: "Seat-change requests by outcome",
		},
		[]string{"outcome"},
	)

	seatsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "webinar_seats",
			Help: "Last persisted seat count per webinar",
		},
		[]string{"webinar_id"},
	)
)

// RecordSeatChange counts one seat-change request. Outcome is one of
// "success", "validation", "not_found", "not_organizer", "reduce",
// "too_many", "error".
func RecordSeatChange(outcome string) {
	seatChanges.WithLabelValues(outcome).Inc()
}

// RecordSeatCount tracks the persisted capacity after a successful change.
func RecordSeatCount(webinarID string, seats int) {
	seatsGauge.WithLabelValues(webinarID).Set(float64(seats))
}
