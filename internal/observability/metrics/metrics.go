package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking and availability flows.
type BookingMetrics struct {
	bookingsTotal  *prometheus.CounterVec
	slotsGenerated prometheus.Counter
	slotsDeleted   prometheus.Counter
	emailsTotal    *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Booking transactions by outcome",
		}, []string{"outcome"}),
		slotsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "availability",
			Name:      "slots_generated_total",
			Help:      "Availability slots inserted by admin generation",
		}),
		slotsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "availability",
			Name:      "slots_deleted_total",
			Help:      "Availability slots removed by admin deletion",
		}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Confirmation emails by delivery status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.slotsGenerated, m.slotsDeleted, m.emailsTotal)
	return m
}

// ObserveBooking records a booking attempt outcome: confirmed, conflict,
// validation_error, cancelled or error.
func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveSlotsGenerated(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

func (m *BookingMetrics) ObserveSlotDeleted() {
	if m == nil {
		return
	}
	m.slotsDeleted.Inc()
}

func (m *BookingMetrics) ObserveEmail(sent bool) {
	if m == nil {
		return
	}
	status := "sent"
	if !sent {
		status = "failed"
	}
	m.emailsTotal.WithLabelValues(status).Inc()
}
