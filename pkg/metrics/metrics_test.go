package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("autoservis_booking")

	m.IncBookingOutcome("book", "conflict")
	m.IncBookingOutcome("book", "conflict")
	m.ObserveGatewayCall("freebusy", "ok", 120*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/booking/appointment", "201", 30*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("book", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("freebusy", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/booking/appointment", "201")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("a")
	})
}
