package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTPRequest(t *testing.T) {
	m := New("carwash-test")

	m.ObserveHTTPRequest(http.MethodGet, "/api/services", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/services", http.StatusOK, 20*time.Millisecond)

	got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/services", "200"))
	assert.Equal(t, float64(2), got)
}

func TestIncBookingEvent(t *testing.T) {
	m := New("carwash-test")

	m.IncBookingEvent(EventBookingCreated)
	m.IncBookingEvent(EventBookingCancelled)
	m.IncBookingEvent(EventBookingCreated)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingEvents.WithLabelValues(EventBookingCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingEvents.WithLabelValues(EventBookingCancelled)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveDBOperation("mongo", "find", true, time.Millisecond)
		m.IncBookingEvent(EventStatusUpdated)
		m.MustRegister()
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("carwash-test")
	m.ObserveDBOperation("postgres", "select", true, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "db_operation_duration_seconds")
	assert.Contains(t, rec.Body.String(), `service="carwash-test"`)
}
