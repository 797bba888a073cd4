package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestCollector() *Collector {
	reg := prometheus.NewRegistry()
	return NewCollector(reg, reg)
}

func TestCollector_Counters(t *testing.T) {
	c := newTestCollector()

	c.RecordActivation("phone", "issued")
	c.RecordActivation("phone", "issued")
	c.RecordActivation("phone", "frequent")
	c.RecordRegistration("email", "TOKEN_EXPIRED")
	c.RecordDelivery("phone", false, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.activations.WithLabelValues("phone", "issued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.activations.WithLabelValues("phone", "frequent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("email", "TOKEN_EXPIRED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.deliveries.WithLabelValues("phone", "false")))
}

func TestCollector_Handler(t *testing.T) {
	c := newTestCollector()
	c.RecordActivation("email", "issued")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `signup_activation_requests_total{kind="email",status="issued"} 1`)
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordActivation("phone", "issued")
	r.RecordRegistration("phone", "")
	r.RecordDelivery("phone", true, time.Second)
}
