package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClientMetrics(t *testing.T) {
	m := NewClientMetrics("test", prometheus.NewRegistry())

	m.ObserveRequest("listProducts", "GET", 200, time.Now())
	m.ObserveRequest("listProducts", "GET", 0, time.Now())
	m.RecordUnauthenticated("deleteProduct")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("listProducts", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("listProducts", "GET", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnauthenticatedTotal.WithLabelValues("deleteProduct")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var c *ClientMetrics
	var s *ServerMetrics

	assert.NotPanics(t, func() {
		c.ObserveRequest("op", "GET", 500, time.Now())
		c.RecordUnauthenticated("op")
		s.RecordAuthError("missing_token")
	})
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", statusCategory(201))
	assert.Equal(t, "4xx", statusCategory(401))
	assert.Equal(t, "5xx", statusCategory(503))
	assert.Equal(t, "", statusCategory(302))
}
