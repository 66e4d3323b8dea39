package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountersAndHandler(t *testing.T) {
	m := NewMetrics()
	m.OrdersCreated.WithLabelValues("twoshot").Inc()
	m.OrdersCreated.WithLabelValues("twoshot").Inc()
	m.ReviewsReceived.Inc()
	require.NoError(t, m.RegisterGauge("receh48_cart_sessions", "Open cart sessions.", func() float64 { return 3 }))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersCreated.WithLabelValues("twoshot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsReceived))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `receh48_orders_created_total{order_type="twoshot"} 2`))
	assert.True(t, strings.Contains(body, "receh48_cart_sessions 3"))
}
