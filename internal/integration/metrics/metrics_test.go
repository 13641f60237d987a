package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.ObligationsCreated("weekly", 4)
	r.ObligationsCreated("monthly", 2)
	r.ObligationsCreated("weekly", 1)
	r.ObligationsDeactivated(3)
	r.ObligationsSettled(1)
	r.ResyncFinished("ok")
	r.ResyncFinished("conflict")
	r.ResyncFinished("ok")
	r.RemindersQueued("overdue_notice", 2)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.created.WithLabelValues("weekly")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.created.WithLabelValues("monthly")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.deactivated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.settled))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.resyncs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resyncs.WithLabelValues("conflict")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.reminders.WithLabelValues("overdue_notice")))
}

func TestRecorder_HandlerAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := New()
	r.ObligationsSettled(2)

	router := gin.New()
	router.Use(r.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(r.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "consultorio_obligations_settled_total 2")
	assert.True(t, strings.Contains(body, `consultorio_http_request_duration_seconds_count{method="GET",route="/ping",status="204"} 1`))
}
