package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/config"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/infra/db"
	"github.com/consultorio/dashboard-backend/internal/infra/dependency"
	"github.com/consultorio/dashboard-backend/internal/integration/email"
)

type testAPI struct {
	t        *testing.T
	engine   *gin.Engine
	injector *dependency.Injector
	clock    *clock.Fixed
	sender   *email.MockEmailSender
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.WriteRateLimit = 0
	cfg.Database = config.DatabaseConfig{
		Driver:       db.DriverSQLite,
		URL:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxIdleConns: 1,
	}

	database, err := db.NewConnection(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate())

	clk := clock.NewFixed(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	sender := email.NewMockEmailSender()

	injector, err := dependency.NewInjector(dependency.Options{
		Config:          cfg,
		DB:              database.DB(),
		Clock:           clk,
		EmailSender:     sender,
		DBHealthChecker: database.HealthCheck,
	})
	require.NoError(t, err)

	return &testAPI{
		t:        t,
		engine:   injector.Router.Setup(cfg.Server.Environment),
		injector: injector,
		clock:    clk,
		sender:   sender,
	}
}

func (a *testAPI) do(method, path string, body any) (int, map[string]any) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(a.t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec.Code, out
}

func weeklyPlan(client string) map[string]any {
	return map[string]any{
		"kind":        "weekly",
		"client_name": client,
		"amount":      "150",
		"start_date":  "2024-06-10",
		"periods":     3,
		"due_weekday": 3,
	}
}

func items(t *testing.T, body map[string]any, field string) []any {
	t.Helper()
	list, ok := body[field].([]any)
	require.True(t, ok, "field %q is not a list: %v", field, body)
	return list
}

func object(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "not an object: %v", v)
	return m
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "disabled", body["redis"])
	assert.Equal(t, "2024-06-10T12:00:00Z", body["timestamp"])
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(http.MethodPost, "/api/v1/plans", weeklyPlan("Ana Souza"))
	require.Equal(t, http.StatusCreated, status)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	api.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `consultorio_obligations_created_total{kind="weekly"} 3`)
	assert.Contains(t, rec.Body.String(), "consultorio_http_request_duration_seconds")
}

func TestClientEndpoints(t *testing.T) {
	api := newTestAPI(t)

	t.Run("create", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana Souza", "email": "ana@example.com"})
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "Ana Souza", body["name"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("duplicate name", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/clients", map[string]any{"name": "ANA  souza"})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "CLI-020002", body["code"])
	})

	t.Run("missing name", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/clients", map[string]any{"email": "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, body["code"])
	})

	t.Run("malformed body", func(t *testing.T) {
		status, _ := api.do(http.MethodPost, "/api/v1/clients", "{not json")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("update unknown", func(t *testing.T) {
		status, body := api.do(http.MethodPatch, "/api/v1/clients/"+uuid.NewString(), map[string]any{"phone": "123"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "CLI-020001", body["code"])
	})

	t.Run("list", func(t *testing.T) {
		status, body := api.do(http.MethodGet, "/api/v1/clients", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, items(t, body, "clients"), 1)
	})
}

func TestPlanEndpoints(t *testing.T) {
	api := newTestAPI(t)

	t.Run("preview does not persist", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/plans/preview", weeklyPlan("Ana Souza"))
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, items(t, body, "items"), 3)
		assert.Equal(t, "450.00", body["total"])

		_, list := api.do(http.MethodGet, "/api/v1/obligations", nil)
		assert.Empty(t, items(t, list, "obligations"))
	})

	t.Run("activate", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/plans", weeklyPlan("Ana Souza"))
		require.Equal(t, http.StatusCreated, status)

		obligations := items(t, body, "obligations")
		require.Len(t, obligations, 3)
		first := object(t, obligations[0])
		assert.Equal(t, "2024-06-12", first["due_date"])
		assert.Equal(t, "150.00", first["amount"])
		assert.Equal(t, "UPCOMING", object(t, first["urgency"])["level"])
		assert.Empty(t, items(t, body, "deactivated"))
	})

	t.Run("numeric amount", func(t *testing.T) {
		plan := weeklyPlan("Bruno Lima")
		plan["amount"] = 99.5
		status, body := api.do(http.MethodPost, "/api/v1/plans/preview", plan)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "99.50", object(t, items(t, body, "items")[0])["amount"])
	})

	t.Run("invalid start date", func(t *testing.T) {
		plan := weeklyPlan("Ana Souza")
		plan["start_date"] = "10/06/2024"
		status, body := api.do(http.MethodPost, "/api/v1/plans", plan)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PLN-010006", body["code"])
	})

	t.Run("missing client", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/plans", weeklyPlan(""))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PLN-010005", body["code"])
	})

	t.Run("malformed body", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/plans/preview", "{not json")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PLN-010007", body["code"])

		status, body = api.do(http.MethodPost, "/api/v1/plans", "{not json")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PLN-010007", body["code"])
	})

	t.Run("too many periods", func(t *testing.T) {
		plan := weeklyPlan("Ana Souza")
		plan["periods"] = 10000
		status, body := api.do(http.MethodPost, "/api/v1/plans/preview", plan)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "PLN-010002", body["code"])
	})
}

func TestObligationEndpoints(t *testing.T) {
	api := newTestAPI(t)
	_, created := api.do(http.MethodPost, "/api/v1/plans", weeklyPlan("Ana Souza"))
	id := object(t, items(t, created, "obligations")[0])["id"].(string)

	status, body := api.do(http.MethodPost, "/api/v1/obligations/"+id+"/pay", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["active"])
	assert.NotContains(t, body, "urgency")

	_, list := api.do(http.MethodGet, "/api/v1/obligations?active=true", nil)
	assert.Len(t, items(t, list, "obligations"), 2)

	status, body = api.do(http.MethodPost, "/api/v1/obligations/"+id+"/reopen", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["active"])
	assert.NotContains(t, body, "paid_at")

	status, body = api.do(http.MethodGet, "/api/v1/obligations?active=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "OBL-010003", body["code"])

	status, _ = api.do(http.MethodDelete, "/api/v1/obligations/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = api.do(http.MethodPost, "/api/v1/obligations/"+id+"/pay", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "OBL-010001", body["code"])
}

func TestAnalysisEndpoints(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodPost, "/api/v1/analyses", map[string]any{
		"client_name":  "Ana Souza",
		"service_type": "therapy",
		"session_date": "2024-06-10",
		"plan": map[string]any{
			"kind": "monthly", "amount": "300", "start_date": "2024-06-10", "periods": 2, "due_day": 31,
		},
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	obligations := items(t, body, "obligations")
	require.Len(t, obligations, 2)
	assert.Equal(t, "2024-07-31", object(t, obligations[0])["due_date"])
	assert.Equal(t, "2024-08-31", object(t, obligations[1])["due_date"])

	status, body = api.do(http.MethodGet, "/api/v1/analyses/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "monthly", object(t, body["plan"])["kind"])
	assert.Len(t, items(t, body, "obligations"), 2)

	t.Run("notes only does not resync", func(t *testing.T) {
		status, body := api.do(http.MethodPatch, "/api/v1/analyses/"+id, map[string]any{"notes": "follow up"})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["resynced"])
	})

	t.Run("explicit resync", func(t *testing.T) {
		status, body := api.do(http.MethodPost, "/api/v1/analyses/"+id+"/plan/resync", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, items(t, body, "deactivated"), 2)
		assert.Len(t, items(t, body, "obligations"), 2)
	})

	t.Run("filter by analysis", func(t *testing.T) {
		status, body := api.do(http.MethodGet, "/api/v1/obligations?active=true&analysis_id="+id, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, items(t, body, "obligations"), 2)
	})

	t.Run("delete", func(t *testing.T) {
		status, body := api.do(http.MethodDelete, "/api/v1/analyses/"+id, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, items(t, body, "deleted"), 2)

		status, body = api.do(http.MethodGet, "/api/v1/analyses/"+id, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "ANL-020001", body["code"])
	})

	t.Run("invalid id", func(t *testing.T) {
		status, _ := api.do(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestActivatePlanForAnalysis(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodPost, "/api/v1/analyses", map[string]any{
		"client_name":  "Ana Souza",
		"service_type": "therapy",
		"session_date": "2024-06-10",
		"plan": map[string]any{
			"kind": "monthly", "amount": "300", "start_date": "2024-06-10", "periods": 2, "due_day": 15,
		},
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)

	plan := weeklyPlan("Ana Souza")
	plan["analysis_id"] = id
	status, body = api.do(http.MethodPost, "/api/v1/plans", plan)
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, items(t, body, "deactivated"), 2)

	_, list := api.do(http.MethodGet, "/api/v1/obligations?active=true&analysis_id="+id, nil)
	active := items(t, list, "obligations")
	require.Len(t, active, 3)
	for _, o := range active {
		assert.Equal(t, "weekly", object(t, o)["kind"])
	}

	_, body = api.do(http.MethodGet, "/api/v1/analyses/"+id, nil)
	assert.Equal(t, "weekly", object(t, body["plan"])["kind"])

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/summary?period=all", nil)
	require.Equal(t, http.StatusOK, status)
	all := object(t, object(t, items(t, body, "periods")[0])["obligations"])
	assert.Equal(t, float64(3), all["count"])
	assert.Equal(t, "0.00", all["sum_paid"])

	plan["analysis_id"] = uuid.NewString()
	status, body = api.do(http.MethodPost, "/api/v1/plans", plan)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ANL-020001", body["code"])

	plan["analysis_id"] = "not-a-uuid"
	status, body = api.do(http.MethodPost, "/api/v1/plans", plan)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "PLN-010007", body["code"])
}

func TestDashboardEndpoints(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana Souza"})
	require.Equal(t, http.StatusCreated, status)
	_, _ = api.do(http.MethodPost, "/api/v1/plans", weeklyPlan("Ana Souza"))
	_, _ = api.do(http.MethodPost, "/api/v1/plans", weeklyPlan("Unknown Person"))

	status, body := api.do(http.MethodGet, "/api/v1/dashboard/upcoming", nil)
	require.Equal(t, http.StatusOK, status)
	groups := items(t, body, "groups")
	require.Len(t, groups, 1)
	group := object(t, groups[0])
	assert.Equal(t, "Ana Souza", group["client_name"])
	assert.Equal(t, float64(3), group["total_count"])
	assert.Len(t, group["additional"], 2)

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/upcoming?within_days=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DSH-010003", body["code"])

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, items(t, body, "periods"), 4)

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/summary?period=week&date=2024-06-19", nil)
	require.Equal(t, http.StatusOK, status)
	week := object(t, items(t, body, "periods")[0])
	total := object(t, week["total"])
	assert.Equal(t, "2024-06-17", total["start"])
	assert.Equal(t, "2024-06-23", total["end"])
	assert.Equal(t, float64(2), total["count"])

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/summary?date=19-06-2024", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DSH-010004", body["code"])

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/trends?start_date=2024-05-01&end_date=2024-06-30", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "monthly", body["granularity"])
	trends := items(t, body, "trends")
	require.Len(t, trends, 2)
	june := object(t, trends[1])
	assert.Equal(t, "Jun 2024", june["period_label"])
	juneTotal := object(t, june["total"])
	assert.Equal(t, float64(6), juneTotal["count"])
	assert.Equal(t, "900.00", juneTotal["sum_outstanding"])

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/trends?granularity=weekly&start_date=2024-06-10&end_date=2024-06-23", nil)
	require.Equal(t, http.StatusOK, status)
	weeks := items(t, body, "trends")
	require.Len(t, weeks, 2)
	assert.Equal(t, "2024-06-17", object(t, weeks[1])["start"])

	status, body = api.do(http.MethodGet, "/api/v1/dashboard/trends?granularity=daily", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DSH-010005", body["code"])
}

func TestAppointmentEndpoints(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodPost, "/api/v1/appointments", map[string]any{
		"client_name":  "Ana Souza",
		"service_type": "tarot",
		"scheduled_at": "2024-06-12T15:00:00Z",
		"amount":       "80",
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	assert.Equal(t, "scheduled", body["status"])

	status, body = api.do(http.MethodPatch, "/api/v1/appointments/"+id+"/status", map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", body["status"])

	status, body = api.do(http.MethodPatch, "/api/v1/appointments/"+uuid.NewString()+"/status", map[string]any{"status": "paid"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "APT-020001", body["code"])

	status, body = api.do(http.MethodPost, "/api/v1/appointments", map[string]any{
		"client_name":  "Ana Souza",
		"service_type": "palmistry",
		"scheduled_at": "2024-06-12",
		"amount":       "80",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "APT-010002", body["code"])

	status, body = api.do(http.MethodGet, "/api/v1/appointments?from=2024-06-01&to=2024-06-30", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, items(t, body, "appointments"), 1)
}

func TestReminderRun(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(http.MethodPost, "/api/v1/clients", map[string]any{"name": "Ana Souza", "email": "ana@example.com"})
	require.Equal(t, http.StatusCreated, status)

	plan := weeklyPlan("Ana Souza")
	plan["due_weekday"] = 2 // first due tomorrow
	_, _ = api.do(http.MethodPost, "/api/v1/plans", plan)

	status, body := api.do(http.MethodPost, "/api/v1/reminders/run", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["queued"])

	api.injector.EmailWorker.ProcessNow(context.Background())

	sent := api.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "Vence amanhã")

	status, body = api.do(http.MethodPost, "/api/v1/reminders/run", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["queued"])
	assert.Equal(t, float64(1), body["skipped_duplicate"])
}
