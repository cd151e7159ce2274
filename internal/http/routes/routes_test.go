package routes

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/workoutplanner/internal/config"
	"github.com/briangreenhill/workoutplanner/internal/generators"
	"github.com/briangreenhill/workoutplanner/internal/jobs"
	"github.com/briangreenhill/workoutplanner/internal/metrics"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Provider() string { return "stub" }
func (s stubLLM) Complete(context.Context, string) (string, error) {
	return s.reply, s.err
}

type stubEnqueuer struct {
	id  string
	err error
	got planner.Request
}

func (s *stubEnqueuer) Enqueue(_ context.Context, req planner.Request) (string, error) {
	s.got = req
	return s.id, s.err
}

type stubLookup map[string]*jobs.Status

func (s stubLookup) Get(id string) (*jobs.Status, error) {
	if st, ok := s[id]; ok {
		return st, nil
	}
	if id == "broken" {
		return nil, errors.New("redis down")
	}
	return nil, jobs.ErrNotFound
}

func newTestServer(t *testing.T, mutate func(*ServerOptions)) *Server {
	t.Helper()
	reg := generators.NewRegistry()
	reg.Register(generators.NewTemplate(planner.New(planner.WithRand(rand.New(rand.NewPCG(3, 4))))))
	opts := ServerOptions{
		Cfg:        config.Config{MetricsEnabled: true, AllowedOrigins: []string{"*"}},
		Generators: reg,
		Metrics:    metrics.New(),
		Log:        zerolog.Nop(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestReadyz(t *testing.T) {
	t.Run("no dependency", func(t *testing.T) {
		rec := do(t, newTestServer(t, nil), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redis up then down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		s := newTestServer(t, func(o *ServerOptions) { o.Ready = RedisReadiness(client) })
		assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/readyz", "").Code)

		mr.Close()
		assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/readyz", "").Code)
	})
}

func TestPlan(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/v1/plans",
		`{"fitness_level":"advanced","goal":"muscle gain","days_per_week":2,"equipment":"full gym","duration":60}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[planResponse](t, rec)
	assert.Equal(t, generators.NameTemplate, resp.Strategy)
	assert.True(t, strings.HasPrefix(resp.Plan, "Workout Plan (advanced level, muscle gain focus, 2 days/week, full gym):"))
	assert.Contains(t, resp.Plan, "3 sets of 10-15 reps")
	assert.True(t, strings.HasSuffix(resp.Plan, "Aim to complete each workout session in about 60 minutes.\n"))
}

func TestPlan_PlainText(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/plans",
		strings.NewReader(`{"fitness_level":"beginner","goal":"flexibility","days_per_week":1,"equipment":"no_equipment","body_weight_only":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	rec := httptest.NewRecorder()
	newTestServer(t, nil).Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Workout Plan (beginner level, flexibility focus, 1 days/week, body weight only):\n\nDay 1:\n"))
	assert.Contains(t, rec.Body.String(), "3 sets of 30-60 seconds")
}

func TestWantsText(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"*/*", false},
		{"application/json", false},
		{"text/plain", true},
		{"text/*", true},
		{"application/json;q=0.5, text/plain", true},
		{"application/json, text/plain;q=0.2", false},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/plans", nil)
			req.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, wantsText(req))
		})
	}
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantKind string
		wantErr  string
	}{
		{
			name:     "invalid level",
			body:     `{"fitness_level":"expert","goal":"x","days_per_week":3,"equipment":"full gym"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantKind: "invalid_fitness_level",
			wantErr:  planner.MsgInvalidFitnessLevel,
		},
		{
			name:     "invalid days",
			body:     `{"fitness_level":"beginner","goal":"x","days_per_week":0,"equipment":"full gym"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantKind: "invalid_day_count",
			wantErr:  planner.MsgInvalidDayCount,
		},
		{
			name:     "malformed json",
			body:     `{"fitness_level":`,
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid JSON body",
		},
		{
			name:     "wrong type",
			body:     `{"fitness_level":"beginner","days_per_week":{"n":3}}`,
			wantCode: http.StatusBadRequest,
		},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/plans", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			resp := decode[errorResponse](t, rec)
			assert.Equal(t, tt.wantKind, resp.Kind)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp.Error)
			}
		})
	}
}

func TestPlan_RequiresJSONContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/plans", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newTestServer(t, nil).Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestPlan_BodyTooLarge(t *testing.T) {
	body := `{"fitness_level":"beginner","goal":"` + strings.Repeat("g", 70<<10) + `","days_per_week":1,"equipment":"full gym"}`
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/v1/plans", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	assert.Equal(t, "request body too large", decode[errorResponse](t, rec).Error)
}

const llmBody = `{"fitness_level":"beginner","goal":"stay active","days_per_week":3,"equipment":"no equipment","additional_info":"knee"}`

func TestLLMPlan_NotConfigured(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/v1/plans/llm", llmBody)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLLMPlan_Inline(t *testing.T) {
	s := newTestServer(t, func(o *ServerOptions) {
		o.Generators.Register(generators.NewDelegating(stubLLM{reply: "## Your plan"}, nil))
	})
	rec := do(t, s, http.MethodPost, "/v1/plans/llm", llmBody)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[planResponse](t, rec)
	assert.Equal(t, generators.NameLLM, resp.Strategy)
	assert.Equal(t, "## Your plan", resp.Plan)
}

func TestLLMPlan_InlineProviderFailure(t *testing.T) {
	s := newTestServer(t, func(o *ServerOptions) {
		o.Generators.Register(generators.NewDelegating(stubLLM{err: errors.New("down")}, nil))
	})
	rec := do(t, s, http.MethodPost, "/v1/plans/llm", llmBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLLMPlan_Enqueued(t *testing.T) {
	enq := &stubEnqueuer{id: "job-1"}
	s := newTestServer(t, func(o *ServerOptions) { o.Jobs = enq })

	rec := do(t, s, http.MethodPost, "/v1/plans/llm", llmBody)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "/v1/plans/llm/job-1", rec.Header().Get("Location"))
	resp := decode[jobResponse](t, rec)
	assert.Equal(t, "job-1", resp.ID)
	assert.Equal(t, "knee", enq.got.AdditionalInfo)

	enq.err = errors.New("redis down")
	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodPost, "/v1/plans/llm", llmBody).Code)
}

func TestLLMPlanStatus(t *testing.T) {
	lookup := stubLookup{"job-1": {ID: "job-1", State: "completed", Plan: "the plan", MaxRetry: 3}}
	s := newTestServer(t, func(o *ServerOptions) { o.Lookup = lookup })

	rec := do(t, s, http.MethodGet, "/v1/plans/llm/job-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[jobs.Status](t, rec)
	assert.Equal(t, "the plan", st.Plan)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/v1/plans/llm/nope", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, s, http.MethodGet, "/v1/plans/llm/broken", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, newTestServer(t, nil), http.MethodGet, "/v1/plans/llm/job-1", "").Code)
}

func TestCatalogAndGenerators(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[planner.CatalogSnapshot](t, rec)
	assert.Contains(t, snap.Equipment["beginner"]["no equipment"], "Push-ups")

	rec = do(t, s, http.MethodGet, "/v1/generators", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"generators":["template"]}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodPost, "/v1/plans", `{"fitness_level":"beginner","goal":"x","days_per_week":1,"equipment":"full gym"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	disabled := newTestServer(t, func(o *ServerOptions) { o.Cfg.MetricsEnabled = false })
	assert.Equal(t, http.StatusNotFound, do(t, disabled, http.MethodGet, "/metrics", "").Code)
}
