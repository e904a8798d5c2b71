package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	requireStatus(t, w, http.StatusOK)
	require.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestPreflightGetsEmptyOK(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/case-precedents", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	requireStatus(t, w, http.StatusOK)
	require.Empty(t, w.Body.String())
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/case-precedents"},
		{http.MethodGet, "/api/cases"},
		{http.MethodPost, "/api/cases"},
		{http.MethodGet, "/api/backlog"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodGet, "/api/precedents"},
		{http.MethodPost, "/api/assistant/chat"},
		{http.MethodGet, "/api/me"},
	}

	for _, route := range protected {
		w := env.do(t, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestLegalResearchIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.ai.reply = "analysis"

	w := env.do(t, http.MethodPost, "/legal-research", "", map[string]any{
		"query": "What is anticipatory bail?",
	})
	requireStatus(t, w, http.StatusOK)
}
