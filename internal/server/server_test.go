package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/answerlens/aeoscan/app"
	"github.com/answerlens/aeoscan/domain"
)

func newTestServer() *Server {
	return New(app.NewAnalyzeUseCase(nil), nil)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer()

	// Generate one request so counters exist.
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "aeoscan_http_requests_total") {
		t.Error("metrics output missing request counter")
	}
}

func TestAnalyzeRejectsMissingURL(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeRejectsMalformedBody(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeWithInlineEvidence(t *testing.T) {
	srv := newTestServer()

	ev := domain.NewEvidence("https://example.com/guide")
	ev.Content.WordCount = 500
	ev.Content.BodyText = "Plenty of content for the analyzers to look at here."
	body, _ := json.Marshal(map[string]interface{}{
		"url":                    "https://example.com/guide",
		"tier":                   "free",
		"includeRecommendations": true,
		"evidence":               ev,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp domain.AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.TotalScore < 0 || resp.TotalScore > 100 {
		t.Errorf("TotalScore = %f", resp.TotalScore)
	}
	if resp.Recommendations == nil {
		t.Error("recommendations were requested")
	}
	if resp.Recommendations != nil && resp.Recommendations.Tier != domain.TierFree {
		t.Errorf("Tier = %q", resp.Recommendations.Tier)
	}
}

func TestAnalyzeDefaultsToAnonymousTier(t *testing.T) {
	srv := newTestServer()

	ev := domain.NewEvidence("https://example.com/guide")
	ev.Content.WordCount = 20
	ev.Content.BodyText = "Thin page."
	body, _ := json.Marshal(map[string]interface{}{
		"url":                    "https://example.com/guide",
		"includeRecommendations": true,
		"evidence":               ev,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp domain.AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.Recommendations == nil || resp.Recommendations.Tier != domain.TierAnonymous {
		t.Errorf("recommendations = %+v, want anonymous tier", resp.Recommendations)
	}
	if len(resp.Recommendations.Recommendations) != 0 {
		t.Error("anonymous callers should see no recommendation bodies")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id-123")
	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-id-123" {
		t.Errorf("X-Request-ID = %q", got)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("a request id should be generated when none is supplied")
	}
}
