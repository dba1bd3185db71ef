package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRateLimitDecision(RateLimitAllowed)
	c.RecordRateLimitDecision(RateLimitAllowed)
	c.RecordRateLimitDecision(RateLimitRejected)
	c.RecordCompletion(CompletionSuccess, 2*time.Second)
	c.RecordHTTPRequest(http.MethodGet, "GET /wardrobe", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.rateLimitDecisions.WithLabelValues(RateLimitAllowed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimitDecisions.WithLabelValues(RateLimitRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completions.WithLabelValues(CompletionSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues(http.MethodGet, "GET /wardrobe", "200")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordCompletion(CompletionFailure, time.Second)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `wardrobe_llm_completions_total{outcome="failure"} 1`)
}
