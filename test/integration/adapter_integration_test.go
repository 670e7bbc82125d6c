//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotemint/quotegen/internal/adapters/clients"
	"github.com/quotemint/quotegen/internal/adapters/clients/acl"
	"github.com/quotemint/quotegen/internal/domain"
	"github.com/quotemint/quotegen/internal/platform/config"
)

const testModel = "gemini-2.0-flash"

// testOracleConfig returns a client config pointed at a fake oracle server.
func testOracleConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "gemini",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 2,
		},
	}
}

func newOracle(t *testing.T, baseURL string) *acl.GeminiClient {
	t.Helper()

	client, err := clients.New(testOracleConfig(baseURL))
	require.NoError(t, err)

	return acl.NewGeminiClient(acl.GeminiClientConfig{
		Client: client,
		Model:  testModel,
	})
}

// candidateReply builds a generateContent response body with one candidate.
func candidateReply(parts ...string) []byte {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type candidate struct {
		Content content `json:"content"`
	}

	var ps []part
	for _, p := range parts {
		ps = append(ps, part{Text: p})
	}

	body, _ := json.Marshal(map[string][]candidate{
		"candidates": {{Content: content{Parts: ps}}},
	})

	return body
}

// TestGeminiClient_Complete_Integration verifies the full request and
// response translation through the adapter.
func TestGeminiClient_Complete_Integration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/"+testModel+":generateContent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Contents, 1)
		require.Len(t, payload.Contents[0].Parts, 1)
		assert.Contains(t, payload.Contents[0].Parts[0].Text, "3 fans")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(candidateReply("{\"quotation_details\":", " {}}"))
	}))
	defer server.Close()

	oracle := newOracle(t, server.URL)

	reply, err := oracle.Complete(context.Background(), "extract 3 fans at 1500 each")

	require.NoError(t, err)
	assert.Equal(t, `{"quotation_details": {}}`, reply)
}

// TestGeminiClient_Complete_EmptyCandidates verifies that a reply without
// candidates maps to an oracle error.
func TestGeminiClient_Complete_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	oracle := newOracle(t, server.URL)

	_, err := oracle.Complete(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, domain.IsOracle(err), "expected oracle error")
	assert.Contains(t, err.Error(), "empty completion")
}

// TestGeminiClient_ErrorMapping verifies that API failures map to domain
// oracle errors with useful reasons.
func TestGeminiClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantReason string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"error": {"code": 401, "message": "API key not valid", "status": "UNAUTHENTICATED"}}`,
			wantReason: "authentication failed",
		},
		{
			name:       "quota exhausted",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`,
			wantReason: "quota exhausted",
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			body:       `{"error": {"code": 400, "message": "invalid model", "status": "INVALID_ARGUMENT"}}`,
			wantReason: "INVALID_ARGUMENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			oracle := newOracle(t, server.URL)

			_, err := oracle.Complete(context.Background(), "anything")

			require.Error(t, err)
			assert.True(t, domain.IsOracle(err), "expected oracle error")
			assert.Contains(t, err.Error(), tt.wantReason)
		})
	}
}

// TestGeminiClient_ErrorMapping_ServerFailure verifies that 5xx responses
// surface as oracle errors after retries are exhausted.
func TestGeminiClient_ErrorMapping_ServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`internal server error`))
	}))
	defer server.Close()

	cfg := testOracleConfig(server.URL)
	cfg.Retry.MaxAttempts = 1 // Fail fast for this test

	client, err := clients.New(cfg)
	require.NoError(t, err)

	oracle := acl.NewGeminiClient(acl.GeminiClientConfig{Client: client, Model: testModel})

	_, err = oracle.Complete(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, domain.IsOracle(err), "expected oracle error")
}

// TestGeminiClient_ErrorMapping_CircuitOpen verifies that circuit breaker
// open state is reported as an oracle error without hitting the server.
func TestGeminiClient_ErrorMapping_CircuitOpen(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testOracleConfig(server.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 2

	client, err := clients.New(cfg)
	require.NoError(t, err)

	oracle := acl.NewGeminiClient(acl.GeminiClientConfig{Client: client, Model: testModel})

	// Trip the circuit breaker
	_, _ = oracle.Complete(context.Background(), "first")
	_, _ = oracle.Complete(context.Background(), "second")

	// This call should fail fast with circuit open
	callsBefore := atomic.LoadInt32(&calls)
	_, err = oracle.Complete(context.Background(), "third")

	require.Error(t, err)
	assert.True(t, domain.IsOracle(err), "expected oracle error")
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, callsBefore, atomic.LoadInt32(&calls), "no server call when circuit is open")
}

// TestGeminiClient_HealthCheck_Integration verifies the health check hits
// the model metadata endpoint.
func TestGeminiClient_HealthCheck_Integration(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/"+testModel, r.URL.Path)

		if healthy.Load() {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name": "models/` + testModel + `"}`))
			return
		}

		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	oracle := newOracle(t, server.URL)

	assert.Equal(t, "gemini", oracle.Name())
	require.NoError(t, oracle.Check(context.Background()))

	healthy.Store(false)

	err := oracle.Check(context.Background())
	require.Error(t, err)
}
