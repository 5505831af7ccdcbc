package requests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Create a client against a test server, with a recording wait so the
// tests never actually sleep.
func newTestClient(waited *[]time.Duration) *RiotClient {
	return &RiotClient{
		httpClient: &http.Client{Timeout: time.Second},
		apiKey:     "test-key",
		baseWait: func(ctx context.Context, d time.Duration) error {
			*waited = append(*waited, d)
			return ctx.Err()
		},
	}
}

// A 429 must be retried after the server provided delay.
func TestGetRetriesOn429(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Riot-Token"))

		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var waited []time.Duration
	client := newTestClient(&waited)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, int32(2), hits.Load())
	require.Len(t, waited, 1)
	assert.Equal(t, 3*time.Second, waited[0])
}

// A 403 is reported to the caller without any retry.
func TestGetDoesNotRetryOn403(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":{"message":"Forbidden"}}`))
	}))
	defer server.Close()

	var waited []time.Duration
	client := newTestClient(&waited)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	assert.False(t, resp.Ok)
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Equal(t, int32(1), hits.Load())
	assert.Empty(t, waited)
	assert.Equal(t, "Riot 403: Forbidden", resp.ErrorMessage())
}

// A missing key must fail before any request is made.
func TestGetRequiresApiKey(t *testing.T) {
	client := &RiotClient{httpClient: &http.Client{}}

	_, err := client.Get(context.Background(), "http://localhost")
	assert.Error(t, err)
}

// Cancellation during the 429 wait must abort the retry loop.
func TestGetAbortsOnCancelledWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())

	client := &RiotClient{
		httpClient: &http.Client{Timeout: time.Second},
		apiKey:     "test-key",
		baseWait: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	_, err := client.Get(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

// Test the retry-after header parsing and its fallback.
func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{
			name:     "valid header",
			value:    "7",
			expected: 7 * time.Second,
		},
		{
			name:     "missing header",
			value:    "",
			expected: 120 * time.Second,
		},
		{
			name:     "garbage header",
			value:    "soon",
			expected: 120 * time.Second,
		},
		{
			name:     "non positive header",
			value:    "0",
			expected: 120 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.value != "" {
				header.Set("Retry-After", tt.value)
			}
			assert.Equal(t, tt.expected, retryAfter(header))
		})
	}
}

// Test the error message extraction from the riot error body.
func TestErrorMessage(t *testing.T) {
	withMessage := &RiotResponse{Status: 404, Body: []byte(`{"status":{"message":"Data not found"}}`)}
	assert.Equal(t, "Riot 404: Data not found", withMessage.ErrorMessage())

	withoutMessage := &RiotResponse{Status: 500, Body: []byte(`{}`)}
	assert.Equal(t, "Riot 500", withoutMessage.ErrorMessage())

	garbage := &RiotResponse{Status: 502, Body: []byte("bad gateway")}
	assert.Equal(t, "Riot 502", garbage.ErrorMessage())
}

// Test the response decoding.
func TestDecode(t *testing.T) {
	resp := &RiotResponse{Ok: true, Status: 200, Body: []byte(`["NA1_1","NA1_2"]`)}

	var ids []string
	require.NoError(t, resp.Decode(&ids))
	assert.Equal(t, []string{"NA1_1", "NA1_2"}, ids)

	bad := &RiotResponse{Ok: true, Status: 200, Body: []byte("not json")}
	assert.Error(t, bad.Decode(&ids))
}
