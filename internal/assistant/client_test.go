package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jalrakshak/jalrakshak-go/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.ServiceConfig{BaseURL: url, TimeoutSeconds: 5})
}

func TestAsk_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Salem risk?", req["query"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"response":   "Salem is classified as Critical.",
			"risk_level": "Critical",
		})
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Ask(context.Background(), "Salem risk?")
	require.NoError(t, err)
	require.Equal(t, "Salem is classified as Critical.", reply.Content)
	require.Equal(t, "Critical", reply.RiskLevel)
}

func TestAsk_DerivesRiskWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"response": "The block is over-exploited and extraction must stop.",
		})
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Ask(context.Background(), "status?")
	require.NoError(t, err)
	require.Equal(t, "Over-Exploited", reply.RiskLevel)
}

func TestAsk_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Ask(context.Background(), "Salem risk?")
	require.Error(t, err)
	require.Contains(t, err.Error(), "model unavailable")
}

func TestAsk_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Ask(context.Background(), "Salem risk?")
	require.Error(t, err)
}

func TestDeriveRiskLevel(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"The district is Over-Exploited", "Over-Exploited"},
		{"groundwater is overexploited here", "Over-Exploited"},
		{"assessment: semi-critical zone", "Semi-Critical"},
		{"levels are CRITICAL in this block", "Critical"},
		{"the block is safe for extraction", "Safe"},
		{"no assessment available", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DeriveRiskLevel(tc.text), "text: %s", tc.text)
	}
}
