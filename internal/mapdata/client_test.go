package mapdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jalrakshak/jalrakshak-go/internal/config"
)

func TestDistricts_FromService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/map", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]District{
			"Salem":   {Coords: [2]float64{11.6643, 78.1460}, Risk: "Critical"},
			"Chennai": {Coords: [2]float64{13.0827, 80.2707}, Risk: "Safe"},
		})
	}))
	defer srv.Close()

	c := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	got := c.Districts(context.Background())
	require.Len(t, got, 2)
	require.Equal(t, "Critical", got["Salem"].Risk)
	require.Equal(t, [2]float64{13.0827, 80.2707}, got["Chennai"].Coords)
}

func TestDistricts_FallsBackToStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "map data not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(config.ServiceConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	got := c.Districts(context.Background())
	require.Equal(t, Static(), got)
}

func TestStatic(t *testing.T) {
	got := Static()
	require.Len(t, got, 36)
	require.Contains(t, got, "Chennai")
	require.Contains(t, got, "Kanniyakumari")
	for name, d := range got {
		require.Equal(t, "Unknown", d.Risk, "district %s", name)
		require.NotZero(t, d.Coords[0])
		require.NotZero(t, d.Coords[1])
	}
}
