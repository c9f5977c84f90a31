package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jalrakshak/jalrakshak-go/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.ServiceConfig{BaseURL: url, TimeoutSeconds: 5})
}

func TestGenerate_Success(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake document")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/report", r.URL.Path)

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Salem", req.Location)
		require.Equal(t, "Salem risk?", req.Query)

		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	art, err := newTestClient(srv.URL).Generate(context.Background(), Request{
		Query:        "Salem risk?",
		Location:     "Salem",
		RiskLevel:    "Critical",
		FullResponse: "Salem is Critical",
	})
	require.NoError(t, err)
	require.Equal(t, pdf, art.Data)
	require.Equal(t, "application/pdf", art.ContentType)
	require.Contains(t, art.Filename, "Salem")
	require.Contains(t, art.Filename, ".pdf")
}

func TestGenerate_FilenamesNeverCollide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pdf"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	first, err := c.Generate(context.Background(), Request{Location: "Salem"})
	require.NoError(t, err)
	second, err := c.Generate(context.Background(), Request{Location: "Salem"})
	require.NoError(t, err)
	require.NotEqual(t, first.Filename, second.Filename)
}

func TestGenerate_DefaultTitle(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		json.NewDecoder(r.Body).Decode(&req)
		gotQuery = req.Query
		w.Write([]byte("pdf"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), Request{Location: "Salem"})
	require.NoError(t, err)
	require.Equal(t, DefaultTitle, gotQuery)
}

func TestGenerate_FailureCarriesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Report generation failed: template missing", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), Request{Location: "Salem"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "template missing")
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	name := Filename("Tamil Nadu District", now)
	require.Contains(t, name, "Jal_Rakshak_Report_Tamil_Nadu_District_")
	require.Contains(t, name, ".pdf")

	require.Contains(t, Filename("", now), "Jal_Rakshak_Report_Report_")
}
