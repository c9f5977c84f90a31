package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jalrakshak/jalrakshak-go/internal/config"
	"github.com/jalrakshak/jalrakshak-go/internal/logger"
)

// DefaultTitle is used as the report query when the originating agent message
// has no recorded user question.
const DefaultTitle = "Groundwater Risk Report"

// Request carries everything the report service needs to render a document.
type Request struct {
	Query        string `json:"query"`
	Location     string `json:"location"`
	RiskLevel    string `json:"risk_level"`
	FullResponse string `json:"full_response"`
}

// Artifact is the opaque downloadable document returned by the report
// service, with a derived filename that is unique per request.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Client is the gateway to the remote report generator.
type Client struct {
	r *resty.Client
}

// NewClient creates a report gateway from service config.
func NewClient(cfg config.ServiceConfig) *Client {
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return &Client{r: r}
}

// Generate requests a document for the given assessment. Failures carry the
// server's error detail and are the caller's to surface; nothing is retried
// here.
func (c *Client) Generate(ctx context.Context, req Request) (Artifact, error) {
	if req.Query == "" {
		req.Query = DefaultTitle
	}

	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(req).
		Post("/report")
	if err != nil {
		return Artifact{}, fmt.Errorf("report request failed: %w", err)
	}
	if resp.IsError() {
		return Artifact{}, fmt.Errorf("report generation failed: %s", strings.TrimSpace(string(resp.Body())))
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	art := Artifact{
		Filename:    Filename(req.Location, time.Now()),
		ContentType: contentType,
		Data:        resp.Body(),
	}
	logger.L.Info("report generated", "location", req.Location, "filename", art.Filename, "bytes", len(art.Data))
	return art, nil
}

// Filename derives a download name embedding the resolved location and a
// timestamp token, so repeated reports for the same district never collide.
func Filename(location string, now time.Time) string {
	loc := strings.ReplaceAll(strings.TrimSpace(location), " ", "_")
	if loc == "" {
		loc = "Report"
	}
	return fmt.Sprintf("Jal_Rakshak_Report_%s_%d.pdf", loc, now.UnixNano())
}
