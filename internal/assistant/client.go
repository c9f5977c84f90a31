package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jalrakshak/jalrakshak-go/internal/config"
)

// ErrorReplyContent is the fixed reply text shown in the conversation when
// the assistant service cannot be reached or returns a non-success status.
const ErrorReplyContent = "Sorry, I encountered an error. Please make sure the API server is running."

// Reply is the assistant's answer to one query. RiskLevel is empty when the
// assistant produced no structured risk result.
type Reply struct {
	Content   string
	RiskLevel string
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Response  string `json:"response"`
	RiskLevel string `json:"risk_level"`
}

// Client is the gateway to the remote assistant service. It is stateless per
// call; callers serialize concurrent asks.
type Client struct {
	r *resty.Client
}

// NewClient creates an assistant gateway from service config.
func NewClient(cfg config.ServiceConfig) *Client {
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return &Client{r: r}
}

// Ask submits a query and returns the assistant's reply. Transport failures
// and non-success statuses come back as errors for the caller to absorb into
// the conversation.
func (c *Client) Ask(ctx context.Context, query string) (Reply, error) {
	var out askResponse
	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(askRequest{Query: query}).
		SetResult(&out).
		Post("/chat")
	if err != nil {
		return Reply{}, fmt.Errorf("assistant request failed: %w", err)
	}
	if resp.IsError() {
		return Reply{}, fmt.Errorf("assistant returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	reply := Reply{Content: out.Response, RiskLevel: out.RiskLevel}
	if reply.RiskLevel == "" || reply.RiskLevel == "Unknown" {
		reply.RiskLevel = DeriveRiskLevel(reply.Content)
	}
	return reply, nil
}

// DeriveRiskLevel classifies a free-text assessment by the groundwater risk
// category it mentions. It returns the empty string when no category is
// recognized. Order matters: "over-exploited" and "semi-critical" both
// contain "critical" and are checked first.
func DeriveRiskLevel(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "over-exploited") || strings.Contains(lower, "overexploited"):
		return "Over-Exploited"
	case strings.Contains(lower, "semi-critical"):
		return "Semi-Critical"
	case strings.Contains(lower, "critical"):
		return "Critical"
	case strings.Contains(lower, "safe"):
		return "Safe"
	}
	return ""
}
