package session

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one unit of conversation. Messages are created by the Store and
// never mutated afterwards; RiskLevel and OriginalQuery are optional and
// empty when absent.
type Message struct {
	ID            int64     `json:"id"`
	Role          Role      `json:"role"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	RiskLevel     string    `json:"risk_level,omitempty"`
	OriginalQuery string    `json:"original_query,omitempty"`
}

// MessageOption enriches a message at creation time.
type MessageOption func(*Message)

// WithRiskLevel attaches a risk classification to an agent message.
func WithRiskLevel(level string) MessageOption {
	return func(m *Message) { m.RiskLevel = level }
}

// WithOriginalQuery records the user query an agent message answered, so the
// report workflow can title its output after the original question.
func WithOriginalQuery(query string) MessageOption {
	return func(m *Message) { m.OriginalQuery = query }
}
