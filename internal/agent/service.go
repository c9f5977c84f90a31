// Package agent orchestrates the conversation: it owns the single-flight ask
// gate, feeds the session store, and drives the report workflow.
package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qmuntal/stateless"

	"github.com/jalrakshak/jalrakshak-go/internal/assistant"
	"github.com/jalrakshak/jalrakshak-go/internal/history"
	"github.com/jalrakshak/jalrakshak-go/internal/location"
	"github.com/jalrakshak/jalrakshak-go/internal/logger"
	"github.com/jalrakshak/jalrakshak-go/internal/report"
	"github.com/jalrakshak/jalrakshak-go/internal/session"
)

var (
	// ErrEmptyQuery rejects queries that are empty after trimming, before
	// any store mutation or network call.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrBusy rejects an ask while another one is still in flight.
	ErrBusy = errors.New("another ask is in flight")
	// ErrMessageNotFound reports an unknown or non-agent message id.
	ErrMessageNotFound = errors.New("message not found")
)

// Ask lifecycle states and triggers. The FSM is the central enforcement of
// the at-most-one-outstanding-ask contract: submitting while awaiting is not
// a permitted transition.
var (
	stateIdle              stateless.State = "Idle"
	stateAwaitingAssistant stateless.State = "AwaitingAssistant"

	triggerAskSubmitted stateless.Trigger = "AskSubmitted"
	triggerAskFinished  stateless.Trigger = "AskFinished"
)

// ChatGateway is the assistant boundary the service talks to; mocked in tests.
type ChatGateway interface {
	Ask(ctx context.Context, query string) (assistant.Reply, error)
}

// ReportGateway is the report generator boundary.
type ReportGateway interface {
	Generate(ctx context.Context, req report.Request) (report.Artifact, error)
}

// Service ties the store, gateways and extractor together.
type Service struct {
	store     *session.Store
	chat      ChatGateway
	reports   ReportGateway
	extractor *location.Extractor
	gate      *stateless.StateMachine
}

// New creates the orchestrating service.
func New(store *session.Store, chat ChatGateway, reports ReportGateway, extractor *location.Extractor) *Service {
	gate := stateless.NewStateMachine(stateIdle)
	gate.Configure(stateIdle).
		Permit(triggerAskSubmitted, stateAwaitingAssistant)
	gate.Configure(stateAwaitingAssistant).
		Permit(triggerAskFinished, stateIdle)

	return &Service{
		store:     store,
		chat:      chat,
		reports:   reports,
		extractor: extractor,
		gate:      gate,
	}
}

// Ask appends the user query, consults the assistant and appends its reply.
// Assistant failures are absorbed here: the conversation then gets an agent
// message with fixed error text and no risk level, and Ask still returns
// that message with a nil error. The returned message is the agent reply.
func (s *Service) Ask(ctx context.Context, query string) (session.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return session.Message{}, ErrEmptyQuery
	}

	if err := s.gate.Fire(triggerAskSubmitted); err != nil {
		return session.Message{}, ErrBusy
	}
	defer func() {
		if err := s.gate.Fire(triggerAskFinished); err != nil {
			logger.L.Warn("ask gate release failed", "error", err)
		}
	}()

	s.store.Append(ctx, session.RoleUser, query)

	reply, err := s.chat.Ask(ctx, query)
	if err != nil {
		logger.L.Error("assistant call failed", "error", err, "query", query)
		return s.store.Append(ctx, session.RoleAgent, assistant.ErrorReplyContent), nil
	}

	opts := []session.MessageOption{session.WithOriginalQuery(query)}
	if reply.RiskLevel != "" {
		opts = append(opts, session.WithRiskLevel(reply.RiskLevel))
	}
	return s.store.Append(ctx, session.RoleAgent, reply.Content, opts...), nil
}

// Report derives a document from the agent message with the given id. The
// subject district comes from the message content via the extractor; the
// report title falls back to a generic one when the originating user query
// was not recorded. Failures propagate: they are the caller's to surface.
func (s *Service) Report(ctx context.Context, messageID int64) (report.Artifact, error) {
	var msg session.Message
	found := false
	for _, m := range s.store.Messages() {
		if m.ID == messageID && m.Role == session.RoleAgent {
			msg = m
			found = true
			break
		}
	}
	if !found {
		return report.Artifact{}, ErrMessageNotFound
	}

	req := report.Request{
		Query:        msg.OriginalQuery,
		Location:     s.extractor.Extract(msg.Content),
		RiskLevel:    msg.RiskLevel,
		FullResponse: msg.Content,
	}
	return s.reports.Generate(ctx, req)
}

// History returns the date-bucketed view of past user queries.
func (s *Service) History(now time.Time) []history.Group {
	return history.GroupByRecency(s.store.Messages(), now)
}

// Messages returns the full conversation in insertion order.
func (s *Service) Messages() []session.Message {
	return s.store.Messages()
}

// Clear destroys the conversation and its persisted snapshot.
func (s *Service) Clear(ctx context.Context) {
	s.store.Clear(ctx)
}
