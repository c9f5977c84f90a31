package session

import (
	"context"
	"sync"
	"time"

	"github.com/jalrakshak/jalrakshak-go/internal/logger"
)

// Snapshot is the persistence port for the conversation. Implementations
// round-trip the full ordered message sequence; Load on an absent snapshot
// returns an empty sequence and no error.
type Snapshot interface {
	Load(ctx context.Context) ([]Message, error)
	Save(ctx context.Context, messages []Message) error
	Delete(ctx context.Context) error
}

// Store owns the ordered message sequence for one session and drives
// persistence. All message creation goes through Append; the sequence is
// append-only except for ReplaceAll (load path) and Clear.
//
// The mutex covers the storage call as well as the in-memory mutation, so
// writes reach the snapshot in mutation order: a Save from an earlier Append
// can never land after the Delete of a later Clear.
type Store struct {
	mu       sync.Mutex
	snap     Snapshot
	messages []Message
	lastID   int64
	hydrated bool
}

// NewStore creates a store backed by the given snapshot.
func NewStore(snap Snapshot) *Store {
	return &Store{snap: snap}
}

// Hydrate performs the one-time load of persisted state. Until it has run,
// mutations do not write to storage; a slow load can therefore never race a
// premature empty write that would destroy saved history. An unreadable
// snapshot is treated as no history.
func (s *Store) Hydrate(ctx context.Context) {
	msgs, err := s.snap.Load(ctx)
	if err != nil {
		logger.L.Warn("failed to load session snapshot; starting empty", "error", err)
		msgs = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = msgs
	for _, m := range msgs {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	s.hydrated = true
}

// Append constructs a new message, adds it to the sequence and persists the
// full sequence. The created message is returned so callers can reference it
// without re-querying.
func (s *Store) Append(ctx context.Context, role Role, content string, opts ...MessageOption) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	msg := Message{
		ID:        s.nextID(now),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
	for _, opt := range opts {
		opt(&msg)
	}
	s.messages = append(s.messages, msg)
	s.persistLocked(ctx)
	return msg
}

// ReplaceAll installs a sequence wholesale, bypassing append semantics. It is
// meant for restoring a previously serialized conversation.
func (s *Store) ReplaceAll(ctx context.Context, messages []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append([]Message(nil), messages...)
	s.lastID = 0
	for _, m := range s.messages {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	s.persistLocked(ctx)
}

// Clear empties the sequence and deletes the stored snapshot in the same
// logical step. Before hydration the delete is skipped like any other write;
// the saved history then survives for the hydration to load.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	if !s.hydrated {
		logger.L.Warn("clear before hydration; stored snapshot left untouched")
		return
	}
	if err := s.snap.Delete(ctx); err != nil {
		logger.L.Error("failed to delete session snapshot", "error", err)
	}
}

// Messages returns a copy of the current sequence in insertion order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Len returns the number of messages in the sequence.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// nextID derives a creation-time identifier that stays strictly increasing
// even when two messages are created within the same millisecond.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persistLocked writes the full current sequence while s.mu is held.
func (s *Store) persistLocked(ctx context.Context) {
	if !s.hydrated {
		return
	}
	if err := s.snap.Save(ctx, append([]Message(nil), s.messages...)); err != nil {
		logger.L.Error("failed to persist session snapshot", "error", err)
	}
}
