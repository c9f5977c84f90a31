package storage

import (
	"context"
	"sync"

	"github.com/jalrakshak/jalrakshak-go/internal/session"
)

// MemorySnapshot keeps the snapshot in process memory. History then lives
// only as long as the process, which is acceptable when no DB is configured.
type MemorySnapshot struct {
	mu       sync.Mutex
	messages []session.Message
}

// NewMemory creates an empty in-memory snapshot.
func NewMemory() *MemorySnapshot {
	return &MemorySnapshot{}
}

func (s *MemorySnapshot) Load(ctx context.Context) ([]session.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]session.Message(nil), s.messages...), nil
}

func (s *MemorySnapshot) Save(ctx context.Context, messages []session.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]session.Message(nil), messages...)
	return nil
}

func (s *MemorySnapshot) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}
