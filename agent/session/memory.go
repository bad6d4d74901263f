package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStore keeps transcripts in process memory. It backs local
// development and tests when no Redis store is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transcripts: make(map[string][]byte),
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Transcript, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}

	s.mu.RLock()
	raw, ok := s.transcripts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrTranscriptNotFound
	}

	var transcript Transcript
	if err := json.Unmarshal(raw, &transcript); err != nil {
		return nil, err
	}
	return &transcript, nil
}

func (s *MemoryStore) Save(ctx context.Context, t *Transcript) error {
	if t == nil {
		return ErrNilTranscript
	}
	if strings.TrimSpace(t.SessionID) == "" {
		return ErrInvalidSession
	}

	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.transcripts[t.SessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.transcripts, sessionID)
	s.mu.Unlock()
	return nil
}
