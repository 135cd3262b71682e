package session

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

type memoryEntry struct {
	dialogue scheduling.Dialogue
	savedAt  time.Time
}

// MemoryStore диалоги в памяти процесса
type MemoryStore struct {
	mu        sync.RWMutex
	dialogues map[string]*memoryEntry
	ttl       time.Duration
	now       func() time.Time
}

// NewMemoryStore ttl <= 0 отключает очистку
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		dialogues: make(map[string]*memoryEntry),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) (scheduling.Dialogue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, exists := s.dialogues[key]; exists {
		return entry.dialogue, nil
	}
	return idle(), nil
}

// Save сохраняет диалог; пустой idle-диалог удаляет запись
func (s *MemoryStore) Save(_ context.Context, key string, d scheduling.Dialogue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if isBlank(d) {
		delete(s.dialogues, key)
		return nil
	}
	s.dialogues[key] = &memoryEntry{dialogue: d, savedAt: s.now()}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.dialogues, key)
	return nil
}

// Cleanup удаляет диалоги, не менявшиеся дольше ttl. Возвращает число удалённых.
func (s *MemoryStore) Cleanup(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.dialogues {
		if now.Sub(entry.savedAt) > s.ttl {
			delete(s.dialogues, key)
			removed++
		}
	}
	return removed
}

// Len количество активных диалогов
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dialogues)
}
