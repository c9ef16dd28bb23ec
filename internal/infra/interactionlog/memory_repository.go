package interactionlog

import (
	"context"
	"sync"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
)

const defaultCapacity = 1000

// MemoryRepository keeps the latest interactions in a ring for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	items    []suggestion.Interaction
}

// NewMemoryRepository constructs a repo holding at most capacity records.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// Record implements suggestion.InteractionRecorder.
func (r *MemoryRepository) Record(_ context.Context, interaction suggestion.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, interaction)
	if over := len(r.items) - r.capacity; over > 0 {
		r.items = append(r.items[:0:0], r.items[over:]...)
	}
	return nil
}

// Recent implements suggestion.InteractionLog.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]suggestion.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	limit = clampLimit(limit)
	if limit > len(r.items) {
		limit = len(r.items)
	}
	out := make([]suggestion.Interaction, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}

var _ suggestion.InteractionLog = (*MemoryRepository)(nil)
