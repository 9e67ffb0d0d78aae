package repository

import (
	"context"
	"sync"

	"github.com/seatkit/webinar/internal/domain"
)

// MemoryWebinarRepository keeps webinars in a guarded map. It backs tests
// and DSN-less development runs, and carries no process-wide state: each
// instance owns its own map.
type MemoryWebinarRepository struct {
	mu       sync.RWMutex
	webinars map[string]domain.Webinar
}

func NewMemoryWebinarRepository() *MemoryWebinarRepository {
	return &MemoryWebinarRepository{
		webinars: make(map[string]domain.Webinar),
	}
}

func (r *MemoryWebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.webinars[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *MemoryWebinarRepository) Create(ctx context.Context, w domain.Webinar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.webinars[w.ID]; ok {
		return domain.ConflictError{Resource: "webinar"}
	}
	r.webinars[w.ID] = w
	return nil
}

func (r *MemoryWebinarRepository) Update(ctx context.Context, w domain.Webinar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.webinars[w.ID]; !ok {
		return domain.NotFoundError{Resource: "webinar"}
	}
	r.webinars[w.ID] = w
	return nil
}
