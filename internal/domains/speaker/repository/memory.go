package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"speakers-backend/internal/domains/speaker/model"
)

// InMemory is a Repository backed by a map. It mirrors the semantics of the
// postgres implementation (server-assigned never-reused ids, server-managed
// timestamps, display defaulting) and backs the unit tests.
type InMemory struct {
	mu       sync.RWMutex
	speakers map[int64]model.Speaker
	nextID   int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		speakers: make(map[int64]model.Speaker),
		nextID:   1,
	}
}

func (m *InMemory) Create(ctx context.Context, sp *model.Speaker) (*model.Speaker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.speakers {
		if existing.Name == sp.Name {
			return nil, model.ErrDuplicateName
		}
	}

	now := time.Now()
	created := *sp
	created.ID = m.nextID
	m.nextID++ // ids are never reused, even after deletion
	if created.Display == "" {
		created.Display = model.DisplayActive
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	m.speakers[created.ID] = created
	out := created
	return &out, nil
}

func (m *InMemory) GetByID(ctx context.Context, id int64) (*model.Speaker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sp, ok := m.speakers[id]
	if !ok {
		return nil, nil
	}
	out := sp
	return &out, nil
}

func matches(sp model.Speaker, f model.Filter) bool {
	if f.Category != "" && sp.Category != f.Category {
		return false
	}
	if f.Type != "" && sp.Type != f.Type {
		return false
	}
	if f.Display != "" && string(sp.Display) != f.Display {
		return false
	}
	return true
}

// filtered returns matching records ordered by created_at DESC, id DESC.
func (m *InMemory) filtered(f model.Filter) []model.Speaker {
	var out []model.Speaker
	for _, sp := range m.speakers {
		if matches(sp, f) {
			out = append(out, sp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out
}

func (m *InMemory) List(ctx context.Context, filter model.Filter, limit, offset int) ([]model.Speaker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.filtered(filter)
	if offset >= len(all) {
		return nil, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (m *InMemory) Count(ctx context.Context, filter model.Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.filtered(filter))), nil
}

func (m *InMemory) Update(ctx context.Context, id int64, patch model.Patch) (*model.Speaker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sp, ok := m.speakers[id]
	if !ok {
		return nil, model.ErrSpeakerNotFound
	}

	if patch.Name != nil {
		for otherID, other := range m.speakers {
			if otherID != id && other.Name == *patch.Name {
				return nil, model.ErrDuplicateName
			}
		}
		sp.Name = *patch.Name
	}
	if patch.Type != nil {
		sp.Type = *patch.Type
	}
	if patch.Category != nil {
		sp.Category = *patch.Category
	}
	if patch.Description != nil {
		sp.Description = *patch.Description
	}
	if patch.Display != nil {
		sp.Display = model.Display(*patch.Display)
	}
	if patch.Photo != nil {
		photo := *patch.Photo
		sp.Photo = &photo
	}
	sp.UpdatedAt = time.Now()

	m.speakers[id] = sp
	out := sp
	return &out, nil
}

func (m *InMemory) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.speakers[id]; !ok {
		return false, nil
	}
	delete(m.speakers, id)
	return true, nil
}

func (m *InMemory) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, sp := range m.speakers {
		if sp.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *InMemory) PhotoKeys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for _, sp := range m.speakers {
		if sp.HasPhoto() {
			keys = append(keys, *sp.Photo)
		}
	}
	return keys, nil
}

var _ Repository = (*InMemory)(nil)
