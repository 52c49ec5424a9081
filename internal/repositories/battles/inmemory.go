package battles

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Sessions are returned by reference; callers serialize access per battle.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entry
}

type entry struct {
	session    *battle.Session
	battleType string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entry),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a session
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.InvalidArgument("session is required")
	}

	if input.Session.ID() == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Session.ID()] = &entry{
		session:    input.Session,
		battleType: input.BattleType,
	}

	return &SaveOutput{}, nil
}

// Get retrieves a session by battle ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.BattleID]
	if !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID).WithMeta("battle_id", input.BattleID)
	}

	return &GetOutput{
		Session:    stored.session,
		BattleType: stored.battleType,
	}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.BattleID]; !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID).WithMeta("battle_id", input.BattleID)
	}

	delete(r.store, input.BattleID)

	return &DeleteOutput{}, nil
}

// List returns the stored battle IDs in sorted order
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id, stored := range r.store {
		if len(input.States) > 0 && !slices.Contains(input.States, stored.session.State()) {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return &ListOutput{BattleIDs: ids}, nil
}
