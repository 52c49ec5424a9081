// Package battles stores the live battle sessions driven by the battle orchestrator
package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/KirkDiggler/miniature-battle/internal/repositories/battles Repository

import (
	"context"

	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
)

// Repository defines the storage interface for active battle sessions
type Repository interface {
	// Save stores or replaces a session
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a session by battle ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// List returns the IDs of all stored sessions
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// SaveInput defines the request for saving a session
type SaveInput struct {
	Session *battle.Session
	// BattleType is carried with the session until it is archived
	BattleType string
}

// SaveOutput defines the response for saving a session
type SaveOutput struct{}

// GetInput defines the request for retrieving a session
type GetInput struct {
	BattleID string
}

// GetOutput defines the response for retrieving a session
type GetOutput struct {
	Session    *battle.Session
	BattleType string
}

// DeleteInput defines the request for deleting a session
type DeleteInput struct {
	BattleID string
}

// DeleteOutput defines the response for deleting a session
type DeleteOutput struct{}

// ListInput defines the request for listing sessions
type ListInput struct {
	// States filters by session state; empty returns every session
	States []battle.State
}

// ListOutput defines the response for listing sessions
type ListOutput struct {
	BattleIDs []string
}
