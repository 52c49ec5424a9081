// Package battlehistory archives completed battles for replay and win/loss records
package battlehistory

//go:generate mockgen -destination=mock/mock_repository.go -package=battlehistorymock github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/miniature-battle/internal/engine/battle"
)

// Repository defines the storage interface for completed battles
type Repository interface {
	// Create archives a completed battle
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves an archived battle by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns an owner's battles, newest first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Stats returns an owner's win/loss record
	Stats(ctx context.Context, input *StatsInput) (*StatsOutput, error)

	// Delete removes an archived battle
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// BattleType categorizes a battle
type BattleType string

// Battle types
const (
	BattleTypeStandard   BattleType = "standard"
	BattleTypeTournament BattleType = "tournament"
	BattleTypePractice   BattleType = "practice"
	BattleTypeRanked     BattleType = "ranked"
)

// Valid reports whether t is a known battle type
func (t BattleType) Valid() bool {
	switch t {
	case BattleTypeStandard, BattleTypeTournament, BattleTypePractice, BattleTypeRanked:
		return true
	}
	return false
}

// Status of an archived battle
type Status string

// Archived battle statuses
const (
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// ParticipantRecord is a participant as it stood when the battle ended
type ParticipantRecord struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id,omitempty"`
	StatBlockID string `json:"stat_block_id,omitempty"`
	Name        string `json:"name"`
	IsPlayer    bool   `json:"is_player"`
	Initiative  int    `json:"initiative"`
	MaxHP       int    `json:"max_hp"`
	FinalHP     int    `json:"final_hp"`
}

// BattleRecord is a completed battle
type BattleRecord struct {
	ID              string              `json:"id"`
	BattleType      BattleType          `json:"battle_type"`
	Status          Status              `json:"status"`
	Participants    []ParticipantRecord `json:"participants"`
	WinnerID        string              `json:"winner_id,omitempty"`
	WinnerOwnerID   string              `json:"winner_owner_id,omitempty"`
	WinnerName      string              `json:"winner_name,omitempty"`
	Reason          string              `json:"reason"`
	Rounds          int                 `json:"rounds"`
	DurationSeconds int64               `json:"duration_seconds"`
	Log             []battle.LogEntry   `json:"battle_log"`
	CreatedAt       time.Time           `json:"created_at"`
	CompletedAt     time.Time           `json:"completed_at"`
}

// OwnerIDs returns the distinct non-empty owners of the battle's participants
func (r *BattleRecord) OwnerIDs() []string {
	seen := make(map[string]bool)
	var owners []string
	for _, p := range r.Participants {
		if p.OwnerID == "" || seen[p.OwnerID] {
			continue
		}
		seen[p.OwnerID] = true
		owners = append(owners, p.OwnerID)
	}
	return owners
}

// CreateInput defines the request for archiving a battle
type CreateInput struct {
	Record *BattleRecord
}

// CreateOutput defines the response for archiving a battle
type CreateOutput struct {
	Record *BattleRecord
}

// GetInput defines the request for retrieving an archived battle
type GetInput struct {
	BattleID string
}

// GetOutput defines the response for retrieving an archived battle
type GetOutput struct {
	Record *BattleRecord
}

// ListInput defines the request for listing an owner's battles
type ListInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListOutput defines the response for listing an owner's battles
type ListOutput struct {
	Records []*BattleRecord
	Total   int
}

// StatsInput defines the request for an owner's win/loss record
type StatsInput struct {
	OwnerID string
}

// StatsOutput defines an owner's win/loss record
type StatsOutput struct {
	Won   int
	Lost  int
	Drawn int
	Total int
}

// DeleteInput defines the request for deleting an archived battle
type DeleteInput struct {
	BattleID string
}

// DeleteOutput defines the response for deleting an archived battle
type DeleteOutput struct{}

const defaultListLimit = 20
