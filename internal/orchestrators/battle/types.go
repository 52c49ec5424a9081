package battle

import (
	"time"

	engine "github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
)

// TimeoutPolicy decides what happens when a turn timer runs out
type TimeoutPolicy string

// Timeout policies
const (
	// TimeoutPass ends the turn without acting
	TimeoutPass TimeoutPolicy = "pass"
	// TimeoutAutoSelect lets the AI policy act for the idle participant
	TimeoutAutoSelect TimeoutPolicy = "auto_select"
)

// Valid reports whether p is a known policy
func (p TimeoutPolicy) Valid() bool {
	return p == TimeoutPass || p == TimeoutAutoSelect
}

// BattleView is a read-only snapshot of a battle
type BattleView struct {
	ID                  string
	BattleType          battlehistory.BattleType
	State               engine.State
	PausedFrom          engine.State
	Round               int
	TurnCount           int
	TurnTimer           int
	ActiveParticipantID string
	IsPlayerTurn        bool
	SelectedAction      string
	SelectedTargetID    string
	Participants        []engine.ParticipantStatus
	WinnerID            string
	EndReason           string
	StartedAt           time.Time
	EndedAt             time.Time
}

// CombatantInput names a combatant by catalog ID or carries an inline stat block
type CombatantInput struct {
	StatBlockID string
	// StatBlock skips the catalog lookup when set
	StatBlock *miniature.StatBlock
	IsPlayer  bool
	OwnerID   string
}

// InitializeBattleInput defines the request for starting a battle
type InitializeBattleInput struct {
	Combatants []CombatantInput
	BattleType battlehistory.BattleType
	// TurnTimer overrides the configured turn timer when positive
	TurnTimer int
}

// InitializeBattleOutput defines the response for starting a battle
type InitializeBattleOutput struct {
	BattleID string
	Battle   *BattleView
}

// RollInitiativeInput defines the request for rolling initiative
type RollInitiativeInput struct {
	BattleID string
}

// RollInitiativeOutput carries the battle with participants in turn order
type RollInitiativeOutput struct {
	Battle *BattleView
}

// SelectActionInput defines the request for choosing an action
type SelectActionInput struct {
	BattleID   string
	ActionName string
	TargetID   string
}

// SelectActionOutput defines the response for choosing an action
type SelectActionOutput struct {
	Battle *BattleView
}

// ResolveSelectedActionInput defines the request for resolving the selected action
type ResolveSelectedActionInput struct {
	BattleID string
}

// ResolveSelectedActionOutput defines the response for resolving an action
type ResolveSelectedActionOutput struct {
	Result *engine.ActionResult
	Battle *BattleView
}

// GetBattleLogInput defines the request for reading the battle log
type GetBattleLogInput struct {
	BattleID string
	// Limit returns only the most recent entries when positive
	Limit int
}

// GetBattleLogOutput defines the response for reading the battle log
type GetBattleLogOutput struct {
	Entries []engine.LogEntry
}

// GetParticipantStatusInput defines the request for participant progress
type GetParticipantStatusInput struct {
	BattleID string
}

// GetParticipantStatusOutput defines the response for participant progress
type GetParticipantStatusOutput struct {
	Participants []engine.ParticipantStatus
}

// GetBattleInput defines the request for a battle snapshot
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput defines the response for a battle snapshot
type GetBattleOutput struct {
	Battle *BattleView
}

// GetAvailableActionsInput defines the request for the active participant's actions
type GetAvailableActionsInput struct {
	BattleID string
}

// GetAvailableActionsOutput defines the response for the active participant's actions
type GetAvailableActionsOutput struct {
	ParticipantID string
	Actions       []miniature.Action
}

// CancelSelectionInput defines the request for dropping a selected action
type CancelSelectionInput struct {
	BattleID string
}

// CancelSelectionOutput defines the response for dropping a selected action
type CancelSelectionOutput struct {
	Battle *BattleView
}

// PauseBattleInput defines the request for pausing a battle
type PauseBattleInput struct {
	BattleID string
}

// PauseBattleOutput defines the response for pausing a battle
type PauseBattleOutput struct {
	Battle *BattleView
}

// ResumeBattleInput defines the request for resuming a battle
type ResumeBattleInput struct {
	BattleID string
}

// ResumeBattleOutput defines the response for resuming a battle
type ResumeBattleOutput struct {
	Battle *BattleView
}

// AbortBattleInput defines the request for ending a battle early.
// An empty ForfeitingParticipantID aborts without a winner.
type AbortBattleInput struct {
	BattleID                string
	ForfeitingParticipantID string
}

// AbortBattleOutput defines the response for ending a battle early
type AbortBattleOutput struct {
	Battle *BattleView
}

// TickTimerInput defines the request for counting down the turn timer
type TickTimerInput struct {
	BattleID string
	Elapsed  int
}

// TickTimerOutput defines the response for counting down the turn timer
type TickTimerOutput struct {
	Expired bool
	// Result is set when the timeout policy resolved an action
	Result *engine.ActionResult
	Battle *BattleView
}

// TakeAITurnInput defines the request for letting the AI act on an enemy turn
type TakeAITurnInput struct {
	BattleID string
}

// TakeAITurnOutput defines the response for an AI turn
type TakeAITurnOutput struct {
	ActionName string
	TargetID   string
	Result     *engine.ActionResult
	Battle     *BattleView
}

// ApplyConditionInput defines the request for applying a condition
type ApplyConditionInput struct {
	BattleID      string
	ParticipantID string
	Condition     engine.Condition
}

// ApplyConditionOutput defines the response for applying a condition
type ApplyConditionOutput struct {
	Battle *BattleView
}

// ApplyHealingInput defines the request for healing a participant
type ApplyHealingInput struct {
	BattleID      string
	ParticipantID string
	Amount        int
}

// ApplyHealingOutput defines the response for healing a participant
type ApplyHealingOutput struct {
	Healed int
	Battle *BattleView
}

// ApplyAreaDamageInput defines the request for damaging several participants at once
type ApplyAreaDamageInput struct {
	BattleID       string
	ParticipantIDs []string
	Amount         int
	DamageType     miniature.DamageType
}

// ApplyAreaDamageOutput defines the response for area damage
type ApplyAreaDamageOutput struct {
	Battle *BattleView
}

// ResetBattleInput defines the request for discarding a battle
type ResetBattleInput struct {
	BattleID string
}

// ResetBattleOutput defines the response for discarding a battle
type ResetBattleOutput struct{}

// ListHistoryInput defines the request for an owner's archived battles
type ListHistoryInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListHistoryOutput defines the response for an owner's archived battles
type ListHistoryOutput struct {
	Records []*battlehistory.BattleRecord
	Total   int
}

// GetHistoryInput defines the request for one archived battle
type GetHistoryInput struct {
	BattleID string
}

// GetHistoryOutput defines the response for one archived battle
type GetHistoryOutput struct {
	Record *battlehistory.BattleRecord
}

// GetStatsInput defines the request for an owner's win/loss record
type GetStatsInput struct {
	OwnerID string
}

// GetStatsOutput defines the response for an owner's win/loss record
type GetStatsOutput struct {
	Won   int
	Lost  int
	Drawn int
	Total int
}
