// Package battle implements the battle orchestrator: it drives engine sessions
// for callers, persists them between calls and archives finished battles.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/miniature-battle/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	engine "github.com/KirkDiggler/miniature-battle/internal/engine/battle"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/pkg/clock"
	"github.com/KirkDiggler/miniature-battle/internal/pkg/idgen"
	battlehistory "github.com/KirkDiggler/miniature-battle/internal/repositories/battle_history"
	"github.com/KirkDiggler/miniature-battle/internal/repositories/battles"
	"github.com/KirkDiggler/miniature-battle/internal/services/statblock"
)

// Service defines the interface for battle operations
type Service interface {
	// InitializeBattle creates a session from two or more combatants
	InitializeBattle(ctx context.Context, input *InitializeBattleInput) (*InitializeBattleOutput, error)

	// RollInitiative orders the participants and starts the first turn
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)

	// SelectAction chooses an action and target for the active participant
	SelectAction(ctx context.Context, input *SelectActionInput) (*SelectActionOutput, error)

	// ResolveSelectedAction rolls the selected action and advances the battle
	ResolveSelectedAction(ctx context.Context, input *ResolveSelectedActionInput) (*ResolveSelectedActionOutput, error)

	// GetBattleLog returns a copy of the battle log
	GetBattleLog(ctx context.Context, input *GetBattleLogInput) (*GetBattleLogOutput, error)

	// GetParticipantStatus returns per-participant progress
	GetParticipantStatus(ctx context.Context, input *GetParticipantStatusInput) (*GetParticipantStatusOutput, error)

	// GetBattle returns a snapshot of the battle
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// GetAvailableActions returns the actions the active participant can pick
	GetAvailableActions(ctx context.Context, input *GetAvailableActionsInput) (*GetAvailableActionsOutput, error)

	// CancelSelection drops a selected but unresolved action
	CancelSelection(ctx context.Context, input *CancelSelectionInput) (*CancelSelectionOutput, error)

	// PauseBattle suspends an active battle
	PauseBattle(ctx context.Context, input *PauseBattleInput) (*PauseBattleOutput, error)

	// ResumeBattle continues a paused battle
	ResumeBattle(ctx context.Context, input *ResumeBattleInput) (*ResumeBattleOutput, error)

	// AbortBattle ends a battle early by forfeit or without a winner
	AbortBattle(ctx context.Context, input *AbortBattleInput) (*AbortBattleOutput, error)

	// TickTimer counts down the turn timer and applies the timeout policy when it runs out
	TickTimer(ctx context.Context, input *TickTimerInput) (*TickTimerOutput, error)

	// TakeAITurn picks and resolves an action for a non-player turn
	TakeAITurn(ctx context.Context, input *TakeAITurnInput) (*TakeAITurnOutput, error)

	// ApplyCondition adds a condition to a participant
	ApplyCondition(ctx context.Context, input *ApplyConditionInput) (*ApplyConditionOutput, error)

	// ApplyHealing restores hit points to a participant
	ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error)

	// ApplyAreaDamage deals the same damage to several participants, for hazards and area effects
	ApplyAreaDamage(ctx context.Context, input *ApplyAreaDamageInput) (*ApplyAreaDamageOutput, error)

	// ResetBattle discards a battle. Archived history is kept.
	ResetBattle(ctx context.Context, input *ResetBattleInput) (*ResetBattleOutput, error)

	// ListHistory returns an owner's archived battles, newest first
	ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error)

	// GetHistory returns one archived battle
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// GetStats returns an owner's win/loss record
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	IDGenerator idgen.Generator
	BattleRepo  battles.Repository
	HistoryRepo battlehistory.Repository
	StatBlocks  statblock.Provider

	// Optional dependencies
	Clock    clock.Clock
	Roller   dice.Roller
	EventBus events.EventBus
	Policy   engine.Policy

	// TurnTimer is the default turn length; zero uses the engine default
	TurnTimer     int
	TimeoutPolicy TimeoutPolicy
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.StatBlocks == nil {
		vb.RequiredField("StatBlocks")
	}
	errors.ValidateMin("TurnTimer", c.TurnTimer, 0, vb)
	if c.TimeoutPolicy != "" && !c.TimeoutPolicy.Valid() {
		vb.InvalidField("TimeoutPolicy", string(c.TimeoutPolicy))
	}

	return vb.Build()
}

type orchestrator struct {
	idGen         idgen.Generator
	battleRepo    battles.Repository
	historyRepo   battlehistory.Repository
	statBlocks    statblock.Provider
	clock         clock.Clock
	roller        dice.Roller
	eventBus      events.EventBus
	policy        engine.Policy
	turnTimer     int
	timeoutPolicy TimeoutPolicy

	// one lock per battle serializes every operation on a session
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		idGen:         cfg.IDGenerator,
		battleRepo:    cfg.BattleRepo,
		historyRepo:   cfg.HistoryRepo,
		statBlocks:    cfg.StatBlocks,
		clock:         cfg.Clock,
		roller:        cfg.Roller,
		eventBus:      cfg.EventBus,
		policy:        cfg.Policy,
		turnTimer:     cfg.TurnTimer,
		timeoutPolicy: cfg.TimeoutPolicy,
		locks:         make(map[string]*sync.Mutex),
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.roller == nil {
		o.roller = dice.DefaultRoller
	}
	if o.policy == nil {
		o.policy = engine.NewRandomPolicy(o.roller)
	}
	if o.timeoutPolicy == "" {
		o.timeoutPolicy = TimeoutPass
	}

	return o, nil
}

// InitializeBattle creates a session from two or more combatants
func (o *orchestrator) InitializeBattle(ctx context.Context, input *InitializeBattleInput) (*InitializeBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	battleType := input.BattleType
	if battleType == "" {
		battleType = battlehistory.BattleTypeStandard
	}
	if !battleType.Valid() {
		return nil, errors.InvalidArgumentf("unknown battle type %q", battleType)
	}
	if input.TurnTimer < 0 {
		return nil, errors.InvalidArgument("turn timer must not be negative")
	}

	combatants := make([]engine.Combatant, 0, len(input.Combatants))
	for i, c := range input.Combatants {
		sb := c.StatBlock
		if sb == nil {
			if c.StatBlockID == "" {
				return nil, errors.InvalidArgumentf("combatant %d needs a stat block or stat block id", i)
			}
			out, err := o.statBlocks.GetStatBlock(ctx, &statblock.GetStatBlockInput{ID: c.StatBlockID})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to load stat block for combatant %d", i)
			}
			sb = out.StatBlock
		} else if err := sb.Validate(); err != nil {
			return nil, engine.InvalidStatBlock(i, err)
		}

		combatants = append(combatants, engine.Combatant{
			StatBlock: sb,
			IsPlayer:  c.IsPlayer,
			OwnerID:   c.OwnerID,
		})
	}

	turnTimer := o.turnTimer
	if input.TurnTimer > 0 {
		turnTimer = input.TurnTimer
	}

	battleID := o.idGen.Generate()
	session, err := engine.NewSession(&engine.Config{
		ID:        battleID,
		Roller:    o.roller,
		Clock:     o.clock,
		TurnTimer: turnTimer,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle session")
	}

	if err := session.Initialize(combatants); err != nil {
		return nil, err
	}

	if _, err := o.battleRepo.Save(ctx, &battles.SaveInput{
		Session:    session,
		BattleType: string(battleType),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to save battle")
	}

	slog.Info("Battle initialized",
		"battle_id", battleID,
		"battle_type", battleType,
		"participants", len(combatants))

	o.publish(ctx, EventBattleInitialized, session, nil, map[string]interface{}{
		"battle_type": string(battleType),
	})

	return &InitializeBattleOutput{
		BattleID: battleID,
		Battle:   newBattleView(session, string(battleType)),
	}, nil
}

// RollInitiative orders the participants and starts the first turn
func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.RollInitiative(); err != nil {
			return err
		}
		var order []string
		for _, p := range session.Status() {
			order = append(order, p.ID)
		}
		o.publish(ctx, EventInitiativeRolled, session, nil, map[string]interface{}{
			"order": order,
		})
		o.publishProgress(ctx, session, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RollInitiativeOutput{Battle: view}, nil
}

// SelectAction chooses an action and target for the active participant
func (o *orchestrator) SelectAction(ctx context.Context, input *SelectActionInput) (*SelectActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ActionName == "" {
		return nil, errors.InvalidArgument("action name is required")
	}
	if input.TargetID == "" {
		return nil, errors.InvalidArgument("target ID is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.SelectAction(input.ActionName, input.TargetID); err != nil {
			return err
		}
		o.publish(ctx, EventActionSelected, session, participantEntity(session, input.TargetID), map[string]interface{}{
			"action": input.ActionName,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SelectActionOutput{Battle: view}, nil
}

// ResolveSelectedAction rolls the selected action and advances the battle
func (o *orchestrator) ResolveSelectedAction(ctx context.Context, input *ResolveSelectedActionInput) (*ResolveSelectedActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var result *engine.ActionResult
	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		var err error
		result, err = o.resolve(ctx, session)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ResolveSelectedActionOutput{Result: result, Battle: view}, nil
}

// resolve resolves the selected action and publishes what happened
func (o *orchestrator) resolve(ctx context.Context, session *engine.Session) (*engine.ActionResult, error) {
	action, targetID := session.SelectedAction()
	target := participantEntity(session, targetID)
	turnsBefore := session.TurnCount()

	result, err := session.ResolveSelectedAction()
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"kind":     string(result.Kind),
		"hit":      result.Hit,
		"damage":   result.Damage,
		"critical": result.Critical,
	}
	if action != nil {
		data["action"] = action.Name
	}
	o.publish(ctx, EventActionResolved, session, target, data)
	o.publishProgress(ctx, session, turnsBefore)

	return result, nil
}

// GetBattleLog returns a copy of the battle log
func (o *orchestrator) GetBattleLog(ctx context.Context, input *GetBattleLogInput) (*GetBattleLogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	var entries []engine.LogEntry
	err := o.read(ctx, input.BattleID, func(session *engine.Session, _ string) {
		entries = session.RecentLog(input.Limit)
	})
	if err != nil {
		return nil, err
	}

	return &GetBattleLogOutput{Entries: entries}, nil
}

// GetParticipantStatus returns per-participant progress
func (o *orchestrator) GetParticipantStatus(ctx context.Context, input *GetParticipantStatusInput) (*GetParticipantStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var status []engine.ParticipantStatus
	err := o.read(ctx, input.BattleID, func(session *engine.Session, _ string) {
		status = session.Status()
	})
	if err != nil {
		return nil, err
	}

	return &GetParticipantStatusOutput{Participants: status}, nil
}

// GetBattle returns a snapshot of the battle
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var view *BattleView
	err := o.read(ctx, input.BattleID, func(session *engine.Session, battleType string) {
		view = newBattleView(session, battleType)
	})
	if err != nil {
		return nil, err
	}

	return &GetBattleOutput{Battle: view}, nil
}

// GetAvailableActions returns the actions the active participant can pick
func (o *orchestrator) GetAvailableActions(ctx context.Context, input *GetAvailableActionsInput) (*GetAvailableActionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output := &GetAvailableActionsOutput{}
	err := o.read(ctx, input.BattleID, func(session *engine.Session, _ string) {
		output.Actions = session.AvailableActions()
		if active := session.ActiveParticipant(); active != nil && session.State().IsActive() {
			output.ParticipantID = active.ID
		}
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// CancelSelection drops a selected but unresolved action
func (o *orchestrator) CancelSelection(ctx context.Context, input *CancelSelectionInput) (*CancelSelectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.CancelSelection(); err != nil {
			return err
		}
		o.publish(ctx, EventSelectionCancelled, session, nil, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CancelSelectionOutput{Battle: view}, nil
}

// PauseBattle suspends an active battle
func (o *orchestrator) PauseBattle(ctx context.Context, input *PauseBattleInput) (*PauseBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.Pause(); err != nil {
			return err
		}
		o.publish(ctx, EventBattlePaused, session, nil, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PauseBattleOutput{Battle: view}, nil
}

// ResumeBattle continues a paused battle
func (o *orchestrator) ResumeBattle(ctx context.Context, input *ResumeBattleInput) (*ResumeBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.Resume(); err != nil {
			return err
		}
		o.publish(ctx, EventBattleResumed, session, nil, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ResumeBattleOutput{Battle: view}, nil
}

// AbortBattle ends a battle early by forfeit or without a winner
func (o *orchestrator) AbortBattle(ctx context.Context, input *AbortBattleInput) (*AbortBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.Abort(input.ForfeitingParticipantID); err != nil {
			return err
		}
		o.publishProgress(ctx, session, session.TurnCount())
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Battle aborted",
		"battle_id", input.BattleID,
		"forfeiting_participant_id", input.ForfeitingParticipantID,
		"winner_id", view.WinnerID)

	return &AbortBattleOutput{Battle: view}, nil
}

// TickTimer counts down the turn timer and applies the timeout policy when it runs out
func (o *orchestrator) TickTimer(ctx context.Context, input *TickTimerInput) (*TickTimerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output := &TickTimerOutput{}
	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		expired, err := session.TickTimer(input.Elapsed)
		if err != nil {
			return err
		}
		if !expired {
			return nil
		}
		output.Expired = true

		var idleID string
		if active := session.ActiveParticipant(); active != nil {
			idleID = active.ID
		}
		o.publish(ctx, EventTimerExpired, session, nil, map[string]interface{}{
			"policy": string(o.timeoutPolicy),
		})
		slog.Debug("Turn timer expired",
			"battle_id", session.ID(),
			"participant_id", idleID,
			"policy", o.timeoutPolicy)

		switch o.timeoutPolicy {
		case TimeoutAutoSelect:
			result, _, err := o.autoAct(ctx, session)
			if err != nil {
				return err
			}
			output.Result = result
			return nil
		default:
			turnsBefore := session.TurnCount()
			if err := session.PassTurn(); err != nil {
				return err
			}
			o.publishProgress(ctx, session, turnsBefore)
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	output.Battle = view
	return output, nil
}

// TakeAITurn picks and resolves an action for a non-player turn
func (o *orchestrator) TakeAITurn(ctx context.Context, input *TakeAITurnInput) (*TakeAITurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output := &TakeAITurnOutput{}
	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if session.State() != engine.StateEnemyTurn {
			return errors.FailedPreconditionf("cannot take an AI turn while %s", session.State()).
				WithMeta("state", string(session.State()))
		}
		result, choice, err := o.autoAct(ctx, session)
		if err != nil {
			return err
		}
		output.Result = result
		output.ActionName = choice.Action
		output.TargetID = choice.TargetID
		return nil
	})
	if err != nil {
		return nil, err
	}

	output.Battle = view
	return output, nil
}

// autoAct lets the policy select and resolve an action for the active participant.
// A participant with no usable action passes, returning a nil result and an empty choice.
func (o *orchestrator) autoAct(ctx context.Context, session *engine.Session) (*engine.ActionResult, *engine.Choice, error) {
	if len(session.AvailableActions()) == 0 {
		var idleID string
		if active := session.ActiveParticipant(); active != nil {
			idleID = active.ID
		}
		turnsBefore := session.TurnCount()
		if err := session.PassTurn(); err != nil {
			return nil, nil, err
		}
		o.publishProgress(ctx, session, turnsBefore)
		slog.Debug("No available actions, passing turn",
			"battle_id", session.ID(),
			"participant_id", idleID)
		return nil, &engine.Choice{}, nil
	}

	choice, err := o.policy.Choose(session)
	if err != nil {
		return nil, nil, err
	}
	if err := session.SelectAction(choice.Action, choice.TargetID); err != nil {
		return nil, nil, err
	}
	result, err := o.resolve(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return result, choice, nil
}

// ApplyCondition adds a condition to a participant
func (o *orchestrator) ApplyCondition(ctx context.Context, input *ApplyConditionInput) (*ApplyConditionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participant ID is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		if err := session.ApplyCondition(input.ParticipantID, input.Condition); err != nil {
			return err
		}
		o.publish(ctx, EventConditionApplied, session, participantEntity(session, input.ParticipantID), map[string]interface{}{
			"condition": input.Condition.Name,
			"duration":  input.Condition.Duration,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyConditionOutput{Battle: view}, nil
}

// ApplyHealing restores hit points to a participant
func (o *orchestrator) ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participant ID is required")
	}

	var healed int
	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		var err error
		healed, err = session.Heal(input.ParticipantID, input.Amount)
		if err != nil {
			return err
		}
		o.publish(ctx, EventParticipantHealed, session, participantEntity(session, input.ParticipantID), map[string]interface{}{
			"amount": healed,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyHealingOutput{Healed: healed, Battle: view}, nil
}

// ApplyAreaDamage deals the same damage to several participants, for hazards and area effects
func (o *orchestrator) ApplyAreaDamage(ctx context.Context, input *ApplyAreaDamageInput) (*ApplyAreaDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.ParticipantIDs) == 0 {
		return nil, errors.InvalidArgument("at least one participant ID is required")
	}
	if input.DamageType == "" {
		return nil, errors.InvalidArgument("damage type is required")
	}

	view, err := o.mutate(ctx, input.BattleID, func(session *engine.Session) error {
		turnsBefore := session.TurnCount()
		if err := session.ApplyDamage(input.ParticipantIDs, input.Amount, input.DamageType); err != nil {
			return err
		}
		o.publish(ctx, EventAreaDamageApplied, session, nil, map[string]interface{}{
			"participant_ids": input.ParticipantIDs,
			"amount":          input.Amount,
			"damage_type":     string(input.DamageType),
		})
		o.publishProgress(ctx, session, turnsBefore)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Area damage applied",
		"battle_id", input.BattleID,
		"participants", len(input.ParticipantIDs),
		"amount", input.Amount,
		"damage_type", input.DamageType)

	return &ApplyAreaDamageOutput{Battle: view}, nil
}

// ResetBattle discards a battle. Archived history is kept.
func (o *orchestrator) ResetBattle(ctx context.Context, input *ResetBattleInput) (*ResetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	unlock := o.lock(input.BattleID)
	defer unlock()

	getOut, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}

	session := getOut.Session
	if err := session.Reset(); err != nil {
		return nil, errors.Wrapf(err, "failed to reset battle %s", input.BattleID)
	}
	o.publish(ctx, EventBattleReset, session, nil, nil)

	if _, err := o.battleRepo.Delete(ctx, &battles.DeleteInput{BattleID: input.BattleID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle %s", input.BattleID)
	}

	o.mu.Lock()
	delete(o.locks, input.BattleID)
	o.mu.Unlock()

	slog.Info("Battle reset", "battle_id", input.BattleID)

	return &ResetBattleOutput{}, nil
}

// ListHistory returns an owner's archived battles, newest first
func (o *orchestrator) ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.historyRepo.List(ctx, &battlehistory.ListInput{
		OwnerID: input.OwnerID,
		Limit:   input.Limit,
		Offset:  input.Offset,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list history for %s", input.OwnerID)
	}

	return &ListHistoryOutput{Records: out.Records, Total: out.Total}, nil
}

// GetHistory returns one archived battle
func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	out, err := o.historyRepo.Get(ctx, &battlehistory.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get history for %s", input.BattleID)
	}

	return &GetHistoryOutput{Record: out.Record}, nil
}

// GetStats returns an owner's win/loss record
func (o *orchestrator) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.historyRepo.Stats(ctx, &battlehistory.StatsInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stats for %s", input.OwnerID)
	}

	return &GetStatsOutput{
		Won:   out.Won,
		Lost:  out.Lost,
		Drawn: out.Drawn,
		Total: out.Total,
	}, nil
}

// lock acquires the per-battle lock and returns its release
func (o *orchestrator) lock(battleID string) func() {
	o.mu.Lock()
	l, ok := o.locks[battleID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[battleID] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// read runs fn against a stored session under the battle lock
func (o *orchestrator) read(ctx context.Context, battleID string, fn func(session *engine.Session, battleType string)) error {
	if battleID == "" {
		return errors.InvalidArgument("battle ID is required")
	}

	unlock := o.lock(battleID)
	defer unlock()

	out, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: battleID})
	if err != nil {
		return errors.Wrapf(err, "failed to get battle %s", battleID)
	}

	fn(out.Session, out.BattleType)
	return nil
}

// mutate runs fn against a stored session under the battle lock, saves it and
// archives the battle if fn finished it
func (o *orchestrator) mutate(ctx context.Context, battleID string, fn func(session *engine.Session) error) (*BattleView, error) {
	if battleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	unlock := o.lock(battleID)
	defer unlock()

	out, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: battleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", battleID)
	}
	session := out.Session
	wasTerminal := session.State().IsTerminal()

	if err := fn(session); err != nil {
		return nil, errors.Wrapf(err, "battle %s", battleID).WithMeta("battle_id", battleID)
	}

	if _, err := o.battleRepo.Save(ctx, &battles.SaveInput{
		Session:    session,
		BattleType: out.BattleType,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to save battle %s", battleID)
	}

	if !wasTerminal && session.State().IsTerminal() {
		o.archive(ctx, session, out.BattleType)
	}

	return newBattleView(session, out.BattleType), nil
}

// archive records a finished battle in history. Failures are logged; the
// finished session stays readable until it is reset.
func (o *orchestrator) archive(ctx context.Context, session *engine.Session, battleType string) {
	record, err := battlehistory.NewRecord(session, battlehistory.BattleType(battleType))
	if err != nil {
		slog.Error("Failed to build battle record",
			"battle_id", session.ID(),
			"error", err)
		return
	}

	if _, err := o.historyRepo.Create(ctx, &battlehistory.CreateInput{Record: record}); err != nil {
		slog.Error("Failed to archive battle",
			"battle_id", session.ID(),
			"retryable", errors.IsRetryable(err),
			"error", err)
		return
	}

	slog.Info("Battle completed",
		"battle_id", session.ID(),
		"winner_id", record.WinnerID,
		"reason", record.Reason,
		"rounds", record.Rounds)
}

func newBattleView(session *engine.Session, battleType string) *BattleView {
	view := &BattleView{
		ID:           session.ID(),
		BattleType:   battlehistory.BattleType(battleType),
		State:        session.State(),
		PausedFrom:   session.PausedFrom(),
		Round:        session.Round(),
		TurnCount:    session.TurnCount(),
		TurnTimer:    session.TurnTimer(),
		IsPlayerTurn: session.IsPlayerTurn(),
		Participants: session.Status(),
		WinnerID:     session.WinnerID(),
		EndReason:    session.EndReason(),
		StartedAt:    session.StartedAt(),
		EndedAt:      session.EndedAt(),
	}
	if active := session.ActiveParticipant(); active != nil && session.TurnCount() > 0 {
		view.ActiveParticipantID = active.ID
	}
	if action, targetID := session.SelectedAction(); action != nil {
		view.SelectedAction = action.Name
		view.SelectedTargetID = targetID
	}
	return view
}
