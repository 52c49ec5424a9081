package battle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	engine "github.com/KirkDiggler/miniature-battle/internal/engine/battle"
)

// Event types published on the event bus for UI consumers
const (
	EventBattleInitialized  = "battle.initialized"
	EventInitiativeRolled   = "battle.initiative_rolled"
	EventActionSelected     = "battle.action_selected"
	EventSelectionCancelled = "battle.selection_cancelled"
	EventActionResolved     = "battle.action_resolved"
	EventTurnAdvanced       = "battle.turn_advanced"
	EventTimerExpired       = "battle.timer_expired"
	EventBattlePaused       = "battle.paused"
	EventBattleResumed      = "battle.resumed"
	EventParticipantHealed  = "battle.participant_healed"
	EventConditionApplied   = "battle.condition_applied"
	EventAreaDamageApplied  = "battle.area_damage_applied"
	EventBattleCompleted    = "battle.completed"
	EventBattleReset        = "battle.reset"
)

// Keys set on every published event context
const (
	EventKeyBattleID = "battle_id"
	EventKeyState    = "state"
	EventKeyRound    = "round"
)

// publish sends a battle event when an event bus is configured.
// Publishing failures are logged and never fail the operation.
func (o *orchestrator) publish(ctx context.Context, eventType string, session *engine.Session, target core.Entity, data map[string]interface{}) {
	if o.eventBus == nil {
		return
	}

	var source core.Entity
	if active := session.ActiveParticipant(); active != nil {
		source = active
	}

	event := events.NewGameEvent(eventType, source, target)
	event.Context().Set(EventKeyBattleID, session.ID())
	event.Context().Set(EventKeyState, string(session.State()))
	event.Context().Set(EventKeyRound, session.Round())
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish battle event",
			"battle_id", session.ID(),
			"event", eventType,
			"error", err)
	}
}

// publishProgress emits the turn and completion events implied by a state change
func (o *orchestrator) publishProgress(ctx context.Context, session *engine.Session, turnsBefore int) {
	if session.State().IsTerminal() {
		o.publish(ctx, EventBattleCompleted, session, nil, map[string]interface{}{
			"winner_id": session.WinnerID(),
			"reason":    session.EndReason(),
		})
		return
	}
	if session.TurnCount() != turnsBefore {
		o.publish(ctx, EventTurnAdvanced, session, nil, map[string]interface{}{
			"is_player_turn": session.IsPlayerTurn(),
			"turn_timer":     session.TurnTimer(),
		})
	}
}

// participantEntity returns the participant as an event target, or nil
func participantEntity(session *engine.Session, id string) core.Entity {
	p, ok := session.Participant(id)
	if !ok {
		return nil
	}
	return p
}
