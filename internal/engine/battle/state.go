package battle

import (
	"fmt"
)

// State is a battle state machine state
type State string

// Battle states
const (
	StateIdle                 State = "idle"
	StateInitializing         State = "initializing"
	StateRollingInitiative    State = "rolling_initiative"
	StatePlayerTurn           State = "player_turn"
	StateEnemyTurn            State = "enemy_turn"
	StateSelectingAction      State = "selecting_action"
	StateResolvingAction      State = "resolving_action"
	StateCheckingWinCondition State = "checking_win_condition"
	StateBattleComplete       State = "battle_complete"
	StatePaused               State = "paused"
)

// IsTurn reports whether the state waits for the active participant to pick an action
func (s State) IsTurn() bool {
	return s == StatePlayerTurn || s == StateEnemyTurn
}

// IsActive reports whether a battle is in progress and not paused
func (s State) IsActive() bool {
	switch s {
	case StateIdle, StateBattleComplete, StatePaused:
		return false
	}
	return true
}

// IsTerminal reports whether the battle is over
func (s State) IsTerminal() bool {
	return s == StateBattleComplete
}

func turnState(playerControlled bool) State {
	if playerControlled {
		return StatePlayerTurn
	}
	return StateEnemyTurn
}

// EventType names a state machine input
type EventType string

// State machine events
const (
	EventInitialize         EventType = "initialize"
	EventBeginInitiative    EventType = "begin_initiative"
	EventInitiativeRolled   EventType = "initiative_rolled"
	EventActionChosen       EventType = "action_chosen"
	EventActionValidated    EventType = "action_validated"
	EventSelectionCancelled EventType = "selection_cancelled"
	EventActionResolved     EventType = "action_resolved"
	EventTurnPassed         EventType = "turn_passed"
	EventDamageApplied      EventType = "damage_applied"
	EventBattleContinues    EventType = "battle_continues"
	EventTurnAdvanced       EventType = "turn_advanced"
	EventBattleEnded        EventType = "battle_ended"
	EventPaused             EventType = "paused"
	EventResumed            EventType = "resumed"
	EventHealed             EventType = "healed"
	EventConditionApplied   EventType = "condition_applied"
	EventReset              EventType = "reset"
)

// Event is an input to Transition. Only the fields relevant to Type are read.
type Event struct {
	Type EventType

	Actor     string
	Target    string
	Action    string
	Result    *ActionResult
	Amount    int
	Condition string
	Winner    string
	Reason    string
	Message   string
	Round     int

	// PlayerControlled says whose turn the resulting turn state belongs to
	PlayerControlled bool
	// ResumeTo is the state to return to after a pause or an out-of-band win check
	ResumeTo State
	// Damaged lists the names of participants hit by out-of-band damage, with amounts
	Damaged []DamageLine
}

// DamageLine records damage dealt to one participant
type DamageLine struct {
	Target string
	Amount int
}

// Transition computes the next state and the log entries produced by ev in state from.
// It has no side effects; the caller applies the result.
func Transition(from State, ev Event) (State, []LogEntry, error) {
	switch ev.Type {
	case EventInitialize:
		if from != StateIdle {
			return from, nil, invalidState("initialize a battle", from)
		}
		return StateInitializing, nil, nil

	case EventBeginInitiative:
		if from != StateInitializing {
			return from, nil, invalidState("roll initiative", from)
		}
		return StateRollingInitiative, nil, nil

	case EventInitiativeRolled:
		if from != StateRollingInitiative {
			return from, nil, invalidState("finish initiative", from)
		}
		return turnState(ev.PlayerControlled), []LogEntry{
			{
				Type:     EntryInitiative,
				Round:    ev.Round,
				Attacker: ev.Actor,
				Message:  fmt.Sprintf("Initiative rolled! %s goes first.", ev.Actor),
			},
			turnStartEntry(ev),
		}, nil

	case EventActionChosen:
		if !from.IsTurn() {
			return from, nil, invalidState("select an action", from)
		}
		return StateSelectingAction, nil, nil

	case EventActionValidated:
		if from != StateSelectingAction {
			return from, nil, invalidState("confirm an action", from)
		}
		return StateResolvingAction, nil, nil

	case EventSelectionCancelled:
		if from != StateSelectingAction && from != StateResolvingAction {
			return from, nil, invalidState("cancel a selection", from)
		}
		return turnState(ev.PlayerControlled), nil, nil

	case EventActionResolved:
		if from != StateResolvingAction {
			return from, nil, invalidState("resolve an action", from)
		}
		entries := []LogEntry{{
			Type:     EntryAction,
			Round:    ev.Round,
			Attacker: ev.Actor,
			Target:   ev.Target,
			Action:   ev.Action,
			Result:   ev.Result,
		}}
		if ev.Result != nil && ev.Result.Damage > 0 {
			entries = append(entries, LogEntry{
				Type:    EntryDamage,
				Round:   ev.Round,
				Target:  ev.Target,
				Amount:  ev.Result.Damage,
				Message: fmt.Sprintf("%s takes %d %s damage.", ev.Target, ev.Result.Damage, ev.Result.DamageType),
			})
		}
		return StateCheckingWinCondition, entries, nil

	case EventTurnPassed:
		if !from.IsTurn() {
			return from, nil, invalidState("pass the turn", from)
		}
		return StateCheckingWinCondition, nil, nil

	case EventDamageApplied:
		if !from.IsTurn() {
			return from, nil, invalidState("apply damage", from)
		}
		entries := make([]LogEntry, 0, len(ev.Damaged))
		for _, d := range ev.Damaged {
			entries = append(entries, LogEntry{
				Type:    EntryDamage,
				Round:   ev.Round,
				Target:  d.Target,
				Amount:  d.Amount,
				Message: ev.Message,
			})
		}
		return StateCheckingWinCondition, entries, nil

	case EventBattleContinues:
		if from != StateCheckingWinCondition {
			return from, nil, invalidState("continue the battle", from)
		}
		if !ev.ResumeTo.IsTurn() {
			return from, nil, invalidState(fmt.Sprintf("continue into %s", ev.ResumeTo), from)
		}
		return ev.ResumeTo, nil, nil

	case EventTurnAdvanced:
		if from != StateCheckingWinCondition {
			return from, nil, invalidState("advance the turn", from)
		}
		return turnState(ev.PlayerControlled), []LogEntry{turnStartEntry(ev)}, nil

	case EventBattleEnded:
		if from == StateIdle || from == StateBattleComplete {
			return from, nil, invalidState("end the battle", from)
		}
		winner := ev.Winner
		message := fmt.Sprintf("%s wins by %s.", winner, ev.Reason)
		if winner == "" {
			message = fmt.Sprintf("Battle ended without a winner (%s).", ev.Reason)
		}
		return StateBattleComplete, []LogEntry{{
			Type:    EntryBattleEnd,
			Round:   ev.Round,
			Winner:  winner,
			Reason:  ev.Reason,
			Message: message,
		}}, nil

	case EventPaused:
		if !from.IsActive() {
			return from, nil, invalidState("pause", from)
		}
		return StatePaused, nil, nil

	case EventResumed:
		if from != StatePaused {
			return from, nil, invalidState("resume", from)
		}
		if !ev.ResumeTo.IsActive() {
			return from, nil, invalidState(fmt.Sprintf("resume into %s", ev.ResumeTo), from)
		}
		return ev.ResumeTo, nil, nil

	case EventHealed:
		if !from.IsActive() && from != StatePaused {
			return from, nil, invalidState("heal", from)
		}
		return from, []LogEntry{{
			Type:    EntryHeal,
			Round:   ev.Round,
			Target:  ev.Target,
			Amount:  ev.Amount,
			Message: fmt.Sprintf("%s recovers %d hit points.", ev.Target, ev.Amount),
		}}, nil

	case EventConditionApplied:
		if !from.IsActive() && from != StatePaused {
			return from, nil, invalidState("apply a condition", from)
		}
		return from, []LogEntry{{
			Type:      EntryCondition,
			Round:     ev.Round,
			Target:    ev.Target,
			Condition: ev.Condition,
			Amount:    ev.Amount,
			Message:   fmt.Sprintf("%s is now %s.", ev.Target, ev.Condition),
		}}, nil

	case EventReset:
		return StateIdle, nil, nil
	}

	return from, nil, invalidState(fmt.Sprintf("handle event %q", ev.Type), from)
}

func turnStartEntry(ev Event) LogEntry {
	message := fmt.Sprintf("Round %d: %s's turn.", ev.Round, ev.Actor)
	if ev.Message != "" {
		message = ev.Message
	}
	return LogEntry{
		Type:     EntryTurnStart,
		Round:    ev.Round,
		Attacker: ev.Actor,
		Message:  message,
	}
}
