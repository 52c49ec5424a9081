package battle

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/pkg/clock"
)

// DefaultTurnTimer is the number of time units a participant gets per turn
const DefaultTurnTimer = 30

// Config holds the dependencies of a battle session
type Config struct {
	ID        string
	Roller    dice.Roller
	Clock     clock.Clock
	TurnTimer int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateMin("TurnTimer", c.TurnTimer, 0, vb)

	return vb.Build()
}

// Combatant is a stat block entering a battle
type Combatant struct {
	StatBlock *miniature.StatBlock
	IsPlayer  bool
	OwnerID   string
}

// Session is a single battle and its state machine
type Session struct {
	id           string
	roller       dice.Roller
	resolver     *Resolver
	clock        clock.Clock
	defaultTimer int

	state        State
	pausedFrom   State
	round        int
	turnIndex    int
	turnTimer    int
	turnCount    int
	participants []*Participant

	selectedAction   *miniature.Action
	selectedTargetID string
	availableActions []miniature.Action

	log       []LogEntry
	winnerID  string
	endReason string
	startedAt time.Time
	endedAt   time.Time
}

// NewSession creates an idle battle session
func NewSession(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timer := cfg.TurnTimer
	if timer == 0 {
		timer = DefaultTurnTimer
	}

	return &Session{
		id:           cfg.ID,
		roller:       cfg.Roller,
		resolver:     NewResolver(cfg.Roller),
		clock:        cfg.Clock,
		defaultTimer: timer,
		state:        StateIdle,
		round:        1,
	}, nil
}

// apply runs ev through Transition and commits the result
func (s *Session) apply(ev Event) error {
	next, entries, err := Transition(s.state, ev)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	for _, e := range entries {
		e.Timestamp = now
		s.log = append(s.log, e)
	}
	s.state = next
	return nil
}

// Initialize builds the participants from the supplied combatants and leaves the
// session waiting for RollInitiative
func (s *Session) Initialize(combatants []Combatant) error {
	if s.state != StateIdle {
		return invalidState("initialize a battle", s.state)
	}
	if len(combatants) < 2 {
		return emptyParticipantSet(len(combatants))
	}

	participants := make([]*Participant, 0, len(combatants))
	for i, c := range combatants {
		if c.StatBlock == nil {
			return invalidCombatant("combatant %d has no stat block", i+1)
		}
		if c.StatBlock.Stats.HitPoints <= 0 {
			return invalidCombatant("combatant %d (%s) must have positive hit points, got %d",
				i+1, c.StatBlock.Name, c.StatBlock.Stats.HitPoints)
		}
		sb := c.StatBlock.Clone()
		participants = append(participants, &Participant{
			ID:         fmt.Sprintf("player%d", i+1),
			OwnerID:    c.OwnerID,
			StatBlock:  sb,
			CurrentHP:  sb.Stats.HitPoints,
			MaxHP:      sb.Stats.HitPoints,
			Initiative: 0,
			Conditions: []Condition{},
			IsPlayer:   c.IsPlayer,
		})
	}

	if err := s.apply(Event{Type: EventInitialize}); err != nil {
		return err
	}

	s.participants = participants
	s.round = 1
	s.turnIndex = 0
	s.turnCount = 0
	s.turnTimer = s.defaultTimer
	s.log = nil
	s.clearSelection()
	s.availableActions = nil
	s.winnerID = ""
	s.endReason = ""
	s.startedAt = s.clock.Now()
	s.endedAt = time.Time{}

	return nil
}

// RollInitiative orders the participants and starts the first turn
func (s *Session) RollInitiative() error {
	if s.state != StateInitializing {
		return invalidState("roll initiative", s.state)
	}
	if err := s.apply(Event{Type: EventBeginInitiative}); err != nil {
		return err
	}

	if err := RollInitiative(s.roller, s.participants); err != nil {
		return err
	}

	s.turnIndex = 0
	s.turnCount = 1
	first := s.active()
	s.availableActions = first.AvailableActions()

	return s.apply(Event{
		Type:             EventInitiativeRolled,
		Actor:            first.Name(),
		Round:            s.round,
		PlayerControlled: first.IsPlayer,
	})
}

// SelectAction picks an available action of the active participant against a living target
func (s *Session) SelectAction(actionName, targetID string) error {
	if !s.state.IsTurn() {
		return invalidState("select an action", s.state)
	}

	active := s.active()
	var action *miniature.Action
	for i := range s.availableActions {
		if s.availableActions[i].Name == actionName {
			a := s.availableActions[i]
			action = &a
			break
		}
	}
	if action == nil {
		return invalidAction("action %q is not available to %s", actionName, active.Name()).
			WithMeta("action", actionName)
	}

	target, ok := s.participant(targetID)
	if !ok {
		return invalidAction("target %q is not in this battle", targetID).WithMeta("target_id", targetID)
	}
	if !target.Alive() {
		return invalidAction("target %s is already defeated", target.Name()).WithMeta("target_id", targetID)
	}
	if target.ID == active.ID && action.Damage != nil {
		return invalidAction("%s cannot target itself with %s", active.Name(), action.Name)
	}

	if err := s.apply(Event{Type: EventActionChosen}); err != nil {
		return err
	}
	if err := s.apply(Event{Type: EventActionValidated}); err != nil {
		return err
	}

	s.selectedAction = action
	s.selectedTargetID = target.ID
	return nil
}

// CancelSelection drops the selected action and returns to the active turn
func (s *Session) CancelSelection() error {
	if s.state != StateSelectingAction && s.state != StateResolvingAction {
		return invalidState("cancel a selection", s.state)
	}
	if err := s.apply(Event{Type: EventSelectionCancelled, PlayerControlled: s.active().IsPlayer}); err != nil {
		return err
	}
	s.clearSelection()
	return nil
}

// ResolveSelectedAction resolves the selected action, records it, then either ends the
// battle or advances to the next turn
func (s *Session) ResolveSelectedAction() (*ActionResult, error) {
	if s.state != StateResolvingAction || s.selectedAction == nil {
		return nil, invalidState("resolve an action without a selection", s.state)
	}

	attacker := s.active()
	target, ok := s.participant(s.selectedTargetID)
	if !ok {
		return nil, invalidAction("target %q is not in this battle", s.selectedTargetID)
	}
	if !target.Alive() {
		return nil, invalidAction("target %s is already defeated", target.Name())
	}

	result, err := s.resolver.Resolve(attacker, target, s.selectedAction)
	if err != nil {
		return nil, err
	}

	result.Damage = target.takeDamage(result.Damage)
	attacker.spend(s.selectedAction)

	if err := s.apply(Event{
		Type:   EventActionResolved,
		Actor:  attacker.Name(),
		Target: target.Name(),
		Action: s.selectedAction.Name,
		Result: result,
		Round:  s.round,
	}); err != nil {
		return nil, err
	}
	s.clearSelection()

	if err := s.settle(); err != nil {
		return nil, err
	}

	out := *result
	return &out, nil
}

// PassTurn ends the active turn without acting, used when the turn timer runs out
func (s *Session) PassTurn() error {
	if err := s.apply(Event{Type: EventTurnPassed}); err != nil {
		return err
	}
	return s.settle()
}

// ApplyDamage deals the same damage to several participants at once, for area effects and
// hazards, then checks the win condition. The turn only advances when the active
// participant is defeated.
func (s *Session) ApplyDamage(targetIDs []string, amount int, damageType miniature.DamageType) error {
	if !s.state.IsTurn() {
		return invalidState("apply damage", s.state)
	}
	if amount < 0 {
		return invalidAction("damage must not be negative, got %d", amount)
	}
	if len(targetIDs) == 0 {
		return invalidAction("area damage needs at least one target")
	}

	targets := make([]*Participant, 0, len(targetIDs))
	seen := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		p, ok := s.participant(id)
		if !ok {
			return invalidAction("target %q is not in this battle", id)
		}
		if !p.Alive() {
			return invalidAction("target %s is already defeated", p.Name())
		}
		if seen[id] {
			return invalidAction("target %q is listed more than once", id)
		}
		seen[id] = true
		targets = append(targets, p)
	}

	resume := s.state
	lines := make([]DamageLine, 0, len(targets))
	for _, p := range targets {
		dealt := p.takeDamage(ApplyDamageModifiers(amount, damageType, p.DamageTags()))
		lines = append(lines, DamageLine{Target: p.Name(), Amount: dealt})
	}

	if err := s.apply(Event{
		Type:    EventDamageApplied,
		Damaged: lines,
		Round:   s.round,
		Message: fmt.Sprintf("%d %s damage", amount, damageType),
	}); err != nil {
		return err
	}

	outcome := CheckWinCondition(s.participants)
	if outcome.Finished {
		return s.finish(outcome.Winner, outcome.Reason)
	}
	if err := s.apply(Event{Type: EventBattleContinues, ResumeTo: resume}); err != nil {
		return err
	}

	if !s.active().Alive() {
		return s.PassTurn()
	}
	return nil
}

// settle runs the win check from checking_win_condition
func (s *Session) settle() error {
	outcome := CheckWinCondition(s.participants)
	if outcome.Finished {
		return s.finish(outcome.Winner, outcome.Reason)
	}
	return s.advanceTurn()
}

func (s *Session) advanceTurn() error {
	n := len(s.participants)
	for range n {
		s.turnIndex = (s.turnIndex + 1) % n
		if s.turnIndex == 0 {
			s.round++
			for _, p := range s.participants {
				p.tickConditions()
			}
		}
		if s.participants[s.turnIndex].Alive() {
			break
		}
	}

	next := s.active()
	if err := rechargeActions(s.roller, next); err != nil {
		return err
	}

	s.turnTimer = s.defaultTimer
	s.turnCount++
	s.availableActions = next.AvailableActions()

	return s.apply(Event{
		Type:             EventTurnAdvanced,
		Actor:            next.Name(),
		Round:            s.round,
		PlayerControlled: next.IsPlayer,
	})
}

func (s *Session) finish(winner *Participant, reason string) error {
	ev := Event{Type: EventBattleEnded, Reason: reason, Round: s.round}
	if winner != nil {
		ev.Winner = winner.Name()
	}
	if err := s.apply(ev); err != nil {
		return err
	}

	if winner != nil {
		s.winnerID = winner.ID
	}
	s.endReason = reason
	s.endedAt = s.clock.Now()
	s.pausedFrom = ""
	s.clearSelection()
	s.availableActions = nil
	return nil
}

// Abort ends the battle early. A non-empty forfeitingID forfeits for that participant and
// awards the win to the single remaining opponent; an empty one aborts with no winner.
func (s *Session) Abort(forfeitingID string) error {
	if s.state == StateIdle || s.state == StateBattleComplete {
		return invalidState("abort", s.state)
	}

	if forfeitingID == "" {
		return s.finish(nil, ReasonAborted)
	}

	quitter, ok := s.participant(forfeitingID)
	if !ok {
		return invalidAction("participant %q is not in this battle", forfeitingID)
	}

	var remaining []*Participant
	for _, p := range s.participants {
		if p.ID != quitter.ID && p.Alive() {
			remaining = append(remaining, p)
		}
	}

	var winner *Participant
	if len(remaining) == 1 {
		winner = remaining[0]
	}
	return s.finish(winner, ReasonForfeit)
}

// Pause freezes the session in its current state
func (s *Session) Pause() error {
	from := s.state
	if err := s.apply(Event{Type: EventPaused}); err != nil {
		return err
	}
	s.pausedFrom = from
	return nil
}

// Resume returns to the state the session was paused from
func (s *Session) Resume() error {
	if err := s.apply(Event{Type: EventResumed, ResumeTo: s.pausedFrom}); err != nil {
		return err
	}
	s.pausedFrom = ""
	return nil
}

// TickTimer counts the turn timer down by elapsed units and reports whether it ran out
func (s *Session) TickTimer(elapsed int) (bool, error) {
	if !s.state.IsTurn() {
		return false, invalidState("tick the turn timer", s.state)
	}
	if elapsed < 0 {
		return false, errors.InvalidArgumentf("elapsed must not be negative, got %d", elapsed)
	}
	s.turnTimer = max(0, s.turnTimer-elapsed)
	return s.turnTimer == 0, nil
}

// Heal restores hit points to a living participant
func (s *Session) Heal(participantID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, invalidAction("healing must be positive, got %d", amount)
	}
	if !s.state.IsActive() && s.state != StatePaused {
		return 0, invalidState("heal", s.state)
	}
	p, ok := s.participant(participantID)
	if !ok {
		return 0, invalidAction("participant %q is not in this battle", participantID)
	}
	if !p.Alive() {
		return 0, invalidAction("%s is defeated and cannot be healed", p.Name())
	}

	healed := p.heal(amount)
	if err := s.apply(Event{Type: EventHealed, Target: p.Name(), Amount: healed, Round: s.round}); err != nil {
		return 0, err
	}
	return healed, nil
}

// ApplyCondition adds or refreshes a condition on a participant
func (s *Session) ApplyCondition(participantID string, condition Condition) error {
	if condition.Name == "" {
		return invalidAction("condition name is required")
	}
	if !s.state.IsActive() && s.state != StatePaused {
		return invalidState("apply a condition", s.state)
	}
	p, ok := s.participant(participantID)
	if !ok {
		return invalidAction("participant %q is not in this battle", participantID)
	}

	if err := s.apply(Event{
		Type:      EventConditionApplied,
		Target:    p.Name(),
		Condition: condition.Name,
		Amount:    condition.Duration,
		Round:     s.round,
	}); err != nil {
		return err
	}
	p.applyCondition(cloneCondition(condition))

	if s.state.IsTurn() && p.ID == s.active().ID {
		s.availableActions = p.AvailableActions()
	}
	return nil
}

// Reset discards the battle and returns to idle
func (s *Session) Reset() error {
	if err := s.apply(Event{Type: EventReset}); err != nil {
		return err
	}
	s.pausedFrom = ""
	s.participants = nil
	s.round = 1
	s.turnIndex = 0
	s.turnCount = 0
	s.turnTimer = 0
	s.log = nil
	s.clearSelection()
	s.availableActions = nil
	s.winnerID = ""
	s.endReason = ""
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	return nil
}

func (s *Session) clearSelection() {
	s.selectedAction = nil
	s.selectedTargetID = ""
}

func (s *Session) active() *Participant {
	if len(s.participants) == 0 {
		return nil
	}
	return s.participants[s.turnIndex]
}

func (s *Session) participant(id string) (*Participant, bool) {
	for _, p := range s.participants {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
