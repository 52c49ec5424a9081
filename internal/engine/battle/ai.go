package battle

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// Choice is an action and a target picked for the active participant
type Choice struct {
	Action   string
	TargetID string
}

// Policy picks an action for the active participant of a session
type Policy interface {
	Choose(s *Session) (*Choice, error)
}

// RandomPolicy picks uniformly among available actions and living opponents
type RandomPolicy struct {
	roller dice.Roller
}

// NewRandomPolicy creates a random policy rolling with roller
func NewRandomPolicy(roller dice.Roller) *RandomPolicy {
	return &RandomPolicy{roller: roller}
}

// Choose implements Policy
func (p *RandomPolicy) Choose(s *Session) (*Choice, error) {
	if !s.State().IsTurn() {
		return nil, invalidState("choose an action", s.State())
	}

	active := s.active()
	actions := s.availableActions
	if len(actions) == 0 {
		return nil, invalidAction("%s has no available actions", active.Name())
	}

	var targets []*Participant
	for _, candidate := range s.participants {
		if candidate.ID != active.ID && candidate.Alive() && candidate.IsPlayer != active.IsPlayer {
			targets = append(targets, candidate)
		}
	}
	if len(targets) == 0 {
		for _, candidate := range s.participants {
			if candidate.ID != active.ID && candidate.Alive() {
				targets = append(targets, candidate)
			}
		}
	}
	if len(targets) == 0 {
		return nil, invalidAction("%s has no living target", active.Name())
	}

	actionIdx, err := p.pick(len(actions))
	if err != nil {
		return nil, err
	}
	targetIdx, err := p.pick(len(targets))
	if err != nil {
		return nil, err
	}

	return &Choice{
		Action:   actions[actionIdx].Name,
		TargetID: targets[targetIdx].ID,
	}, nil
}

func (p *RandomPolicy) pick(n int) (int, error) {
	if n == 1 {
		return 0, nil
	}
	roll, err := p.roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll random choice")
	}
	return roll - 1, nil
}
