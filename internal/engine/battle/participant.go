package battle

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
)

// ParticipantEntityType is the core.Entity type of battle participants
const ParticipantEntityType = "battle_participant"

// ConditionEffect is the mechanical payload of a condition
type ConditionEffect struct {
	StatModifiers miniature.Abilities    `json:"stat_modifiers"`
	Advantage     []string               `json:"advantage,omitempty"`
	Disadvantage  []string               `json:"disadvantage,omitempty"`
	Immunity      []miniature.DamageType `json:"immunity,omitempty"`
	Resistance    []miniature.DamageType `json:"resistance,omitempty"`
	Vulnerability []miniature.DamageType `json:"vulnerability,omitempty"`
}

// Roll tags used in Advantage and Disadvantage. Ability names target that saving throw.
const (
	TagAttack = "attack"
	TagSaves  = "saves"
)

// Condition is a named effect on a participant.
// Duration counts remaining rounds; zero or less lasts until the battle ends.
type Condition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Duration    int             `json:"duration"`
	Effect      ConditionEffect `json:"effect"`
}

// Participant is a combatant inside one battle
type Participant struct {
	ID         string               `json:"id"`
	OwnerID    string               `json:"owner_id,omitempty"`
	StatBlock  *miniature.StatBlock `json:"stat_block"`
	CurrentHP  int                  `json:"current_hp"`
	MaxHP      int                  `json:"max_hp"`
	Initiative int                  `json:"initiative"`
	Conditions []Condition          `json:"conditions"`
	IsPlayer   bool                 `json:"is_player"`
	UsesSpent  map[string]int       `json:"uses_spent,omitempty"`
}

var _ core.Entity = (*Participant)(nil)

// GetID implements core.Entity
func (p *Participant) GetID() string {
	return p.ID
}

// GetType implements core.Entity
func (p *Participant) GetType() string {
	return ParticipantEntityType
}

// Name is the miniature's display name
func (p *Participant) Name() string {
	if p.StatBlock == nil {
		return p.ID
	}
	return p.StatBlock.Name
}

// Alive reports whether the participant still has hit points
func (p *Participant) Alive() bool {
	return p.CurrentHP > 0
}

// ArmorClass of the underlying stat block
func (p *Participant) ArmorClass() int {
	return p.StatBlock.Stats.ArmorClass
}

// EffectiveAbilities returns the stat block abilities with condition modifiers applied
func (p *Participant) EffectiveAbilities() miniature.Abilities {
	abilities := p.StatBlock.Stats.Abilities
	for _, c := range p.Conditions {
		abilities = abilities.Add(c.Effect.StatModifiers)
	}
	return abilities
}

// AbilityModifier returns the modifier of an effective ability score
func (p *Participant) AbilityModifier(ability miniature.Ability) int {
	return miniature.AbilityModifier(p.EffectiveAbilities().Score(ability))
}

// HasAdvantage reports whether any condition grants advantage on tag
func (p *Participant) HasAdvantage(tag string) bool {
	for _, c := range p.Conditions {
		if slices.Contains(c.Effect.Advantage, tag) {
			return true
		}
	}
	return false
}

// HasDisadvantage reports whether any condition imposes disadvantage on tag
func (p *Participant) HasDisadvantage(tag string) bool {
	for _, c := range p.Conditions {
		if slices.Contains(c.Effect.Disadvantage, tag) {
			return true
		}
	}
	return false
}

// DamageTags collects the damage interactions granted by all conditions
func (p *Participant) DamageTags() ConditionEffect {
	var tags ConditionEffect
	for _, c := range p.Conditions {
		tags.Immunity = append(tags.Immunity, c.Effect.Immunity...)
		tags.Resistance = append(tags.Resistance, c.Effect.Resistance...)
		tags.Vulnerability = append(tags.Vulnerability, c.Effect.Vulnerability...)
	}
	return tags
}

// Exhausted reports whether a limited action has no uses left
func (p *Participant) Exhausted(action *miniature.Action) bool {
	if !action.IsLimited() {
		return false
	}
	return p.UsesSpent[action.Name] >= action.MaxUses()
}

// AvailableActions lists the stat block actions that can still be used
func (p *Participant) AvailableActions() []miniature.Action {
	actions := make([]miniature.Action, 0, len(p.StatBlock.Actions))
	for i := range p.StatBlock.Actions {
		if !p.Exhausted(&p.StatBlock.Actions[i]) {
			actions = append(actions, p.StatBlock.Actions[i])
		}
	}
	return actions
}

func (p *Participant) spend(action *miniature.Action) {
	if !action.IsLimited() {
		return
	}
	if p.UsesSpent == nil {
		p.UsesSpent = make(map[string]int)
	}
	p.UsesSpent[action.Name]++
}

// takeDamage lowers hit points, never below zero, and returns the hit points lost
func (p *Participant) takeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.CurrentHP
	p.CurrentHP = max(0, p.CurrentHP-amount)
	return before - p.CurrentHP
}

// heal raises hit points, never above the maximum, and returns the hit points gained
func (p *Participant) heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.CurrentHP
	p.CurrentHP = min(p.MaxHP, p.CurrentHP+amount)
	return p.CurrentHP - before
}

func (p *Participant) applyCondition(c Condition) {
	for i := range p.Conditions {
		if p.Conditions[i].Name == c.Name {
			p.Conditions[i] = c
			return
		}
	}
	p.Conditions = append(p.Conditions, c)
}

// tickConditions counts down timed conditions and drops the expired ones
func (p *Participant) tickConditions() {
	kept := p.Conditions[:0]
	for _, c := range p.Conditions {
		if c.Duration > 0 {
			c.Duration--
			if c.Duration == 0 {
				continue
			}
		}
		kept = append(kept, c)
	}
	p.Conditions = kept
}

// Clone returns a deep copy safe to hand to callers
func (p *Participant) Clone() *Participant {
	out := *p
	out.Conditions = make([]Condition, len(p.Conditions))
	for i, c := range p.Conditions {
		out.Conditions[i] = cloneCondition(c)
	}
	if p.UsesSpent != nil {
		out.UsesSpent = make(map[string]int, len(p.UsesSpent))
		for k, v := range p.UsesSpent {
			out.UsesSpent[k] = v
		}
	}
	return &out
}

func cloneCondition(c Condition) Condition {
	c.Effect.Advantage = slices.Clone(c.Effect.Advantage)
	c.Effect.Disadvantage = slices.Clone(c.Effect.Disadvantage)
	c.Effect.Immunity = slices.Clone(c.Effect.Immunity)
	c.Effect.Resistance = slices.Clone(c.Effect.Resistance)
	c.Effect.Vulnerability = slices.Clone(c.Effect.Vulnerability)
	return c
}
