// Package miniature holds the immutable combat profiles of collectible miniatures.
package miniature

import "slices"

// Abilities holds the six D&D ability scores
type Abilities struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// Score returns the score for the named ability, or 0 for an unknown name
func (a Abilities) Score(ability Ability) int {
	switch ability {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Add returns the element-wise sum of two ability blocks
func (a Abilities) Add(o Abilities) Abilities {
	return Abilities{
		Strength:     a.Strength + o.Strength,
		Dexterity:    a.Dexterity + o.Dexterity,
		Constitution: a.Constitution + o.Constitution,
		Intelligence: a.Intelligence + o.Intelligence,
		Wisdom:       a.Wisdom + o.Wisdom,
		Charisma:     a.Charisma + o.Charisma,
	}
}

// Speed is movement speed in feet
type Speed struct {
	Walk  int `json:"walk" yaml:"walk"`
	Climb int `json:"climb,omitempty" yaml:"climb,omitempty"`
	Fly   int `json:"fly,omitempty" yaml:"fly,omitempty"`
	Swim  int `json:"swim,omitempty" yaml:"swim,omitempty"`
}

// DamageRoll describes the damage dealt by an action
type DamageRoll struct {
	DiceCount  int        `json:"dice_count" yaml:"dice_count"`
	DiceSize   int        `json:"dice_size" yaml:"dice_size"`
	Modifier   int        `json:"modifier" yaml:"modifier"`
	DamageType DamageType `json:"damage_type" yaml:"damage_type"`
}

// Action is something a miniature can do on its turn
type Action struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Damage      *DamageRoll `json:"damage,omitempty" yaml:"damage,omitempty"`
	AttackBonus *int        `json:"attack_bonus,omitempty" yaml:"attack_bonus,omitempty"`
	SaveDC      *int        `json:"save_dc,omitempty" yaml:"save_dc,omitempty"`
	SaveAbility Ability     `json:"save_ability,omitempty" yaml:"save_ability,omitempty"`
	Range       *int        `json:"range,omitempty" yaml:"range,omitempty"`
	Uses        *int        `json:"uses,omitempty" yaml:"uses,omitempty"`
	Recharge    string      `json:"recharge,omitempty" yaml:"recharge,omitempty"`
}

// IsAttack reports whether the action resolves with an attack roll
func (a *Action) IsAttack() bool {
	return a.AttackBonus != nil
}

// IsSave reports whether the action resolves with a saving throw
func (a *Action) IsSave() bool {
	return a.AttackBonus == nil && a.SaveDC != nil
}

// IsLimited reports whether the action can run out
func (a *Action) IsLimited() bool {
	return a.Uses != nil || a.Recharge != ""
}

// MaxUses returns how many times the action can be used before it is exhausted.
// Recharge actions without explicit uses get a single use per charge.
func (a *Action) MaxUses() int {
	if a.Uses != nil {
		return *a.Uses
	}
	if a.Recharge != "" {
		return 1
	}
	return 0
}

// Stats is the numeric combat profile
type Stats struct {
	ArmorClass int       `json:"armor_class" yaml:"armor_class"`
	HitPoints  int       `json:"hit_points" yaml:"hit_points"`
	Speed      Speed     `json:"speed" yaml:"speed"`
	Abilities  Abilities `json:"abilities" yaml:"abilities"`
}

// StatBlock is the immutable combat profile of a creature
type StatBlock struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Source          string       `json:"source,omitempty" yaml:"source,omitempty"`
	ChallengeRating float64      `json:"challenge_rating,omitempty" yaml:"challenge_rating,omitempty"`
	Size            Size         `json:"size" yaml:"size"`
	Type            CreatureType `json:"type" yaml:"type"`
	Rarity          Rarity       `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Stats           Stats        `json:"stats" yaml:"stats"`
	Actions         []Action     `json:"actions" yaml:"actions"`
	// Weapons lists SRD equipment keys resolved into extra actions by the stat block provider
	Weapons []string `json:"weapons,omitempty" yaml:"weapons,omitempty"`
}

// FindAction returns the action with the given name
func (s *StatBlock) FindAction(name string) (*Action, bool) {
	for i := range s.Actions {
		if s.Actions[i].Name == name {
			return &s.Actions[i], true
		}
	}
	return nil, false
}

// Clone returns a copy whose action and weapon slices are not shared.
// Optional action fields are pointers to values that are never mutated.
func (s *StatBlock) Clone() *StatBlock {
	out := *s
	out.Actions = slices.Clone(s.Actions)
	out.Weapons = slices.Clone(s.Weapons)
	return &out
}

// AbilityModifier returns floor((score-10)/2)
func AbilityModifier(score int) int {
	modifier := (score - 10) / 2
	if score < 10 && (score-10)%2 != 0 {
		modifier--
	}
	return modifier
}

// ProficiencyBonus returns the proficiency bonus for a challenge rating
func ProficiencyBonus(challengeRating float64) int {
	cr := int(challengeRating)
	if cr < 1 {
		return 2
	}
	return 2 + (cr-1)/4
}

// IntPtr is a small helper for optional action fields
func IntPtr(v int) *int {
	return &v
}
