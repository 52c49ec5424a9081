package miniature

import (
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

const maxNameLength = 64

var rarities = []string{
	string(RarityCommon),
	string(RarityUncommon),
	string(RarityRare),
	string(RarityEpic),
	string(RarityLegendary),
}

// Validate checks that a stat block can take part in a battle
func (s *StatBlock) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", s.Name, vb)
	errors.ValidateMaxLength("name", s.Name, maxNameLength, vb)
	if s.Rarity != "" {
		errors.ValidateEnum("rarity", string(s.Rarity), rarities, vb)
	}
	if s.Stats.HitPoints <= 0 {
		vb.Field("stats.hit_points", "must be positive")
	}
	if s.Stats.ArmorClass < 0 {
		vb.Field("stats.armor_class", "must not be negative")
	}

	abilities := []struct {
		name  string
		score int
	}{
		{"strength", s.Stats.Abilities.Strength},
		{"dexterity", s.Stats.Abilities.Dexterity},
		{"constitution", s.Stats.Abilities.Constitution},
		{"intelligence", s.Stats.Abilities.Intelligence},
		{"wisdom", s.Stats.Abilities.Wisdom},
		{"charisma", s.Stats.Abilities.Charisma},
	}
	for _, a := range abilities {
		errors.ValidateRange("stats.abilities."+a.name, a.score, 1, 30, vb)
	}

	seen := make(map[string]bool, len(s.Actions))
	for i := range s.Actions {
		action := &s.Actions[i]
		if action.Name == "" {
			vb.Fieldf("actions", "action %d has no name", i)
			continue
		}
		if seen[action.Name] {
			vb.Fieldf("actions", "duplicate action %q", action.Name)
		}
		seen[action.Name] = true

		if d := action.Damage; d != nil && (d.DiceCount < 0 || d.DiceSize < 0 || (d.DiceCount > 0 && d.DiceSize == 0)) {
			vb.Fieldf("actions", "action %q has invalid damage dice", action.Name)
		}
		if action.SaveDC != nil && !action.SaveAbility.Valid() {
			vb.Fieldf("actions", "action %q has a save DC without a valid save ability", action.Name)
		}
		if action.Uses != nil && *action.Uses <= 0 {
			vb.Fieldf("actions", "action %q must have positive uses", action.Name)
		}
	}

	return vb.Build()
}
