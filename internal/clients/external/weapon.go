package external

import (
	"strings"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// Weapon properties that change how an attack is built
const (
	PropertyFinesse = "Finesse"
	PropertyReach   = "Reach"
	PropertyThrown  = "Thrown"

	rangeRanged = "Ranged"

	meleeReach    = 5
	extendedReach = 10
	// SRD thrown weapons share a 20 ft normal range
	thrownRange = 20
)

// HasProperty reports whether the weapon carries the named property
func (w *WeaponData) HasProperty(name string) bool {
	for _, prop := range w.Properties {
		if strings.EqualFold(prop, name) {
			return true
		}
	}
	return false
}

// IsRanged reports whether the weapon is a ranged weapon
func (w *WeaponData) IsRanged() bool {
	return strings.EqualFold(w.Range, rangeRanged)
}

// Action builds an attack action for a creature with the given ability
// scores and proficiency bonus. Melee weapons use strength, ranged weapons
// use dexterity and finesse weapons use the better of the two.
func (w *WeaponData) Action(abilities miniature.Abilities, proficiency int) (*miniature.Action, error) {
	if w.DamageDice == "" {
		return nil, errors.InvalidArgumentf("weapon %s has no damage dice", w.ID).
			WithMeta("weapon", w.ID)
	}

	strMod := miniature.AbilityModifier(abilities.Strength)
	dexMod := miniature.AbilityModifier(abilities.Dexterity)

	modifier := strMod
	switch {
	case w.IsRanged():
		modifier = dexMod
	case w.HasProperty(PropertyFinesse) && dexMod > strMod:
		modifier = dexMod
	}

	damage, err := miniature.ParseDamageRoll(w.DamageDice, miniature.DamageType(w.DamageType))
	if err != nil {
		return nil, errors.Wrapf(err, "weapon %s", w.ID)
	}
	damage.Modifier += modifier

	action := &miniature.Action{
		Name:        w.Name,
		Description: describeWeapon(w),
		Damage:      damage,
		AttackBonus: miniature.IntPtr(proficiency + modifier),
	}

	switch {
	case w.IsRanged():
	case w.HasProperty(PropertyReach):
		action.Range = miniature.IntPtr(extendedReach)
	case w.HasProperty(PropertyThrown):
		action.Range = miniature.IntPtr(thrownRange)
	default:
		action.Range = miniature.IntPtr(meleeReach)
	}

	return action, nil
}

func describeWeapon(w *WeaponData) string {
	kind := "Melee Weapon Attack"
	if w.IsRanged() {
		kind = "Ranged Weapon Attack"
	}
	if len(w.Properties) == 0 {
		return kind
	}
	return kind + " (" + strings.Join(w.Properties, ", ") + ")"
}
