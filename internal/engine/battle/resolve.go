package battle

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

const (
	d20             = 20
	naturalCritical = 20
	naturalFumble   = 1
)

// Resolver turns an action into an ActionResult. It never mutates participants.
type Resolver struct {
	roller dice.Roller
}

// NewResolver creates a resolver rolling with roller
func NewResolver(roller dice.Roller) *Resolver {
	return &Resolver{roller: roller}
}

// Resolve rolls the action of attacker against target
func (r *Resolver) Resolve(attacker, target *Participant, action *miniature.Action) (*ActionResult, error) {
	if attacker == nil || target == nil || action == nil {
		return nil, invalidAction("attacker, target and action are required")
	}
	if !target.Alive() {
		return nil, invalidAction("target %s is already defeated", target.ID)
	}

	switch {
	case action.IsAttack():
		return r.resolveAttack(attacker, target, action)
	case action.IsSave():
		return r.resolveSave(target, action)
	case action.Damage != nil:
		damage, err := r.rollDamage(action.Damage, false)
		if err != nil {
			return nil, err
		}
		damage = ApplyDamageModifiers(damage, action.Damage.DamageType, target.DamageTags())
		return &ActionResult{
			Kind:       ResolutionAuto,
			Hit:        true,
			Damage:     damage,
			DamageType: action.Damage.DamageType,
		}, nil
	default:
		return &ActionResult{Kind: ResolutionUtility}, nil
	}
}

func (r *Resolver) resolveAttack(attacker, target *Participant, action *miniature.Action) (*ActionResult, error) {
	roll, err := r.rollD20(attacker.HasAdvantage(TagAttack), attacker.HasDisadvantage(TagAttack))
	if err != nil {
		return nil, err
	}

	result := &ActionResult{
		Kind:  ResolutionAttack,
		Roll:  roll,
		Total: roll + *action.AttackBonus,
	}

	switch roll {
	case naturalCritical:
		result.Hit = true
		result.Critical = true
	case naturalFumble:
		result.Hit = false
	default:
		result.Hit = result.Total >= target.ArmorClass()
	}

	if !result.Hit || action.Damage == nil {
		return result, nil
	}

	damage, err := r.rollDamage(action.Damage, result.Critical)
	if err != nil {
		return nil, err
	}
	result.DamageType = action.Damage.DamageType
	result.Damage = ApplyDamageModifiers(damage, action.Damage.DamageType, target.DamageTags())

	return result, nil
}

func (r *Resolver) resolveSave(target *Participant, action *miniature.Action) (*ActionResult, error) {
	ability := string(action.SaveAbility)
	advantage := target.HasAdvantage(TagSaves) || target.HasAdvantage(ability)
	disadvantage := target.HasDisadvantage(TagSaves) || target.HasDisadvantage(ability)

	roll, err := r.rollD20(advantage, disadvantage)
	if err != nil {
		return nil, err
	}

	total := roll + target.AbilityModifier(action.SaveAbility)
	result := &ActionResult{
		Kind:  ResolutionSave,
		Roll:  roll,
		Total: total,
		Saved: total >= *action.SaveDC,
	}
	result.Hit = !result.Saved

	if action.Damage == nil {
		return result, nil
	}

	damage, err := r.rollDamage(action.Damage, false)
	if err != nil {
		return nil, err
	}
	if result.Saved {
		damage /= 2
	}
	result.DamageType = action.Damage.DamageType
	result.Damage = ApplyDamageModifiers(damage, action.Damage.DamageType, target.DamageTags())

	return result, nil
}

// rollD20 rolls one d20, or two keeping the better/worse one when exactly one of
// advantage and disadvantage applies
func (r *Resolver) rollD20(advantage, disadvantage bool) (int, error) {
	if advantage == disadvantage {
		roll, err := r.roller.Roll(d20)
		if err != nil {
			return 0, errors.Wrap(err, "failed to roll d20")
		}
		return roll, nil
	}

	rolls, err := r.roller.RollN(2, d20)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll d20 twice")
	}
	if len(rolls) != 2 {
		return 0, errors.Internalf("expected 2 d20 results, got %d", len(rolls))
	}
	if advantage {
		return max(rolls[0], rolls[1]), nil
	}
	return min(rolls[0], rolls[1]), nil
}

// rollDamage sums the damage dice plus modifier. A critical hit rolls the dice twice.
func (r *Resolver) rollDamage(spec *miniature.DamageRoll, critical bool) (int, error) {
	count := spec.DiceCount
	if critical {
		count *= 2
	}

	total := spec.Modifier
	if count > 0 && spec.DiceSize > 0 {
		rolls, err := r.roller.RollN(count, spec.DiceSize)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to roll %dd%d", count, spec.DiceSize)
		}
		for _, v := range rolls {
			total += v
		}
	}

	return max(0, total), nil
}

// ApplyDamageModifiers applies immunity, resistance and vulnerability for damageType.
// Immunity wins; resistance halves rounding down; vulnerability doubles.
func ApplyDamageModifiers(damage int, damageType miniature.DamageType, tags ConditionEffect) int {
	if damage <= 0 {
		return 0
	}
	if damageType == "" {
		return damage
	}
	if slices.Contains(tags.Immunity, damageType) {
		return 0
	}
	if slices.Contains(tags.Resistance, damageType) {
		damage /= 2
	}
	if slices.Contains(tags.Vulnerability, damageType) {
		damage *= 2
	}
	return damage
}
