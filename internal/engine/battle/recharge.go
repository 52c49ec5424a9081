package battle

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

const rechargeDie = 6

// RechargeThreshold parses a recharge tag such as "5-6" or "6" into the lowest d6 face
// that recharges the action. Unparseable tags return 0 and never recharge.
func RechargeThreshold(tag string) int {
	tag = strings.Trim(strings.ToLower(tag), " ()")
	tag = strings.TrimSpace(strings.TrimPrefix(tag, "recharge"))
	if tag == "" {
		return 0
	}
	low, _, _ := strings.Cut(tag, "-")
	n, err := strconv.Atoi(strings.TrimSpace(low))
	if err != nil || n < 1 || n > rechargeDie {
		return 0
	}
	return n
}

// rechargeActions rolls a d6 for every exhausted recharge action and restores the ones that hit
// their threshold
func rechargeActions(roller dice.Roller, p *Participant) error {
	for i := range p.StatBlock.Actions {
		action := &p.StatBlock.Actions[i]
		if action.Recharge == "" || !p.Exhausted(action) {
			continue
		}
		threshold := RechargeThreshold(action.Recharge)
		if threshold == 0 {
			continue
		}
		roll, err := roller.Roll(rechargeDie)
		if err != nil {
			return errors.Wrapf(err, "failed to roll recharge for %s", action.Name)
		}
		if roll >= threshold {
			delete(p.UsesSpent, action.Name)
		}
	}
	return nil
}
