package battle

import (
	"cmp"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// RollInitiative assigns d20 + dexterity modifier to every participant and sorts them
// descending. Ties keep their original relative order.
func RollInitiative(roller dice.Roller, participants []*Participant) error {
	for _, p := range participants {
		roll, err := roller.Roll(d20)
		if err != nil {
			return errors.Wrapf(err, "failed to roll initiative for %s", p.ID)
		}
		p.Initiative = roll + p.AbilityModifier(miniature.AbilityDexterity)
	}

	slices.SortStableFunc(participants, func(a, b *Participant) int {
		return cmp.Compare(b.Initiative, a.Initiative)
	})

	return nil
}
