package miniature_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

func validStatBlock() *miniature.StatBlock {
	return &miniature.StatBlock{
		ID:     "goblin",
		Name:   "Goblin",
		Size:   miniature.SizeSmall,
		Type:   miniature.CreatureTypeHumanoid,
		Rarity: miniature.RarityCommon,
		Stats: miniature.Stats{
			ArmorClass: 15,
			HitPoints:  7,
			Abilities:  miniature.Abilities{Strength: 8, Dexterity: 14, Constitution: 10, Intelligence: 10, Wisdom: 8, Charisma: 8},
		},
		Actions: []miniature.Action{
			{
				Name:        "Scimitar",
				AttackBonus: miniature.IntPtr(4),
				Damage:      &miniature.DamageRoll{DiceCount: 1, DiceSize: 6, Modifier: 2, DamageType: miniature.DamageTypeSlashing},
			},
		},
	}
}

func TestAbilityModifier(t *testing.T) {
	cases := map[int]int{1: -5, 3: -4, 8: -1, 9: -1, 10: 0, 11: 0, 12: 1, 15: 2, 20: 5, 30: 10}
	for score, want := range cases {
		assert.Equal(t, want, miniature.AbilityModifier(score), "score %d", score)
	}
}

func TestProficiencyBonus(t *testing.T) {
	assert.Equal(t, 2, miniature.ProficiencyBonus(0.25))
	assert.Equal(t, 2, miniature.ProficiencyBonus(4))
	assert.Equal(t, 3, miniature.ProficiencyBonus(5))
	assert.Equal(t, 4, miniature.ProficiencyBonus(10))
	assert.Equal(t, 6, miniature.ProficiencyBonus(17))
}

func TestParseDamageRoll(t *testing.T) {
	tests := []struct {
		notation string
		want     *miniature.DamageRoll
		wantErr  bool
	}{
		{notation: "2d6", want: &miniature.DamageRoll{DiceCount: 2, DiceSize: 6, DamageType: miniature.DamageTypeFire}},
		{notation: "1d8+3", want: &miniature.DamageRoll{DiceCount: 1, DiceSize: 8, Modifier: 3, DamageType: miniature.DamageTypeFire}},
		{notation: "1D4 - 1", want: &miniature.DamageRoll{DiceCount: 1, DiceSize: 4, Modifier: -1, DamageType: miniature.DamageTypeFire}},
		{notation: "0d6", wantErr: true},
		{notation: "d6", wantErr: true},
		{notation: "2d", wantErr: true},
		{notation: "fireball", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			got, err := miniature.ParseDamageRoll(tt.notation, miniature.DamageTypeFire)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(sb *miniature.StatBlock)
		field  string
	}{
		{name: "valid", modify: func(*miniature.StatBlock) {}},
		{name: "missing name", modify: func(sb *miniature.StatBlock) { sb.Name = "" }, field: "name"},
		{name: "long name", modify: func(sb *miniature.StatBlock) { sb.Name = strings.Repeat("x", 65) }, field: "name"},
		{name: "unknown rarity", modify: func(sb *miniature.StatBlock) { sb.Rarity = "mythic" }, field: "rarity"},
		{name: "zero hit points", modify: func(sb *miniature.StatBlock) { sb.Stats.HitPoints = 0 }, field: "stats.hit_points"},
		{name: "ability out of range", modify: func(sb *miniature.StatBlock) { sb.Stats.Abilities.Wisdom = 31 }, field: "stats.abilities.wisdom"},
		{
			name: "duplicate action",
			modify: func(sb *miniature.StatBlock) {
				sb.Actions = append(sb.Actions, sb.Actions[0])
			},
			field: "actions",
		},
		{
			name: "save without ability",
			modify: func(sb *miniature.StatBlock) {
				sb.Actions = append(sb.Actions, miniature.Action{Name: "Roar", SaveDC: miniature.IntPtr(12)})
			},
			field: "actions",
		},
		{
			name: "zero uses",
			modify: func(sb *miniature.StatBlock) {
				sb.Actions[0].Uses = miniature.IntPtr(0)
			},
			field: "actions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := validStatBlock()
			tt.modify(sb)

			err := sb.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			validationErrors, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			require.True(t, ok)
			assert.Contains(t, validationErrors, tt.field)
		})
	}
}

func TestActionKinds(t *testing.T) {
	attack := miniature.Action{Name: "Bite", AttackBonus: miniature.IntPtr(5)}
	save := miniature.Action{Name: "Fire Breath", SaveDC: miniature.IntPtr(17), SaveAbility: miniature.AbilityDexterity, Recharge: "5-6"}
	limited := miniature.Action{Name: "Javelin", AttackBonus: miniature.IntPtr(5), Uses: miniature.IntPtr(3)}

	assert.True(t, attack.IsAttack())
	assert.False(t, attack.IsSave())
	assert.False(t, attack.IsLimited())
	assert.Equal(t, 0, attack.MaxUses())

	assert.True(t, save.IsSave())
	assert.True(t, save.IsLimited())
	assert.Equal(t, 1, save.MaxUses())

	assert.Equal(t, 3, limited.MaxUses())
}

func TestCloneDoesNotShareActions(t *testing.T) {
	sb := validStatBlock()
	sb.Weapons = []string{"shortsword"}

	clone := sb.Clone()
	clone.Actions[0].Name = "Dagger"
	clone.Weapons[0] = "shortbow"

	assert.Equal(t, "Scimitar", sb.Actions[0].Name)
	assert.Equal(t, "shortsword", sb.Weapons[0])

	action, ok := clone.FindAction("Dagger")
	require.True(t, ok)
	assert.Equal(t, 4, *action.AttackBonus)
	_, ok = clone.FindAction("Scimitar")
	assert.False(t, ok)
}

func TestAbilitiesScoreAndAdd(t *testing.T) {
	base := miniature.Abilities{Strength: 10, Dexterity: 14}
	sum := base.Add(miniature.Abilities{Strength: 2, Dexterity: -2})

	assert.Equal(t, 12, sum.Score(miniature.AbilityStrength))
	assert.Equal(t, 12, sum.Score(miniature.AbilityDexterity))
	assert.Equal(t, 0, sum.Score("luck"))
}
