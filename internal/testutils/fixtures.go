package testutils

import (
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
)

// Fixture stat block ids
const (
	KnightID = "knight-commander"
	GoblinID = "goblin-skirmisher"
	DragonID = "young-red-dragon"
)

// CreateTestKnight creates a heavily armored melee miniature (HP 58, AC 18, DEX 12)
func CreateTestKnight() *miniature.StatBlock {
	return &miniature.StatBlock{
		ID:              KnightID,
		Name:            "Knight Commander",
		Source:          "test",
		ChallengeRating: 3,
		Size:            miniature.SizeMedium,
		Type:            miniature.CreatureTypeHumanoid,
		Rarity:          miniature.RarityRare,
		Stats: miniature.Stats{
			ArmorClass: 18,
			HitPoints:  58,
			Speed:      miniature.Speed{Walk: 30},
			Abilities: miniature.Abilities{
				Strength:     16,
				Dexterity:    12,
				Constitution: 14,
				Intelligence: 11,
				Wisdom:       11,
				Charisma:     15,
			},
		},
		Actions: []miniature.Action{
			{
				Name:        "Longsword",
				Description: "Melee Weapon Attack",
				AttackBonus: miniature.IntPtr(5),
				Damage: &miniature.DamageRoll{
					DiceCount:  1,
					DiceSize:   8,
					Modifier:   3,
					DamageType: miniature.DamageTypeSlashing,
				},
				Range: miniature.IntPtr(5),
			},
			{
				Name:        "Leadership",
				Description: "Rallies nearby allies",
				Uses:        miniature.IntPtr(1),
			},
		},
	}
}

// CreateTestGoblin creates a light skirmisher miniature (HP 15, AC 13, DEX 12)
func CreateTestGoblin() *miniature.StatBlock {
	return &miniature.StatBlock{
		ID:              GoblinID,
		Name:            "Goblin Skirmisher",
		Source:          "test",
		ChallengeRating: 0.25,
		Size:            miniature.SizeSmall,
		Type:            miniature.CreatureTypeHumanoid,
		Rarity:          miniature.RarityCommon,
		Stats: miniature.Stats{
			ArmorClass: 13,
			HitPoints:  15,
			Speed:      miniature.Speed{Walk: 30},
			Abilities: miniature.Abilities{
				Strength:     8,
				Dexterity:    12,
				Constitution: 10,
				Intelligence: 10,
				Wisdom:       8,
				Charisma:     8,
			},
		},
		Actions: []miniature.Action{
			{
				Name:        "Scimitar",
				Description: "Melee Weapon Attack",
				AttackBonus: miniature.IntPtr(4),
				Damage: &miniature.DamageRoll{
					DiceCount:  1,
					DiceSize:   6,
					Modifier:   2,
					DamageType: miniature.DamageTypeSlashing,
				},
				Range: miniature.IntPtr(5),
			},
		},
	}
}

// CreateTestDragon creates a miniature with a recharge breath weapon save action
func CreateTestDragon() *miniature.StatBlock {
	return &miniature.StatBlock{
		ID:              DragonID,
		Name:            "Young Red Dragon",
		Source:          "test",
		ChallengeRating: 10,
		Size:            miniature.SizeLarge,
		Type:            miniature.CreatureTypeDragon,
		Rarity:          miniature.RarityEpic,
		Stats: miniature.Stats{
			ArmorClass: 18,
			HitPoints:  178,
			Speed:      miniature.Speed{Walk: 40, Climb: 40, Fly: 80},
			Abilities: miniature.Abilities{
				Strength:     23,
				Dexterity:    10,
				Constitution: 21,
				Intelligence: 14,
				Wisdom:       11,
				Charisma:     19,
			},
		},
		Actions: []miniature.Action{
			{
				Name:        "Bite",
				AttackBonus: miniature.IntPtr(10),
				Damage: &miniature.DamageRoll{
					DiceCount:  2,
					DiceSize:   10,
					Modifier:   6,
					DamageType: miniature.DamageTypePiercing,
				},
			},
			{
				Name:        "Fire Breath",
				Description: "30-foot cone",
				SaveDC:      miniature.IntPtr(17),
				SaveAbility: miniature.AbilityDexterity,
				Damage: &miniature.DamageRoll{
					DiceCount:  16,
					DiceSize:   6,
					DamageType: miniature.DamageTypeFire,
				},
				Recharge: "5-6",
			},
		},
	}
}
