package miniature

// Ability names an ability score
type Ability string

// Ability score names
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Valid reports whether the ability is one of the six scores
func (a Ability) Valid() bool {
	switch a {
	case AbilityStrength, AbilityDexterity, AbilityConstitution,
		AbilityIntelligence, AbilityWisdom, AbilityCharisma:
		return true
	}
	return false
}

// DamageType tags damage for resistance checks
type DamageType string

// Damage types
const (
	DamageTypeBludgeoning DamageType = "bludgeoning"
	DamageTypePiercing    DamageType = "piercing"
	DamageTypeSlashing    DamageType = "slashing"
	DamageTypeFire        DamageType = "fire"
	DamageTypeCold        DamageType = "cold"
	DamageTypeLightning   DamageType = "lightning"
	DamageTypeThunder     DamageType = "thunder"
	DamageTypeAcid        DamageType = "acid"
	DamageTypePoison      DamageType = "poison"
	DamageTypeRadiant     DamageType = "radiant"
	DamageTypeNecrotic    DamageType = "necrotic"
	DamageTypePsychic     DamageType = "psychic"
	DamageTypeForce       DamageType = "force"
)

// DamageTypeNames lists every known damage type
func DamageTypeNames() []string {
	return []string{
		string(DamageTypeBludgeoning),
		string(DamageTypePiercing),
		string(DamageTypeSlashing),
		string(DamageTypeFire),
		string(DamageTypeCold),
		string(DamageTypeLightning),
		string(DamageTypeThunder),
		string(DamageTypeAcid),
		string(DamageTypePoison),
		string(DamageTypeRadiant),
		string(DamageTypeNecrotic),
		string(DamageTypePsychic),
		string(DamageTypeForce),
	}
}

// Size is a creature size category
type Size string

// Creature sizes
const (
	SizeTiny       Size = "Tiny"
	SizeSmall      Size = "Small"
	SizeMedium     Size = "Medium"
	SizeLarge      Size = "Large"
	SizeHuge       Size = "Huge"
	SizeGargantuan Size = "Gargantuan"
)

// CreatureType classifies a creature
type CreatureType string

// Creature types
const (
	CreatureTypeHumanoid    CreatureType = "humanoid"
	CreatureTypeBeast       CreatureType = "beast"
	CreatureTypeDragon      CreatureType = "dragon"
	CreatureTypeUndead      CreatureType = "undead"
	CreatureTypeFiend       CreatureType = "fiend"
	CreatureTypeCelestial   CreatureType = "celestial"
	CreatureTypeFey         CreatureType = "fey"
	CreatureTypeElemental   CreatureType = "elemental"
	CreatureTypeGiant       CreatureType = "giant"
	CreatureTypeMonstrosity CreatureType = "monstrosity"
	CreatureTypeOoze        CreatureType = "ooze"
	CreatureTypePlant       CreatureType = "plant"
	CreatureTypeConstruct   CreatureType = "construct"
	CreatureTypeAberration  CreatureType = "aberration"
)

// Rarity of a collectible
type Rarity string

// Rarities
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)
