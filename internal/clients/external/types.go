package external

// WeaponData is an SRD weapon from the external source
type WeaponData struct {
	ID                string
	Name              string
	Category          string // "Simple" or "Martial"
	Range             string // "Melee" or "Ranged"
	DamageDice        string
	DamageType        string
	Properties        []string
	EquipmentCategory string
}
