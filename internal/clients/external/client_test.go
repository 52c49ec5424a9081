package external

import (
	"context"
	"errors"
	"testing"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	internalerrors "github.com/KirkDiggler/miniature-battle/internal/errors"
)

// mockDND5eClient is a mock implementation of the dnd5e.Interface for testing
type mockDND5eClient struct {
	mock.Mock
}

func (m *mockDND5eClient) ListRaces() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetRace(key string) (*entities.Race, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Race), args.Error(1)
}

func (m *mockDND5eClient) ListEquipment() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetEquipment(key string) (dnd5e.EquipmentInterface, error) {
	args := m.Called(key)
	return args.Get(0).(dnd5e.EquipmentInterface), args.Error(1)
}

func (m *mockDND5eClient) GetEquipmentCategory(key string) (*entities.EquipmentCategory, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.EquipmentCategory), args.Error(1)
}

func (m *mockDND5eClient) ListClasses() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetClass(key string) (*entities.Class, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Class), args.Error(1)
}

func (m *mockDND5eClient) ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error) {
	args := m.Called(input)
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetSpell(key string) (*entities.Spell, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Spell), args.Error(1)
}

func (m *mockDND5eClient) ListFeatures() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetFeature(key string) (*entities.Feature, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Feature), args.Error(1)
}

func (m *mockDND5eClient) ListSkills() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetSkill(key string) (*entities.Skill, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Skill), args.Error(1)
}

func (m *mockDND5eClient) ListMonsters() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) ListMonstersWithFilter(input *dnd5e.ListMonstersInput) ([]*entities.ReferenceItem, error) {
	args := m.Called(input)
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetMonster(key string) (*entities.Monster, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Monster), args.Error(1)
}

func (m *mockDND5eClient) GetClassLevel(key string, level int) (*entities.Level, error) {
	args := m.Called(key, level)
	return args.Get(0).(*entities.Level), args.Error(1)
}

func (m *mockDND5eClient) GetProficiency(key string) (*entities.Proficiency, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Proficiency), args.Error(1)
}

func (m *mockDND5eClient) ListDamageTypes() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetDamageType(key string) (*entities.DamageType, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.DamageType), args.Error(1)
}

func (m *mockDND5eClient) ListBackgrounds() ([]*entities.ReferenceItem, error) {
	args := m.Called()
	return args.Get(0).([]*entities.ReferenceItem), args.Error(1)
}

func (m *mockDND5eClient) GetBackground(key string) (*entities.Background, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.Background), args.Error(1)
}

func testLongsword() *entities.Weapon {
	return &entities.Weapon{
		Key:               "longsword",
		Name:              "Longsword",
		WeaponCategory:    "Martial",
		WeaponRange:       "Melee",
		Damage:            &entities.Damage{DamageDice: "1d8", DamageType: &entities.ReferenceItem{Name: "Slashing"}},
		Properties:        []*entities.ReferenceItem{{Name: "Versatile"}},
		EquipmentCategory: &entities.ReferenceItem{Key: "martial-weapons"},
	}
}

func TestGetWeapon(t *testing.T) {
	t.Run("successful weapon retrieval", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("GetEquipment", "longsword").Return(testLongsword(), nil)

		result, err := client.GetWeapon(context.Background(), "longsword")

		require.NoError(t, err)
		assert.Equal(t, "longsword", result.ID)
		assert.Equal(t, "Longsword", result.Name)
		assert.Equal(t, "Martial", result.Category)
		assert.Equal(t, "Melee", result.Range)
		assert.Equal(t, "1d8", result.DamageDice)
		assert.Equal(t, "slashing", result.DamageType)
		assert.Equal(t, []string{"Versatile"}, result.Properties)
		assert.Equal(t, "martial-weapons", result.EquipmentCategory)

		mockClient.AssertExpectations(t)
	})

	t.Run("normalizes the key", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("GetEquipment", "light-crossbow").Return(&entities.Weapon{
			Key:         "light-crossbow",
			Name:        "Crossbow, light",
			WeaponRange: "Ranged",
		}, nil)

		result, err := client.GetWeapon(context.Background(), "Light_Crossbow")

		require.NoError(t, err)
		assert.Equal(t, "light-crossbow", result.ID)
		mockClient.AssertExpectations(t)
	})

	t.Run("rejects non-weapon equipment", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("GetEquipment", "rope").Return(&entities.Equipment{Key: "rope", Name: "Rope"}, nil)

		result, err := client.GetWeapon(context.Background(), "rope")

		assert.Nil(t, result)
		assert.True(t, internalerrors.IsInvalidArgument(err))
		mockClient.AssertExpectations(t)
	})

	t.Run("api error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("GetEquipment", "vorpal-sword").Return((*entities.Weapon)(nil), errors.New("not found"))

		result, err := client.GetWeapon(context.Background(), "vorpal-sword")

		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get weapon vorpal-sword")
		assert.Equal(t, "vorpal-sword", internalerrors.GetMeta(err)["weapon"])
		mockClient.AssertExpectations(t)
	})

	t.Run("empty key", func(t *testing.T) {
		client := &client{dnd5eClient: new(mockDND5eClient)}

		_, err := client.GetWeapon(context.Background(), "")

		assert.True(t, internalerrors.IsInvalidArgument(err))
	})
}

func TestListWeapons(t *testing.T) {
	t.Run("loads every weapon in the category", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		category := &entities.EquipmentCategory{
			Index: "martial-weapons",
			Name:  "Martial Weapons",
			Equipment: []*entities.ReferenceItem{
				{Key: "longsword", Name: "Longsword"},
				{Key: "battleaxe", Name: "Battleaxe"},
			},
		}
		battleaxe := &entities.Weapon{
			Key:            "battleaxe",
			Name:           "Battleaxe",
			WeaponCategory: "Martial",
			WeaponRange:    "Melee",
		}

		mockClient.On("GetEquipmentCategory", "martial-weapons").Return(category, nil)
		mockClient.On("GetEquipment", "longsword").Return(testLongsword(), nil)
		mockClient.On("GetEquipment", "battleaxe").Return(battleaxe, nil)

		result, err := client.ListWeapons(context.Background(), "martial-weapons")

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "longsword", result[0].ID)
		assert.Equal(t, "battleaxe", result[1].ID)

		mockClient.AssertExpectations(t)
	})

	t.Run("skips non-weapon entries", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		category := &entities.EquipmentCategory{
			Index: "mixed",
			Equipment: []*entities.ReferenceItem{
				{Key: "longsword", Name: "Longsword"},
				{Key: "rope", Name: "Rope"},
			},
		}

		mockClient.On("GetEquipmentCategory", "mixed").Return(category, nil)
		mockClient.On("GetEquipment", "longsword").Return(testLongsword(), nil)
		mockClient.On("GetEquipment", "rope").Return(&entities.Equipment{Key: "rope"}, nil)

		result, err := client.ListWeapons(context.Background(), "mixed")

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "longsword", result[0].ID)
	})

	t.Run("category error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		mockClient.On("GetEquipmentCategory", "invalid-category").Return(
			(*entities.EquipmentCategory)(nil), errors.New("category not found"))

		result, err := client.ListWeapons(context.Background(), "invalid-category")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to get equipment category")

		mockClient.AssertExpectations(t)
	})

	t.Run("detail error", func(t *testing.T) {
		mockClient := new(mockDND5eClient)
		client := &client{dnd5eClient: mockClient}

		category := &entities.EquipmentCategory{
			Index:     "martial-weapons",
			Equipment: []*entities.ReferenceItem{{Key: "longsword"}},
		}
		mockClient.On("GetEquipmentCategory", "martial-weapons").Return(category, nil)
		mockClient.On("GetEquipment", "longsword").Return((*entities.Weapon)(nil), errors.New("timeout"))

		result, err := client.ListWeapons(context.Background(), "martial-weapons")

		assert.Nil(t, result)
		assert.True(t, internalerrors.IsUnavailable(err))
	})
}

func TestWeaponAction(t *testing.T) {
	fighter := miniature.Abilities{Strength: 16, Dexterity: 12}
	rogue := miniature.Abilities{Strength: 10, Dexterity: 18}

	testCases := []struct {
		name       string
		weapon     *WeaponData
		abilities  miniature.Abilities
		wantBonus  int
		wantDamage miniature.DamageRoll
		wantRange  *int
	}{
		{
			name:       "melee uses strength",
			weapon:     &WeaponData{ID: "longsword", Name: "Longsword", Range: "Melee", DamageDice: "1d8", DamageType: "slashing"},
			abilities:  fighter,
			wantBonus:  5,
			wantDamage: miniature.DamageRoll{DiceCount: 1, DiceSize: 8, Modifier: 3, DamageType: miniature.DamageTypeSlashing},
			wantRange:  miniature.IntPtr(5),
		},
		{
			name:       "finesse takes the better modifier",
			weapon:     &WeaponData{ID: "rapier", Name: "Rapier", Range: "Melee", DamageDice: "1d8", DamageType: "piercing", Properties: []string{"Finesse"}},
			abilities:  rogue,
			wantBonus:  6,
			wantDamage: miniature.DamageRoll{DiceCount: 1, DiceSize: 8, Modifier: 4, DamageType: miniature.DamageTypePiercing},
			wantRange:  miniature.IntPtr(5),
		},
		{
			name:       "ranged uses dexterity",
			weapon:     &WeaponData{ID: "shortbow", Name: "Shortbow", Range: "Ranged", DamageDice: "1d6", DamageType: "piercing"},
			abilities:  fighter,
			wantBonus:  3,
			wantDamage: miniature.DamageRoll{DiceCount: 1, DiceSize: 6, Modifier: 1, DamageType: miniature.DamageTypePiercing},
		},
		{
			name:       "reach extends range",
			weapon:     &WeaponData{ID: "glaive", Name: "Glaive", Range: "Melee", DamageDice: "1d10", DamageType: "slashing", Properties: []string{"Heavy", "Reach"}},
			abilities:  fighter,
			wantBonus:  5,
			wantDamage: miniature.DamageRoll{DiceCount: 1, DiceSize: 10, Modifier: 3, DamageType: miniature.DamageTypeSlashing},
			wantRange:  miniature.IntPtr(10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, err := tc.weapon.Action(tc.abilities, 2)
			require.NoError(t, err)

			assert.Equal(t, tc.weapon.Name, action.Name)
			require.NotNil(t, action.AttackBonus)
			assert.Equal(t, tc.wantBonus, *action.AttackBonus)
			require.NotNil(t, action.Damage)
			assert.Equal(t, tc.wantDamage, *action.Damage)
			assert.Equal(t, tc.wantRange, action.Range)
			assert.True(t, action.IsAttack())
		})
	}

	t.Run("no damage dice", func(t *testing.T) {
		net := &WeaponData{ID: "net", Name: "Net", Range: "Ranged"}

		_, err := net.Action(fighter, 2)

		assert.True(t, internalerrors.IsInvalidArgument(err))
	})
}
