package statblock_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/miniature-battle/internal/clients/external"
	externalmock "github.com/KirkDiggler/miniature-battle/internal/clients/external/mock"
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	internalerrors "github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/services/statblock"
)

const testCatalog = `
miniatures:
  - id: orc
    name: Orc
    challenge_rating: 0.5
    size: Medium
    type: humanoid
    rarity: common
    stats:
      armor_class: 13
      hit_points: 15
      abilities: { strength: 16, dexterity: 12, constitution: 16, intelligence: 7, wisdom: 11, charisma: 10 }
    actions:
      - name: Javelin
        attack_bonus: 5
        damage: { dice_count: 1, dice_size: 6, modifier: 3, damage_type: piercing }
    weapons: [greataxe, javelin]
  - id: wolf
    name: Wolf
    challenge_rating: 0.25
    size: Medium
    type: beast
    rarity: common
    stats:
      armor_class: 13
      hit_points: 11
      abilities: { strength: 12, dexterity: 15, constitution: 12, intelligence: 3, wisdom: 12, charisma: 6 }
    actions:
      - name: Bite
        attack_bonus: 4
        damage: { dice_count: 2, dice_size: 4, modifier: 2, damage_type: piercing }
  - id: dragon
    name: Dragon
    challenge_rating: 10
    size: Large
    type: dragon
    rarity: epic
    stats:
      armor_class: 18
      hit_points: 178
      abilities: { strength: 23, dexterity: 10, constitution: 21, intelligence: 14, wisdom: 11, charisma: 19 }
    actions:
      - name: Bite
        attack_bonus: 10
        damage: { dice_count: 2, dice_size: 10, modifier: 6, damage_type: piercing }
`

type ProviderTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockWeapons *externalmock.MockClient
	catalog     *statblock.Catalog
	provider    statblock.Provider
	ctx         context.Context
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (s *ProviderTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockWeapons = externalmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	catalog, err := statblock.ParseCatalog([]byte(testCatalog))
	s.Require().NoError(err)
	s.catalog = catalog

	provider, err := statblock.NewProvider(&statblock.Config{
		Catalog: catalog,
		Weapons: s.mockWeapons,
	})
	s.Require().NoError(err)
	s.provider = provider
}

func (s *ProviderTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ProviderTestSuite) TestNewProviderRequiresCatalog() {
	_, err := statblock.NewProvider(&statblock.Config{})
	s.Error(err)

	_, err = statblock.NewProvider(nil)
	s.True(internalerrors.IsInvalidArgument(err))
}

func (s *ProviderTestSuite) TestGetStatBlockWithoutWeapons() {
	out, err := s.provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{ID: "wolf"})
	s.Require().NoError(err)

	s.Equal("Wolf", out.StatBlock.Name)
	s.Len(out.StatBlock.Actions, 1)
}

func (s *ProviderTestSuite) TestGetStatBlockExpandsWeapons() {
	s.mockWeapons.EXPECT().
		GetWeapon(s.ctx, "greataxe").
		Return(&external.WeaponData{
			ID:         "greataxe",
			Name:       "Greataxe",
			Range:      "Melee",
			DamageDice: "1d12",
			DamageType: "slashing",
			Properties: []string{"Heavy", "Two-Handed"},
		}, nil)
	s.mockWeapons.EXPECT().
		GetWeapon(s.ctx, "javelin").
		Return(&external.WeaponData{
			ID:         "javelin",
			Name:       "Javelin",
			Range:      "Melee",
			DamageDice: "1d6",
			DamageType: "piercing",
			Properties: []string{"Thrown"},
		}, nil)

	out, err := s.provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{ID: "orc"})
	s.Require().NoError(err)

	// Javelin is already an explicit action and keeps its catalog values
	s.Require().Len(out.StatBlock.Actions, 2)
	s.Equal("Javelin", out.StatBlock.Actions[0].Name)
	s.Nil(out.StatBlock.Actions[0].Range)

	greataxe, ok := out.StatBlock.FindAction("Greataxe")
	s.Require().True(ok)
	s.Equal(5, *greataxe.AttackBonus)
	s.Equal(miniature.DamageRoll{
		DiceCount:  1,
		DiceSize:   12,
		Modifier:   3,
		DamageType: miniature.DamageTypeSlashing,
	}, *greataxe.Damage)
}

func (s *ProviderTestSuite) TestGetStatBlockDoesNotMutateCatalog() {
	s.mockWeapons.EXPECT().
		GetWeapon(gomock.Any(), "greataxe").
		Return(&external.WeaponData{ID: "greataxe", Name: "Greataxe", Range: "Melee", DamageDice: "1d12"}, nil)
	s.mockWeapons.EXPECT().
		GetWeapon(gomock.Any(), "javelin").
		Return(&external.WeaponData{ID: "javelin", Name: "Javelin", Range: "Melee", DamageDice: "1d6"}, nil)

	_, err := s.provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{ID: "orc"})
	s.Require().NoError(err)

	stored, ok := s.catalog.Get("orc")
	s.Require().True(ok)
	s.Len(stored.Actions, 1)
}

func (s *ProviderTestSuite) TestGetStatBlockWeaponError() {
	s.mockWeapons.EXPECT().
		GetWeapon(s.ctx, "greataxe").
		Return(nil, internalerrors.Unavailable("srd api down"))

	_, err := s.provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{ID: "orc"})
	s.Require().Error(err)
	s.True(internalerrors.IsUnavailable(err))
	s.Contains(err.Error(), "failed to resolve weapon greataxe")
}

func (s *ProviderTestSuite) TestGetStatBlockWithoutWeaponClient() {
	provider, err := statblock.NewProvider(&statblock.Config{Catalog: s.catalog})
	s.Require().NoError(err)

	out, err := provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{ID: "orc"})
	s.Require().NoError(err)
	s.Len(out.StatBlock.Actions, 1)
}

func (s *ProviderTestSuite) TestGetStatBlockNotFound() {
	_, err := s.provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{ID: "beholder"})
	s.True(internalerrors.IsNotFound(err))
	s.Equal("beholder", internalerrors.GetMeta(err)["stat_block_id"])
}

func (s *ProviderTestSuite) TestGetStatBlockMissingID() {
	_, err := s.provider.GetStatBlock(s.ctx, &statblock.GetStatBlockInput{})
	s.True(internalerrors.IsInvalidArgument(err))
}

func (s *ProviderTestSuite) TestListStatBlocks() {
	testCases := []struct {
		name  string
		input *statblock.ListStatBlocksInput
		want  []string
	}{
		{name: "all", input: nil, want: []string{"dragon", "orc", "wolf"}},
		{name: "by rarity", input: &statblock.ListStatBlocksInput{Rarity: miniature.RarityEpic}, want: []string{"dragon"}},
		{name: "by type", input: &statblock.ListStatBlocksInput{Type: miniature.CreatureTypeHumanoid}, want: []string{"orc"}},
		{name: "no match", input: &statblock.ListStatBlocksInput{Rarity: miniature.RarityLegendary}, want: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.provider.ListStatBlocks(s.ctx, tc.input)
			s.Require().NoError(err)

			var ids []string
			for _, sb := range out.StatBlocks {
				ids = append(ids, sb.ID)
			}
			s.Equal(tc.want, ids)
		})
	}
}

func TestParseCatalogErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "miniatures: ["},
		{name: "missing id", yaml: "miniatures:\n  - name: Nobody\n"},
		{name: "duplicate id", yaml: "miniatures:\n  - {id: a, name: A, stats: {hit_points: 1, abilities: {strength: 10, dexterity: 10, constitution: 10, intelligence: 10, wisdom: 10, charisma: 10}}}\n  - {id: a, name: B, stats: {hit_points: 1, abilities: {strength: 10, dexterity: 10, constitution: 10, intelligence: 10, wisdom: 10, charisma: 10}}}\n"},
		{name: "invalid stat block", yaml: "miniatures:\n  - {id: a, name: A, stats: {hit_points: 0}}\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := statblock.LoadCatalog(strings.NewReader(tc.yaml))
			require.Error(t, err)
			assert.True(t, internalerrors.IsInvalidArgument(err))
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := statblock.DefaultCatalog()
	require.NoError(t, err)

	for _, id := range []string{"knight", "goblin", "orc", "young-red-dragon"} {
		_, ok := catalog.Get(id)
		assert.True(t, ok, "default catalog missing %s", id)
	}
}
