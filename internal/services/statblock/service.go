// Package statblock serves miniature stat blocks from the catalog, expanding
// SRD weapon references into attack actions.
package statblock

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/miniature-battle/internal/clients/external"
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

//go:generate mockgen -destination=mock/mock_provider.go -package=statblockmock github.com/KirkDiggler/miniature-battle/internal/services/statblock Provider

// Provider supplies stat blocks for battles
type Provider interface {
	GetStatBlock(ctx context.Context, input *GetStatBlockInput) (*GetStatBlockOutput, error)
	ListStatBlocks(ctx context.Context, input *ListStatBlocksInput) (*ListStatBlocksOutput, error)
}

// GetStatBlockInput identifies a catalog entry
type GetStatBlockInput struct {
	ID string
}

// GetStatBlockOutput carries a battle-ready stat block
type GetStatBlockOutput struct {
	StatBlock *miniature.StatBlock
}

// ListStatBlocksInput filters the catalog. Empty fields match everything.
type ListStatBlocksInput struct {
	Rarity miniature.Rarity
	Type   miniature.CreatureType
}

// ListStatBlocksOutput lists catalog entries as stored, without weapon expansion
type ListStatBlocksOutput struct {
	StatBlocks []*miniature.StatBlock
}

// Config configures the catalog provider
type Config struct {
	Catalog *Catalog
	// Weapons resolves SRD weapon keys. Optional: without it entries that
	// reference weapons are served with their explicit actions only.
	Weapons external.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type provider struct {
	catalog *Catalog
	weapons external.Client
}

// NewProvider creates a catalog backed provider
func NewProvider(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &provider{
		catalog: cfg.Catalog,
		weapons: cfg.Weapons,
	}, nil
}

func (p *provider) GetStatBlock(ctx context.Context, input *GetStatBlockInput) (*GetStatBlockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("stat block id is required")
	}

	sb, ok := p.catalog.Get(input.ID)
	if !ok {
		return nil, errors.NotFoundf("stat block %s not found", input.ID).
			WithMeta("stat_block_id", input.ID)
	}

	if err := p.expandWeapons(ctx, sb); err != nil {
		return nil, err
	}

	if err := sb.Validate(); err != nil {
		return nil, errors.Wrapf(err, "stat block %s", sb.ID)
	}

	return &GetStatBlockOutput{StatBlock: sb}, nil
}

func (p *provider) ListStatBlocks(_ context.Context, input *ListStatBlocksInput) (*ListStatBlocksOutput, error) {
	if input == nil {
		input = &ListStatBlocksInput{}
	}

	var out []*miniature.StatBlock
	for _, sb := range p.catalog.All() {
		if input.Rarity != "" && sb.Rarity != input.Rarity {
			continue
		}
		if input.Type != "" && sb.Type != input.Type {
			continue
		}
		out = append(out, sb)
	}

	return &ListStatBlocksOutput{StatBlocks: out}, nil
}

// expandWeapons appends one attack per weapon key. A weapon whose name
// collides with an explicit action is skipped.
func (p *provider) expandWeapons(ctx context.Context, sb *miniature.StatBlock) error {
	if len(sb.Weapons) == 0 {
		return nil
	}
	if p.weapons == nil {
		slog.Warn("No weapon client configured, serving explicit actions only",
			"stat_block_id", sb.ID,
			"weapons", sb.Weapons)
		return nil
	}

	proficiency := miniature.ProficiencyBonus(sb.ChallengeRating)
	for _, key := range sb.Weapons {
		weapon, err := p.weapons.GetWeapon(ctx, key)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve weapon %s for %s", key, sb.ID)
		}

		action, err := weapon.Action(sb.Stats.Abilities, proficiency)
		if err != nil {
			return errors.Wrapf(err, "failed to build action for %s", sb.ID)
		}

		if _, exists := sb.FindAction(action.Name); exists {
			slog.Debug("Weapon shadowed by explicit action",
				"stat_block_id", sb.ID,
				"weapon", key)
			continue
		}
		sb.Actions = append(sb.Actions, *action)
	}

	return nil
}
