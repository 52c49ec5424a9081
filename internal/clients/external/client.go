// Package external is the location for the dnd5e-api client
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/miniature-battle/internal/clients/external Client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// Client defines the interface for external API interactions
type Client interface {
	// GetWeapon fetches a single SRD weapon by its equipment key
	GetWeapon(ctx context.Context, key string) (*WeaponData, error)

	// ListWeapons fetches every weapon in an SRD equipment category
	// (e.g. "simple-melee-weapons", "martial-weapons")
	ListWeapons(ctx context.Context, category string) ([]*WeaponData, error)
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.HTTPTimeout < 0 {
		return errors.InvalidArgument("http timeout cannot be negative")
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e API client: %w", err)
	}

	// SRD data never changes between releases, so cache aggressively
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
	}, nil
}

func (c *client) GetWeapon(_ context.Context, key string) (*WeaponData, error) {
	if key == "" {
		return nil, errors.InvalidArgument("weapon key is required")
	}
	apiKey := toAPIFormat(key)

	slog.Debug("Calling D&D 5e API to get weapon", "weapon", key, "api", apiKey)
	item, err := c.dnd5eClient.GetEquipment(apiKey)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get weapon %s", key).
			WithMeta("weapon", apiKey)
	}

	weapon, ok := convertWeapon(item)
	if !ok {
		return nil, errors.InvalidArgumentf("equipment %s is not a weapon", key).
			WithMeta("weapon", apiKey)
	}
	return weapon, nil
}

func (c *client) ListWeapons(_ context.Context, category string) ([]*WeaponData, error) {
	if category == "" {
		return nil, errors.InvalidArgument("equipment category is required")
	}

	equipmentCategory, err := c.dnd5eClient.GetEquipmentCategory(category)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to get equipment category %s", category)
	}
	if equipmentCategory == nil {
		return nil, errors.NotFoundf("equipment category %s not found", category)
	}

	return c.loadWeapons(equipmentCategory.Equipment)
}

// loadWeapons loads full details for a list of reference items concurrently.
// Entries that resolve to non-weapon equipment are dropped.
func (c *client) loadWeapons(refs []*entities.ReferenceItem) ([]*WeaponData, error) {
	slog.Debug("Loading weapon details concurrently", "count", len(refs))
	loaded := make([]*WeaponData, len(refs))
	errChan := make(chan error, len(refs))
	var wg sync.WaitGroup

	for i, ref := range refs {
		if ref == nil {
			continue
		}
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()

			// Cached after the first call
			item, err := c.dnd5eClient.GetEquipment(key)
			if err != nil {
				slog.Error("Failed to get weapon details", "weapon", key, "error", err)
				errChan <- fmt.Errorf("failed to get equipment %s: %w", key, err)
				return
			}

			if weapon, ok := convertWeapon(item); ok {
				loaded[idx] = weapon
			}
		}(i, ref.Key)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load weapons")
		}
	}

	weapons := make([]*WeaponData, 0, len(loaded))
	for _, weapon := range loaded {
		if weapon != nil {
			weapons = append(weapons, weapon)
		}
	}
	return weapons, nil
}

// convertWeapon converts dnd5e-api equipment into our weapon format
func convertWeapon(equipment dnd5e.EquipmentInterface) (*WeaponData, bool) {
	eq, ok := equipment.(*entities.Weapon)
	if !ok || eq == nil {
		return nil, false
	}

	weapon := &WeaponData{
		ID:       eq.Key,
		Name:     eq.Name,
		Category: eq.WeaponCategory,
		Range:    eq.WeaponRange,
	}
	if eq.EquipmentCategory != nil {
		weapon.EquipmentCategory = eq.EquipmentCategory.Key
	}
	if eq.Damage != nil {
		weapon.DamageDice = eq.Damage.DamageDice
		if eq.Damage.DamageType != nil {
			weapon.DamageType = strings.ToLower(eq.Damage.DamageType.Name)
		}
	}
	for _, prop := range eq.Properties {
		if prop != nil {
			weapon.Properties = append(weapon.Properties, prop.Name)
		}
	}
	return weapon, true
}

// toAPIFormat normalizes a weapon key to the API's slug format
// e.g., "Light_Crossbow" -> "light-crossbow"
func toAPIFormat(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "_", "-"))
}
