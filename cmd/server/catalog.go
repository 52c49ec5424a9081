package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/miniature-battle/internal/config"
	"github.com/KirkDiggler/miniature-battle/internal/entities/miniature"
	"github.com/KirkDiggler/miniature-battle/internal/services/statblock"
)

var (
	catalogRarity string
	catalogType   string
	catalogSRD    bool
	catalogFile   string
	catalogJSON   bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [stat-block-id]",
	Short: "List catalog miniatures or show one stat block",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogRarity, "rarity", "", "Filter by rarity")
	catalogCmd.Flags().StringVar(&catalogType, "type", "", "Filter by creature type")
	catalogCmd.Flags().BoolVar(&catalogSRD, "srd", false, "Resolve weapons through the D&D 5e API")
	catalogCmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a miniature catalog YAML file")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Output as JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.SRDEnabled = catalogSRD
	if catalogFile != "" {
		cfg.CatalogPath = catalogFile
	}

	provider, err := newStatBlockProvider(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		out, err := provider.GetStatBlock(ctx, &statblock.GetStatBlockInput{ID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get stat block: %w", err)
		}
		if catalogJSON {
			return printJSON(out.StatBlock)
		}
		printStatBlock(out.StatBlock)
		return nil
	}

	out, err := provider.ListStatBlocks(ctx, &statblock.ListStatBlocksInput{
		Rarity: miniature.Rarity(catalogRarity),
		Type:   miniature.CreatureType(catalogType),
	})
	if err != nil {
		return fmt.Errorf("failed to list stat blocks: %w", err)
	}
	if catalogJSON {
		return printJSON(out.StatBlocks)
	}

	fmt.Printf("Found %d miniatures:\n\n", len(out.StatBlocks))
	for _, sb := range out.StatBlocks {
		fmt.Printf("  %-18s %-22s CR %-5g %-10s %s\n", sb.ID, sb.Name, sb.ChallengeRating, sb.Rarity, sb.Type)
	}
	return nil
}

func printStatBlock(sb *miniature.StatBlock) {
	fmt.Printf("%s (ID: %s)\n", sb.Name, sb.ID)
	fmt.Printf("  %s %s, %s, CR %g\n", sb.Size, sb.Type, sb.Rarity, sb.ChallengeRating)
	fmt.Printf("  AC %d, HP %d, speed %d ft\n", sb.Stats.ArmorClass, sb.Stats.HitPoints, sb.Stats.Speed.Walk)

	a := sb.Stats.Abilities
	fmt.Printf("  STR %d DEX %d CON %d INT %d WIS %d CHA %d\n",
		a.Strength, a.Dexterity, a.Constitution, a.Intelligence, a.Wisdom, a.Charisma)

	fmt.Printf("\nActions:\n")
	for _, action := range sb.Actions {
		var parts []string
		if action.AttackBonus != nil {
			parts = append(parts, fmt.Sprintf("%+d to hit", *action.AttackBonus))
		}
		if action.SaveDC != nil {
			parts = append(parts, fmt.Sprintf("DC %d %s save", *action.SaveDC, action.SaveAbility))
		}
		if d := action.Damage; d != nil {
			parts = append(parts, fmt.Sprintf("%dd%d%+d %s", d.DiceCount, d.DiceSize, d.Modifier, d.DamageType))
		}
		if action.Range != nil {
			parts = append(parts, fmt.Sprintf("range %d ft", *action.Range))
		}
		if action.Recharge != "" {
			parts = append(parts, "recharge "+action.Recharge)
		}
		if action.Uses != nil {
			parts = append(parts, fmt.Sprintf("%d uses", *action.Uses))
		}
		fmt.Printf("  - %s: %s\n", action.Name, strings.Join(parts, ", "))
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
