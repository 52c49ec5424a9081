package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/miniature-battle/internal/handlers/battle/v1alpha1"
)

var (
	battleType string
	turnTimer  int
	playerIDs  []string
	ownerID    string
	logLimit   int
)

var startCmd = &cobra.Command{
	Use:   "start [stat-block-id] [stat-block-id...]",
	Short: "Start a battle and roll initiative",
	Long: `Start a battle between catalog miniatures. Miniatures listed with --player ` +
		`are player controlled and owned by --owner; the rest are AI controlled.`,
	Example: `  miniature-battle client start knight goblin --player knight --owner user-1`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runStart,
}

var showCmd = &cobra.Command{
	Use:   "show [battle-id]",
	Short: "Show the current state of a battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetBattle, map[string]any{"battle_id": args[0]})
		if err != nil {
			return err
		}
		return printBattleResponse(resp)
	},
}

var actionsCmd = &cobra.Command{
	Use:   "actions [battle-id]",
	Short: "List the actions available to the active participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetAvailableActions, map[string]any{"battle_id": args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		fmt.Printf("Actions for %s:\n", str(resp, "participant_id"))
		for _, v := range resp.Fields["actions"].GetListValue().GetValues() {
			action := v.GetStructValue()
			fmt.Printf("  - %s\n", str(action, "name"))
		}
		return nil
	},
}

var actCmd = &cobra.Command{
	Use:   "act [battle-id] [action] [target-id]",
	Short: "Select and resolve an action for the active participant",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		battleID := args[0]
		if _, err := call(v1alpha1.MethodSelectAction, map[string]any{
			"battle_id":   battleID,
			"action_name": args[1],
			"target_id":   args[2],
		}); err != nil {
			return err
		}

		resp, err := call(v1alpha1.MethodResolveSelectedAction, map[string]any{"battle_id": battleID})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		printResult(resp.Fields["result"].GetStructValue())
		printBattle(resp.Fields["battle"].GetStructValue())
		return nil
	},
}

var aiTurnCmd = &cobra.Command{
	Use:   "ai-turn [battle-id]",
	Short: "Let the AI act for the active enemy participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodTakeAITurn, map[string]any{"battle_id": args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		fmt.Printf("AI used %s on %s\n", str(resp, "action_name"), str(resp, "target_id"))
		printResult(resp.Fields["result"].GetStructValue())
		printBattle(resp.Fields["battle"].GetStructValue())
		return nil
	},
}

var logCmd = &cobra.Command{
	Use:   "log [battle-id]",
	Short: "Print the battle log",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetBattleLog, map[string]any{
			"battle_id": args[0],
			"limit":     logLimit,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		for _, v := range resp.Fields["entries"].GetListValue().GetValues() {
			entry := v.GetStructValue()
			line := str(entry, "message")
			if line == "" {
				line = strings.TrimSpace(fmt.Sprintf("%s %s %s", str(entry, "attacker"), str(entry, "action"), str(entry, "target")))
			}
			fmt.Printf("[%s] %s\n", str(entry, "type"), line)
		}
		return nil
	},
}

func init() {
	startCmd.Flags().StringVar(&battleType, "type", "standard", "Battle type (standard, tournament, practice, ranked)")
	startCmd.Flags().IntVar(&turnTimer, "timer", 0, "Turn timer in seconds (0 uses the server default)")
	startCmd.Flags().StringSliceVar(&playerIDs, "player", nil, "Stat block ids controlled by the player")
	startCmd.Flags().StringVar(&ownerID, "owner", "", "Owner id recorded for player miniatures")

	logCmd.Flags().IntVar(&logLimit, "limit", 0, "Only print the most recent entries")
}

func runStart(_ *cobra.Command, args []string) error {
	players := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		players[id] = true
	}

	combatants := make([]any, 0, len(args))
	for _, id := range args {
		combatant := map[string]any{"stat_block_id": id}
		if players[id] {
			combatant["is_player"] = true
			if ownerID != "" {
				combatant["owner_id"] = ownerID
			}
		}
		combatants = append(combatants, combatant)
	}

	initResp, err := call(v1alpha1.MethodInitializeBattle, map[string]any{
		"combatants":  combatants,
		"battle_type": battleType,
		"turn_timer":  turnTimer,
	})
	if err != nil {
		return err
	}

	battleID := str(initResp, "battle_id")
	resp, err := call(v1alpha1.MethodRollInitiative, map[string]any{"battle_id": battleID})
	if err != nil {
		return err
	}
	return printBattleResponse(resp)
}

func printBattleResponse(resp *structpb.Struct) error {
	if jsonOutput {
		return printRaw(resp)
	}
	printBattle(resp.Fields["battle"].GetStructValue())
	return nil
}

func printBattle(battle *structpb.Struct) {
	if battle == nil {
		return
	}

	fmt.Printf("⚔️  Battle %s (%s)\n", str(battle, "id"), str(battle, "battle_type"))
	fmt.Printf("  State: %s, round %d\n", str(battle, "state"), num(battle, "round"))
	if active := str(battle, "active_participant_id"); active != "" {
		turn := "enemy"
		if battle.Fields["is_player_turn"].GetBoolValue() {
			turn = "player"
		}
		fmt.Printf("  Active: %s (%s turn, %ds left)\n", active, turn, num(battle, "turn_timer"))
	}
	if winner := str(battle, "winner_id"); winner != "" {
		fmt.Printf("  Winner: %s by %s\n", winner, str(battle, "end_reason"))
	} else if reason := str(battle, "end_reason"); reason != "" {
		fmt.Printf("  Ended: %s\n", reason)
	}

	fmt.Printf("\nParticipants:\n")
	for _, v := range battle.Fields["participants"].GetListValue().GetValues() {
		p := v.GetStructValue()
		marker := " "
		if !p.Fields["alive"].GetBoolValue() {
			marker = "✗"
		}
		fmt.Printf("  %s %-10s %-22s %3d/%-3d HP  init %d\n",
			marker, str(p, "id"), str(p, "name"), num(p, "current_hp"), num(p, "max_hp"), num(p, "initiative"))
	}
}

func printResult(result *structpb.Struct) {
	if result == nil {
		return
	}
	switch str(result, "kind") {
	case "attack":
		if !result.Fields["hit"].GetBoolValue() {
			fmt.Printf("Miss (rolled %d, total %d)\n", num(result, "roll"), num(result, "total"))
			return
		}
		crit := ""
		if result.Fields["critical"].GetBoolValue() {
			crit = "Critical "
		}
		fmt.Printf("%sHit for %d %s damage\n", crit, num(result, "damage"), str(result, "damage_type"))
	case "save":
		outcome := "failed"
		if result.Fields["saved"].GetBoolValue() {
			outcome = "succeeded"
		}
		fmt.Printf("Save %s, %d %s damage\n", outcome, num(result, "damage"), str(result, "damage_type"))
	default:
		fmt.Printf("%d damage\n", num(result, "damage"))
	}
	fmt.Println()
}

func str(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.Fields[key].GetStringValue()
}

func num(s *structpb.Struct, key string) int {
	if s == nil {
		return 0
	}
	return int(s.Fields[key].GetNumberValue())
}
