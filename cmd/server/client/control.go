package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/miniature-battle/internal/handlers/battle/v1alpha1"
)

var forfeitID string

var pauseCmd = &cobra.Command{
	Use:   "pause [battle-id]",
	Short: "Pause an active battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodPauseBattle, map[string]any{"battle_id": args[0]})
		if err != nil {
			return err
		}
		return printBattleResponse(resp)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume [battle-id]",
	Short: "Resume a paused battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodResumeBattle, map[string]any{"battle_id": args[0]})
		if err != nil {
			return err
		}
		return printBattleResponse(resp)
	},
}

var abortCmd = &cobra.Command{
	Use:   "abort [battle-id]",
	Short: "End a battle early, optionally by forfeit",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodAbortBattle, map[string]any{
			"battle_id":                 args[0],
			"forfeiting_participant_id": forfeitID,
		})
		if err != nil {
			return err
		}
		return printBattleResponse(resp)
	},
}

var tickCmd = &cobra.Command{
	Use:   "tick [battle-id] [seconds]",
	Short: "Count down the turn timer",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		elapsed, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[1], err)
		}

		resp, err := call(v1alpha1.MethodTickTimer, map[string]any{
			"battle_id": args[0],
			"elapsed":   elapsed,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		if resp.Fields["expired"].GetBoolValue() {
			fmt.Println("⏰ Turn timer expired")
			printResult(resp.Fields["result"].GetStructValue())
		}
		printBattle(resp.Fields["battle"].GetStructValue())
		return nil
	},
}

var healCmd = &cobra.Command{
	Use:   "heal [battle-id] [participant-id] [amount]",
	Short: "Restore hit points to a participant",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[2], err)
		}

		resp, err := call(v1alpha1.MethodApplyHealing, map[string]any{
			"battle_id":      args[0],
			"participant_id": args[1],
			"amount":         amount,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		fmt.Printf("💚 Healed %d\n", num(resp, "healed"))
		printBattle(resp.Fields["battle"].GetStructValue())
		return nil
	},
}

var hazardCmd = &cobra.Command{
	Use:   "hazard [battle-id] [amount] [damage-type] [participant-id...]",
	Short: "Deal the same damage to several participants",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(_ *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}

		targets := make([]any, 0, len(args)-3)
		for _, id := range args[3:] {
			targets = append(targets, id)
		}

		resp, err := call(v1alpha1.MethodApplyAreaDamage, map[string]any{
			"battle_id":       args[0],
			"amount":          amount,
			"damage_type":     args[2],
			"participant_ids": targets,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		fmt.Printf("🔥 %d %s damage to %d participants\n", amount, args[2], len(targets))
		printBattle(resp.Fields["battle"].GetStructValue())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [battle-id]",
	Short: "Discard a battle; archived history is kept",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if _, err := call(v1alpha1.MethodResetBattle, map[string]any{"battle_id": args[0]}); err != nil {
			return err
		}
		fmt.Printf("Battle %s reset\n", args[0])
		return nil
	},
}

func init() {
	abortCmd.Flags().StringVar(&forfeitID, "forfeit", "", "Participant id that forfeits")
}
