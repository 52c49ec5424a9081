package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/miniature-battle/internal/handlers/battle/v1alpha1"
)

var (
	historyLimit  int
	historyOffset int
)

var historyCmd = &cobra.Command{
	Use:   "history [owner-id]",
	Short: "List an owner's archived battles, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodListHistory, map[string]any{
			"owner_id": args[0],
			"limit":    historyLimit,
			"offset":   historyOffset,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		records := resp.Fields["records"].GetListValue().GetValues()
		fmt.Printf("Showing %d of %d battles for %s:\n\n", len(records), num(resp, "total"), args[0])
		for _, v := range records {
			record := v.GetStructValue()
			winner := str(record, "winner_name")
			if winner == "" {
				winner = "no winner"
			}
			fmt.Printf("  %s  %-10s %-9s %-20s %d rounds  %s\n",
				str(record, "completed_at"), str(record, "battle_type"), str(record, "status"),
				winner, num(record, "rounds"), str(record, "id"))
		}
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record [battle-id]",
	Short: "Show one archived battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetHistory, map[string]any{"battle_id": args[0]})
		if err != nil {
			return err
		}
		return printRaw(resp)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [owner-id]",
	Short: "Show an owner's win/loss record",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodGetStats, map[string]any{"owner_id": args[0]})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printRaw(resp)
		}

		fmt.Printf("%s: %d won, %d lost, %d drawn (%d battles)\n",
			args[0], num(resp, "won"), num(resp, "lost"), num(resp, "drawn"), num(resp, "total"))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum records to return")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "Records to skip")
}
