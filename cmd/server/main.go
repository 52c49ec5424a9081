// Package main is the entry point for the miniature battle server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/miniature-battle/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "miniature-battle",
	Short: "Miniature battle gRPC server",
	Long: `Miniature battle runs turn-based battles between collectible miniatures ` +
		`and serves them over gRPC. It can also simulate AI battles locally.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
