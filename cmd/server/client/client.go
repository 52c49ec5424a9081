// Package client provides commands that call a running miniature battle server
package client

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
	"github.com/KirkDiggler/miniature-battle/internal/handlers/battle/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	jsonOutput bool
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the battle service",
	Long:  `Client commands drive battles on a running server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON responses")

	// Battle lifecycle
	ClientCmd.AddCommand(startCmd)
	ClientCmd.AddCommand(showCmd)
	ClientCmd.AddCommand(actionsCmd)
	ClientCmd.AddCommand(actCmd)
	ClientCmd.AddCommand(aiTurnCmd)
	ClientCmd.AddCommand(logCmd)

	// Battle control
	ClientCmd.AddCommand(pauseCmd)
	ClientCmd.AddCommand(resumeCmd)
	ClientCmd.AddCommand(abortCmd)
	ClientCmd.AddCommand(tickCmd)
	ClientCmd.AddCommand(healCmd)
	ClientCmd.AddCommand(hazardCmd)
	ClientCmd.AddCommand(resetCmd)

	// History
	ClientCmd.AddCommand(historyCmd)
	ClientCmd.AddCommand(recordCmd)
	ClientCmd.AddCommand(statsCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createBattleClient creates a battle service client
func createBattleClient() (v1alpha1.BattleServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewBattleServiceClient(conn), cleanup, nil
}

// call invokes one method with a JSON-shaped request
func call(method string, fields map[string]any) (*structpb.Struct, error) {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return nil, describeError(method, err)
	}
	return resp, nil
}

// describeError restores the server's error details and lists per-field
// validation messages
func describeError(method string, err error) error {
	err = errors.FromGRPCError(err)
	fields := errors.ValidationErrors(err)
	if len(fields) == 0 {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	var b strings.Builder
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(&b, "\n  %s: %s", field, strings.Join(fields[field], ", "))
	}
	return fmt.Errorf("%s rejected the request:%s", method, b.String())
}

// printRaw prints the response as indented JSON
func printRaw(resp *structpb.Struct) error {
	marshaler := protojson.MarshalOptions{
		Indent:          "  ",
		EmitUnpopulated: false,
	}
	jsonBytes, err := marshaler.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response to JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
