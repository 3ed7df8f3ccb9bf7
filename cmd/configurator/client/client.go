// Package client provides commands that call a running configurator server
package client

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	v1alpha1 "github.com/KirkDiggler/configurator-api/internal/handlers/configurator/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running configurator server",
	Long:  `Client commands make real gRPC requests against a configurator server and print the JSON response.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(startCmd)
	ClientCmd.AddCommand(setContainerCmd)
	ClientCmd.AddCommand(setSizeCmd)
	ClientCmd.AddCommand(toggleCmd)
	ClientCmd.AddCommand(resetCmd)
	ClientCmd.AddCommand(snapshotCmd)
	ClientCmd.AddCommand(quoteCmd)
	ClientCmd.AddCommand(endCmd)
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

// call invokes one configurator method with fields as the request body and
// prints the response
func call(ctx context.Context, method string, fields map[string]any) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Failed to close connection: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp := &structpb.Struct{}
	if err := conn.Invoke(ctx, v1alpha1.FullMethod(method), req, resp); err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	marshaler := protojson.MarshalOptions{Indent: "  "}
	out, err := marshaler.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
