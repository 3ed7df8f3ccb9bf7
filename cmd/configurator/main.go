// Package main is the entry point for the configurator gRPC server and tools
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/configurator-api/cmd/configurator/client"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "configurator",
	Short: "Product configurator gRPC server",
	Long: `Configurator prices and validates customizable products: containers, sizes
and option groups with selection limits.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
