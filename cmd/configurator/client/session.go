package client

import (
	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/configurator-api/internal/handlers/configurator/v1alpha1"
)

var quoteQuantity int

var startCmd = &cobra.Command{
	Use:   "start [product-id]",
	Short: "Start a configuration session for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodStartSession, map[string]any{
			"product_id": args[0],
		})
	},
}

var setContainerCmd = &cobra.Command{
	Use:   "set-container [session-id] [container-id]",
	Short: "Choose the container of a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodSetContainer, map[string]any{
			"session_id":   args[0],
			"container_id": args[1],
		})
	},
}

var setSizeCmd = &cobra.Command{
	Use:   "set-size [session-id] [size-id]",
	Short: "Choose the size of a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodSetSize, map[string]any{
			"session_id": args[0],
			"size_id":    args[1],
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [session-id] [group-id] [option-id]",
	Short: "Toggle an option within a customization group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodToggleOption, map[string]any{
			"session_id": args[0],
			"group_id":   args[1],
			"option_id":  args[2],
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Clear every selection of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodReset, map[string]any{
			"session_id": args[0],
		})
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [session-id]",
	Short: "Show price, nutrition and validation of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodGetSnapshot, map[string]any{
			"session_id": args[0],
		})
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote [session-id]",
	Short: "Build a checkout line item from a valid session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodQuoteLineItem, map[string]any{
			"session_id": args[0],
			"quantity":   float64(quoteQuantity),
		})
	},
}

var endCmd = &cobra.Command{
	Use:   "end [session-id]",
	Short: "End a session and discard its selections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.Context(), v1alpha1.MethodEndSession, map[string]any{
			"session_id": args[0],
		})
	},
}

func init() {
	quoteCmd.Flags().IntVar(&quoteQuantity, "quantity", 1, "Line item quantity")
}
