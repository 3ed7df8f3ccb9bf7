package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/render"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/orchestrators/configurator"
	"github.com/KirkDiggler/configurator-api/internal/pkg/clock"
	rulesrepo "github.com/KirkDiggler/configurator-api/internal/repositories/rules"
	"github.com/KirkDiggler/configurator-api/internal/services/rules"
)

var (
	quoteFile      string
	quoteProduct   string
	quoteContainer string
	quoteSize      string
	quotePicks     []string
	quoteQuantity  int
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a configuration offline from a catalog file",
	Long: `Quote applies a container, a size and option picks to a product from a
catalog file and prints the snapshot, the rendered view and, when the
configuration is valid, the line item.`,
	Example: `  configurator quote --file catalog.yaml --product sundae --container cup \
    --pick flavors=vanilla --pick flavors=mango --quantity 2`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteFile, "file", "catalog.yaml", "Catalog file to read")
	quoteCmd.Flags().StringVar(&quoteProduct, "product", "", "Product ID to configure")
	quoteCmd.Flags().StringVar(&quoteContainer, "container", "", "Container ID")
	quoteCmd.Flags().StringVar(&quoteSize, "size", "", "Size ID")
	quoteCmd.Flags().StringArrayVar(&quotePicks, "pick", nil, "Option to toggle as group=option, repeatable")
	quoteCmd.Flags().IntVar(&quoteQuantity, "quantity", 1, "Line item quantity")
	_ = quoteCmd.MarkFlagRequired("product")
}

type pick struct {
	GroupID  string
	OptionID string
}

type quoteOutput struct {
	Snapshot *engine.Snapshot       `json:"snapshot"`
	View     render.View            `json:"view"`
	Outcomes map[string]string      `json:"outcomes,omitempty"`
	LineItem *configurator.LineItem `json:"line_item,omitempty"`
}

func parsePicks(raw []string) ([]pick, error) {
	picks := make([]pick, 0, len(raw))
	for _, r := range raw {
		group, option, ok := strings.Cut(r, "=")
		group, option = strings.TrimSpace(group), strings.TrimSpace(option)
		if !ok || group == "" || option == "" {
			return nil, errors.InvalidArgumentf("invalid pick %q, expected group=option", r)
		}
		picks = append(picks, pick{GroupID: group, OptionID: option})
	}
	return picks, nil
}

func runQuote(cmd *cobra.Command, _ []string) error {
	picks, err := parsePicks(quotePicks)
	if err != nil {
		return err
	}

	file, err := rulesrepo.LoadCatalogFile(quoteFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	repo := rulesrepo.NewInMemory()
	if _, err := rulesrepo.Seed(ctx, repo, file); err != nil {
		return err
	}

	rulesService, err := rules.New(&rules.Config{
		Repository: repo,
		Clock:      clock.New(),
	})
	if err != nil {
		return err
	}

	product, err := rulesService.Product(ctx, quoteProduct)
	if err != nil {
		return err
	}

	session, err := configurator.NewSession(&configurator.SessionConfig{Rules: rulesService})
	if err != nil {
		return err
	}
	if err := session.Load(ctx, *product); err != nil {
		return err
	}

	if quoteContainer != "" {
		session.SetContainer(quoteContainer)
	}
	if quoteSize != "" {
		session.SetSize(quoteSize)
	}

	outcomes := make(map[string]string, len(picks))
	for _, p := range picks {
		outcome := session.ToggleOption(p.GroupID, p.OptionID)
		if outcome != selection.OutcomeAdded {
			outcomes[p.GroupID+"="+p.OptionID] = string(outcome)
		}
	}

	snap := session.Snapshot()
	out := quoteOutput{
		Snapshot: snap,
		View:     render.Snapshot(snap),
		Outcomes: outcomes,
	}
	if snap.Validation.IsValid {
		item, err := session.LineItem(quoteQuantity)
		if err != nil {
			return err
		}
		out.LineItem = item
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	return nil
}
