package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/configurator-api/internal/redis"
	rulesrepo "github.com/KirkDiggler/configurator-api/internal/repositories/rules"
)

var (
	seedRedisAddr string
	seedFile      string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products and rules from a catalog file into Redis",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedRedisAddr, "redis-addr", "localhost:6379", "Redis address")
	seedCmd.Flags().StringVar(&seedFile, "file", "catalog.yaml", "Catalog file to load")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	file, err := rulesrepo.LoadCatalogFile(seedFile)
	if err != nil {
		return err
	}

	client, err := redis.NewClient(seedRedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := redis.Ping(ctx, client); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", seedRedisAddr, err)
	}

	repo, err := rulesrepo.NewRedis(&rulesrepo.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	stored, err := rulesrepo.Seed(ctx, repo, file)
	if err != nil {
		return fmt.Errorf("seeded %d of %d products: %w", stored, len(file.Products), err)
	}

	log.Printf("Seeded %d products from %s", stored, seedFile)
	return nil
}
