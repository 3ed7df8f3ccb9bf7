package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/redis"
	selectionsession "github.com/KirkDiggler/configurator-api/internal/repositories/selection_session"
)

var (
	repairRedisAddr string
	repairYes       bool
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Find and delete catalog and session entries that no longer decode",
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().StringVar(&repairRedisAddr, "redis-addr", "localhost:6379", "Redis address")
	repairCmd.Flags().BoolVar(&repairYes, "yes", false, "Delete without asking for confirmation")
}

// keyCheck decodes the value stored under keys matching pattern
type keyCheck struct {
	pattern string
	check   func(data []byte) error
}

var keyChecks = []keyCheck{
	{pattern: "catalog:product:*", check: func(data []byte) error {
		var p catalog.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		return p.Validate()
	}},
	{pattern: "catalog:rules:*", check: func(data []byte) error {
		var r catalog.Rules
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		return r.Validate()
	}},
	{pattern: "selection_session:*", check: func(data []byte) error {
		var s selectionsession.Session
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s.ID == "" || s.ProductID == "" {
			return fmt.Errorf("session is missing its id or product")
		}
		return nil
	}},
}

// corruptEntry is a key whose value failed its check
type corruptEntry struct {
	Key    string
	Reason string
}

// findCorrupted scans every checked key pattern and returns the entries that
// fail to decode, along with how many keys were examined
func findCorrupted(ctx context.Context, client redis.Client) ([]corruptEntry, int, error) {
	var corrupted []corruptEntry
	checked := 0

	for _, kc := range keyChecks {
		iter := client.Scan(ctx, 0, kc.pattern, 0).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			checked++

			data, err := client.Get(ctx, key).Bytes()
			if err != nil {
				if err == redis.Nil {
					// expired between scan and read
					continue
				}
				return nil, checked, fmt.Errorf("failed to read %s: %w", key, err)
			}

			if err := kc.check(data); err != nil {
				corrupted = append(corrupted, corruptEntry{Key: key, Reason: err.Error()})
			}
		}
		if err := iter.Err(); err != nil {
			return nil, checked, fmt.Errorf("failed to scan %s: %w", kc.pattern, err)
		}
	}

	return corrupted, checked, nil
}

func runRepair(cmd *cobra.Command, _ []string) error {
	client, err := redis.NewClient(repairRedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	if err := redis.Ping(ctx, client); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", repairRedisAddr, err)
	}

	out := cmd.OutOrStdout()
	corrupted, checked, err := findCorrupted(ctx, client)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Checked %d keys, found %d corrupted entries\n", checked, len(corrupted))
	if len(corrupted) == 0 {
		return nil
	}
	for _, c := range corrupted {
		fmt.Fprintf(out, "  - %s: %s\n", c.Key, c.Reason)
	}

	if !repairYes && !confirm(cmd.InOrStdin(), out) {
		fmt.Fprintln(out, "Aborted - no changes made")
		return nil
	}

	keys := make([]string, 0, len(corrupted))
	for _, c := range corrupted {
		keys = append(keys, c.Key)
	}
	deleted, err := client.Del(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("failed to delete corrupted entries: %w", err)
	}
	fmt.Fprintf(out, "Deleted %d entries\n", deleted)
	return nil
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Delete these entries? (yes/no): ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

