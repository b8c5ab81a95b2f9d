package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"item-matcher/core/config"
	"item-matcher/core/database"
	"item-matcher/core/logger"
	"item-matcher/feature/pool"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncNamespace string
	syncFile      string
)

// syncCmd replaces a namespace's pool from a token file, one token per line.
// This is the operator-side equivalent of PUT /namespaces/:ns/items.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync a namespace's item pool from a token file",
	Long: `Sync makes a namespace's live token set equal the contents of a file
(one token per line, blank lines and #-comments ignored). Only the
difference is applied: new tokens are inserted, missing ones tombstoned.

Examples:
  # Replace the pool of team-a with the tokens in pool.txt
  item-matcher sync --namespace team-a --file pool.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncNamespace == "" || syncFile == "" {
			return fmt.Errorf("--namespace and --file are required")
		}

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		tokens, err := readTokenFile(syncFile)
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		svc := pool.NewService(db, logg)
		if err := svc.Store().Migrate(); err != nil {
			return err
		}

		summary, err := svc.SyncSet(context.Background(), syncNamespace, tokens)
		if err != nil {
			return err
		}

		logg.Info("Sync complete",
			zap.String("namespace", syncNamespace),
			zap.Int("desired", len(tokens)),
			zap.String("result", summary.Message()),
		)
		return nil
	},
}

// readTokenFile reads one token per line, skipping blanks and comments.
func readTokenFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	return tokens, nil
}

func init() {
	syncCmd.Flags().StringVar(&syncNamespace, "namespace", "", "Namespace whose pool to sync")
	syncCmd.Flags().StringVar(&syncFile, "file", "", "Path to the token file (one token per line)")
	RootCmd.AddCommand(syncCmd)
}
