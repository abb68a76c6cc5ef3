// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reviewlens/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load a review corpus from a YAML dump into the local database",
	Long: `Seed reads a validated YAML dump of participants, songs, and reviews
and loads it into the local SQLite database. Re-seeding with the same
file replaces matching rows, so the command is safe to repeat.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := projectConfig(cmd)

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.Seed(context.Background(), args[0], os.Stdout); err != nil {
		return fmt.Errorf("seeding from %s: %w", args[0], err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
