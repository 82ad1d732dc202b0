package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the search index",
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index from stored documents",
	Long: `Re-derives the full search index by scanning every persisted
metadata record. Use this to recover from a corrupted or lost index
snapshot.`,
	RunE: runIndexRebuild,
}

func init() {
	indexCmd.AddCommand(indexRebuildCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	if kbService == nil {
		return errors.New("knowledge base not configured")
	}

	count, err := kbService.RebuildIndex(context.Background())
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	cmd.Printf("Rebuilt index with %d documents\n", count)
	return nil
}
