package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
)

var (
	askAfter  string
	askBefore string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the legal agent a question",
	Long: `Asks the legal agent a question. The agent retrieves relevant legal
documents and renders an answer; with an LLM configured the answer is
generated, otherwise it lists the retrieved documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askAfter, "after", "", "only consider documents uploaded on or after this date (YYYY-MM-DD)")
	askCmd.Flags().StringVar(&askBefore, "before", "", "only consider documents uploaded on or before this date (YYYY-MM-DD)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if legalAgent == nil {
		return errors.New("agent not configured")
	}

	var opts driving.QueryOptions
	if askAfter != "" || askBefore != "" {
		dr, err := buildDateRange(askAfter, askBefore)
		if err != nil {
			return err
		}
		opts.DateRange = dr
	}

	resp, err := legalAgent.Query(context.Background(), args[0], opts)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return fmt.Errorf("LLM backend unavailable: %w", err)
		}
		return fmt.Errorf("query failed: %w", err)
	}

	cmd.Println(resp.Answer)
	cmd.Println()
	cmd.Printf("Confidence: %.2f\n", resp.Confidence)
	if len(resp.Sources) > 0 {
		cmd.Printf("Sources: %v\n", resp.Sources)
	}
	for _, step := range resp.ReasoningTrace {
		cmd.Printf("  - %s\n", step)
	}
	return nil
}
