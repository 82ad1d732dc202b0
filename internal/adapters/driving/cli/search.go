package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

var (
	searchLimit      int
	searchDepartment string
	searchTags       []string
	searchAsOf       string
	searchAfter      string
	searchBefore     string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Searches stored documents. An empty query lists everything matching
the filters. The --as-of flag answers temporal questions: results are
restricted to documents that existed at that instant.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchDepartment, "department", "d", "", "restrict to a department")
	searchCmd.Flags().StringSliceVarP(&searchTags, "tags", "t", nil, "match any of these tags")
	searchCmd.Flags().StringVar(&searchAsOf, "as-of", "", "only documents uploaded at or before this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchAfter, "after", "", "only documents uploaded on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchBefore, "before", "", "only documents uploaded on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errors.New("knowledge base not configured")
	}

	queryText := ""
	if len(args) > 0 {
		queryText = args[0]
	}

	query := domain.NewSearchQuery(queryText)
	query.Department = searchDepartment
	query.Tags = searchTags
	query.Limit = searchLimit

	if searchAsOf != "" {
		asOf, err := parseDayEnd(searchAsOf)
		if err != nil {
			return err
		}
		query.AsOf = &asOf
	}

	if searchAfter != "" || searchBefore != "" {
		dr, err := buildDateRange(searchAfter, searchBefore)
		if err != nil {
			return err
		}
		query.DateRange = dr
	}

	results, err := kbService.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := results[i].Document
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, doc.FileName, results[i].Score)
		cmd.Printf("      ID: %s  Department: %s  Uploaded: %s\n",
			doc.ID, doc.Metadata.Department, doc.Metadata.UploadTime.Format("2006-01-02"))
		cmd.Printf("      %s\n", doc.Metadata.BusinessContext)
		if len(results[i].Highlights) > 0 {
			cmd.Printf("      > %s\n", results[i].Highlights[0])
		}
		cmd.Println()
	}
	return nil
}

// parseDayEnd parses a date and returns the last instant of that day,
// so "--as-of 2026-03-01" includes everything uploaded on that day.
func parseDayEnd(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return day.Add(24*time.Hour - time.Nanosecond), nil
}

// buildDateRange converts --after/--before into an inclusive range.
func buildDateRange(after, before string) (*domain.DateRange, error) {
	dr := &domain.DateRange{
		Start: time.Time{},
		End:   time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	if after != "" {
		start, err := time.Parse("2006-01-02", after)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", after)
		}
		dr.Start = start
	}
	if before != "" {
		end, err := parseDayEnd(before)
		if err != nil {
			return nil, err
		}
		dr.End = end
	}
	return dr, nil
}
