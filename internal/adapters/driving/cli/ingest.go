package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
)

var (
	ingestUploader    string
	ingestDepartment  string
	ingestContext     string
	ingestTags        []string
	ingestRelated     []string
	ingestExpiry      string
	ingestSourceURL   string
	ingestSkipParsing bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Add a document to the knowledge base",
	Long: `Admits a document into the store. Every document needs an uploader
email and a business context of at least 10 characters explaining why
it is being stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestUploader, "uploader", "u", "", "uploader email address (required)")
	ingestCmd.Flags().StringVarP(&ingestDepartment, "department", "d", "", "owning department")
	ingestCmd.Flags().StringVarP(&ingestContext, "context", "c", "", "business context: why this document matters (required)")
	ingestCmd.Flags().StringSliceVarP(&ingestTags, "tags", "t", nil, "tags for filtering")
	ingestCmd.Flags().StringSliceVar(&ingestRelated, "related", nil, "related document IDs")
	ingestCmd.Flags().StringVar(&ingestExpiry, "expires", "", "expiry date (YYYY-MM-DD)")
	ingestCmd.Flags().StringVar(&ingestSourceURL, "source-url", "", "original URL for web archives")
	ingestCmd.Flags().BoolVar(&ingestSkipParsing, "skip-parsing", false, "store without text extraction")
	_ = ingestCmd.MarkFlagRequired("uploader")
	_ = ingestCmd.MarkFlagRequired("context")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errors.New("knowledge base not configured")
	}

	req := driving.IngestRequest{
		FilePath:        args[0],
		Uploader:        ingestUploader,
		Department:      ingestDepartment,
		BusinessContext: ingestContext,
		Tags:            ingestTags,
		RelatedDocs:     ingestRelated,
		SourceURL:       ingestSourceURL,
		ParseContent:    !ingestSkipParsing,
	}

	if ingestExpiry != "" {
		expiry, err := time.Parse("2006-01-02", ingestExpiry)
		if err != nil {
			return fmt.Errorf("invalid expiry date %q: use YYYY-MM-DD", ingestExpiry)
		}
		req.ExpiryDate = &expiry
	}

	doc, err := kbService.Ingest(context.Background(), req)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s\n", doc.FileName)
	cmd.Printf("  ID:         %s\n", doc.ID)
	cmd.Printf("  Type:       %s\n", doc.ContentType)
	cmd.Printf("  Department: %s\n", doc.Metadata.Department)
	if len(doc.Metadata.Tags) > 0 {
		cmd.Printf("  Tags:       %v\n", doc.Metadata.Tags)
	}
	return nil
}
