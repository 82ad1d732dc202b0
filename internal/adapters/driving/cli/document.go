package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

var (
	updateTags    []string
	updateContext string
	updateRelated []string
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `View or update documents in the knowledge base.`,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [doc-id]",
	Short: "Update document metadata",
	Long: `Updates the mutable metadata of a document: tags, business context
and related document references. Each update bumps the version.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentUpdate,
}

func init() {
	documentUpdateCmd.Flags().StringSliceVarP(&updateTags, "tags", "t", nil, "replacement tags")
	documentUpdateCmd.Flags().StringVarP(&updateContext, "context", "c", "", "replacement business context")
	documentUpdateCmd.Flags().StringSliceVar(&updateRelated, "related", nil, "replacement related document IDs")

	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errors.New("knowledge base not configured")
	}

	doc, err := kbService.GetDocument(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", args[0])
	}

	printDocument(cmd, doc)
	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errors.New("knowledge base not configured")
	}

	var update domain.MetadataUpdate
	if cmd.Flags().Changed("tags") {
		update.Tags = &updateTags
	}
	if cmd.Flags().Changed("context") {
		update.BusinessContext = &updateContext
	}
	if cmd.Flags().Changed("related") {
		update.RelatedDocIDs = &updateRelated
	}

	if update.IsEmpty() {
		return errors.New("nothing to update: pass --tags, --context or --related")
	}

	doc, err := kbService.UpdateMetadata(context.Background(), args[0], update)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	cmd.Printf("Updated %s to version %d\n", doc.ID, doc.Version)
	return nil
}

func printDocument(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("%s (%s)\n", doc.FileName, doc.ID)
	cmd.Printf("  Type:       %s\n", doc.ContentType)
	cmd.Printf("  Version:    %d\n", doc.Version)
	cmd.Printf("  Uploader:   %s\n", doc.Metadata.UploaderID)
	cmd.Printf("  Department: %s\n", doc.Metadata.Department)
	cmd.Printf("  Uploaded:   %s\n", doc.Metadata.UploadTime.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Context:    %s\n", doc.Metadata.BusinessContext)
	if len(doc.Metadata.Tags) > 0 {
		cmd.Printf("  Tags:       %v\n", doc.Metadata.Tags)
	}
	if len(doc.Metadata.RelatedDocIDs) > 0 {
		cmd.Printf("  Related:    %v\n", doc.Metadata.RelatedDocIDs)
	}
	if doc.Metadata.ExpiryDate != nil {
		cmd.Printf("  Expires:    %s\n", doc.Metadata.ExpiryDate.Format("2006-01-02"))
	}
	if doc.Metadata.SourceURL != "" {
		cmd.Printf("  Source:     %s\n", doc.Metadata.SourceURL)
	}
	if doc.ParsedText != "" {
		cmd.Printf("  Parsed:     %d characters\n", len(doc.ParsedText))
	}
}
