package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/futureready-labs/futureready-kb/internal/watcher"
)

var (
	watchUploader   string
	watchDepartment string
	watchContext    string
	watchTags       []string
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Auto-ingest files dropped into a directory",
	Long: `Watches a directory and ingests every file dropped into it, using
the configured uploader and business context. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchUploader, "uploader", "u", "", "uploader email recorded on ingested documents")
	watchCmd.Flags().StringVarP(&watchDepartment, "department", "d", "", "department applied to ingested documents")
	watchCmd.Flags().StringVarP(&watchContext, "context", "c", "", "business context recorded on ingested documents")
	watchCmd.Flags().StringSliceVarP(&watchTags, "tags", "t", nil, "tags applied to ingested documents")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if kbService == nil {
		return errors.New("knowledge base not configured")
	}

	cfg := watcher.Config{
		Dir:             args[0],
		Uploader:        watchUploader,
		Department:      watchDepartment,
		BusinessContext: watchContext,
		Tags:            watchTags,
	}

	// Flags win over configured defaults.
	if cfg.Uploader == "" {
		cfg.Uploader = configStore.GetString("watch.uploader")
	}
	if cfg.Department == "" {
		cfg.Department = configStore.GetString("watch.department")
	}
	if cfg.BusinessContext == "" {
		cfg.BusinessContext = configStore.GetString("watch.context")
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = configStore.GetStringSlice("watch.tags")
	}

	w, err := watcher.New(kbService, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", cfg.Dir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
