// Package cli provides the command-line interface for the knowledge
// base. Commands are thin: they parse flags, call the driving ports,
// and render results.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/futureready-labs/futureready-kb/internal/adapters/driven/config/file"
	"github.com/futureready-labs/futureready-kb/internal/adapters/driven/llm/anthropic"
	"github.com/futureready-labs/futureready-kb/internal/adapters/driven/llm/openai"
	storagefile "github.com/futureready-labs/futureready-kb/internal/adapters/driven/storage/file"
	"github.com/futureready-labs/futureready-kb/internal/adapters/driven/storage/sqlite"
	"github.com/futureready-labs/futureready-kb/internal/agents"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
	"github.com/futureready-labs/futureready-kb/internal/core/services"
	"github.com/futureready-labs/futureready-kb/internal/logger"
	"github.com/futureready-labs/futureready-kb/internal/parsers"
	"github.com/futureready-labs/futureready-kb/internal/parsers/html"
	"github.com/futureready-labs/futureready-kb/internal/parsers/markdown"
	"github.com/futureready-labs/futureready-kb/internal/parsers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by initServices and used by the commands.
var (
	configStore driven.ConfigStore
	kbService   driving.KnowledgeBaseService
	legalAgent  *agents.LegalAgent
	alertStore  driven.AlertStore
	sqliteStore *sqlite.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "futureready",
	Short: "Enterprise document store with temporal search",
	Long: `FutureReady KB is a local-first document store for enterprise
knowledge. Every document carries mandatory metadata - who uploaded it,
which department owns it, and why it exists - and the store answers
temporal queries about what was known at any point in time.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices(cmd)
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if sqliteStore != nil {
			sqliteStore.Close()
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initServices wires the storage adapters, the knowledge base service
// and the legal agent. Idempotent: tests re-run commands on the same
// process.
func initServices(cmd *cobra.Command) error {
	if kbService != nil {
		return nil
	}

	var err error
	configStore, err = configfile.NewConfigStore(os.Getenv("FUTUREREADY_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	dataDir := configStore.GetString("store.data_dir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".futureready", "kb")
	}

	contentStore, err := storagefile.NewContentStore(dataDir)
	if err != nil {
		return fmt.Errorf("open content store: %w", err)
	}
	indexStore, err := storagefile.NewIndexStore(dataDir)
	if err != nil {
		return fmt.Errorf("open index store: %w", err)
	}

	registry := parsers.NewRegistry(plaintext.New(), markdown.New(), html.New())

	kbService = services.NewKnowledgeBase(contentStore, indexStore, registry, services.Config{
		Department: configStore.GetString("store.department"),
	})

	sqliteStore, err = sqlite.NewStore(filepath.Join(dataDir, "db"))
	if err != nil {
		return fmt.Errorf("open alert store: %w", err)
	}
	alertStore = sqliteStore.AlertStore()

	llm, err := buildLLMService(cmd)
	if err != nil {
		return err
	}

	legalAgent = agents.NewLegalAgent(kbService, llm)
	legalAgent.SetAlertStore(alertStore)

	return nil
}

// buildLLMService creates the configured LLM backend, or nil when no
// provider is configured. Agents degrade to retrieval-only answers.
func buildLLMService(cmd *cobra.Command) (driven.LLMService, error) {
	provider := configStore.GetString("llm.provider")
	if provider == "" {
		return nil, nil
	}

	apiKey := configStore.GetString("llm.api_key")
	model := configStore.GetString("llm.model")

	switch provider {
	case "openai":
		svc, err := openai.NewLLMService(openai.Config{APIKey: apiKey, Model: model})
		if err != nil {
			return nil, fmt.Errorf("configure openai: %w", err)
		}
		return svc, nil
	case "anthropic":
		svc, err := anthropic.NewLLMService(anthropic.Config{APIKey: apiKey, Model: model})
		if err != nil {
			return nil, fmt.Errorf("configure anthropic: %w", err)
		}
		return svc, nil
	default:
		cmd.PrintErrf("Warning: unknown llm.provider %q, continuing without LLM\n", provider)
		return nil, nil
	}
}
