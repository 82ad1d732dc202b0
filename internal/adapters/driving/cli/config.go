package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values. Keys use dot notation, e.g.
store.department or llm.provider.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider]",
	Short: "Set an LLM API key",
	Long: `Prompts for an API key without echoing it and stores it for the
given provider (openai or anthropic).`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	if strings.HasSuffix(args[0], "api_key") {
		cmd.Println(maskAPIKey(fmt.Sprint(value)))
		return nil
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	provider := args[0]
	if provider != "openai" && provider != "anthropic" {
		return fmt.Errorf("unknown provider %q: use openai or anthropic", provider)
	}

	cmd.Printf("API key for %s: ", provider)
	key := promptSecret()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	if err := configStore.Set("llm.provider", provider); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := configStore.Set("llm.api_key", key); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cmd.Printf("Stored API key for %s\n", provider)
	return nil
}

// promptSecret reads a line without echoing when stdin is a terminal.
func promptSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
