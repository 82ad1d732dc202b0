package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

var alertsAll bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run monitoring and manage alerts",
}

var monitorRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Check for risks and raise alerts",
	Long: `Runs the legal agent's monitors: recent policy changes and contracts
approaching expiry. Raised alerts are persisted and can be reviewed
with 'monitor alerts'.`,
	RunE: runMonitorRun,
}

var monitorAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List alerts",
	RunE:  runMonitorAlerts,
}

var monitorAckCmd = &cobra.Command{
	Use:   "ack [alert-id]",
	Short: "Acknowledge an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  runMonitorAck,
}

func init() {
	monitorAlertsCmd.Flags().BoolVarP(&alertsAll, "all", "a", false, "include acknowledged alerts")

	monitorCmd.AddCommand(monitorRunCmd)
	monitorCmd.AddCommand(monitorAlertsCmd)
	monitorCmd.AddCommand(monitorAckCmd)
	rootCmd.AddCommand(monitorCmd)
}

func runMonitorRun(cmd *cobra.Command, _ []string) error {
	if legalAgent == nil {
		return errors.New("agent not configured")
	}

	alerts, err := legalAgent.Monitor(context.Background())
	if err != nil {
		return fmt.Errorf("monitoring failed: %w", err)
	}

	if len(alerts) == 0 {
		cmd.Println("No alerts raised.")
		return nil
	}

	cmd.Printf("Raised %d alerts:\n\n", len(alerts))
	for i := range alerts {
		printAlert(cmd, &alerts[i])
	}
	return nil
}

func runMonitorAlerts(cmd *cobra.Command, _ []string) error {
	if alertStore == nil {
		return errors.New("alert store not configured")
	}

	alerts, err := alertStore.List(context.Background(), alertsAll)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}

	if len(alerts) == 0 {
		cmd.Println("No alerts.")
		return nil
	}

	for i := range alerts {
		printAlert(cmd, &alerts[i])
	}
	return nil
}

func runMonitorAck(cmd *cobra.Command, args []string) error {
	if alertStore == nil {
		return errors.New("alert store not configured")
	}

	if err := alertStore.Acknowledge(context.Background(), args[0]); err != nil {
		return fmt.Errorf("acknowledge failed: %w", err)
	}
	cmd.Printf("Acknowledged %s\n", args[0])
	return nil
}

func printAlert(cmd *cobra.Command, alert *domain.Alert) {
	status := ""
	if alert.Acknowledged {
		status = " (acknowledged)"
	}
	cmd.Printf("[%s] %s%s\n", alert.Severity, alert.Type, status)
	cmd.Printf("  ID:      %s\n", alert.ID)
	cmd.Printf("  Raised:  %s\n", alert.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("  %s\n", alert.Message)
	if len(alert.AffectedDocIDs) > 0 {
		cmd.Printf("  Documents: %v\n", alert.AffectedDocIDs)
	}
	cmd.Println()
}
