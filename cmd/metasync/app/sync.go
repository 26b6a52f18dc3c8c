package app

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synclab/metasync/internal/app"
	"github.com/synclab/metasync/internal/report"
)

func newSyncCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run synchronization rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run RULE_ID",
		Short: "Synchronize a rule now and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			user, err := cmd.Flags().GetString("user")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			components, err := app.NewComponents(ctx, app.WithConfig(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = components.Close(ctx) }()

			syncReport, err := components.Service.RunRule(ctx, args[0], user)
			if err != nil {
				return err
			}
			if err := printReport(cmd.OutOrStdout(), syncReport); err != nil {
				return err
			}
			if syncReport.Status != report.StatusDone {
				return fmt.Errorf("synchronization finished with status %s", syncReport.Status)
			}
			return nil
		},
	}
	runCmd.Flags().String("user", "cli", "User recorded on the report")

	cmd.AddCommand(runCmd)
	return cmd
}

func printReport(w io.Writer, r report.SynchronizationReport) error {
	if _, err := fmt.Fprintf(w, "Report %s: %s\n", r.ID, r.Status); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Instance", "Type", "Status", "Created", "Updated", "Deleted", "Message")
	for _, result := range r.Results {
		var stats report.Stats
		if result.Stats != nil {
			stats = *result.Stats
		}
		err := table.Append([]string{
			result.Instance.Name,
			result.Type,
			string(result.Status),
			fmt.Sprint(stats.Created),
			fmt.Sprint(stats.Updated),
			fmt.Sprint(stats.Deleted),
			result.Message,
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}
