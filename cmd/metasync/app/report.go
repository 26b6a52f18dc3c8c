package app

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synclab/metasync/internal/app"
	"github.com/synclab/metasync/internal/service"
)

func newReportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect synchronization reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List synchronization reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			page, err := cmd.Flags().GetInt("page")
			if err != nil {
				return err
			}
			pageSize, err := cmd.Flags().GetInt("page-size")
			if err != nil {
				return err
			}
			opts := []service.Option{service.WithPage(page), service.WithPageSize(pageSize)}
			if rule, _ := cmd.Flags().GetString("rule"); rule != "" {
				opts = append(opts, service.WithEquals("syncRule", rule))
			}

			ctx := cmd.Context()
			components, err := app.NewComponents(ctx, app.WithConfig(cfg), app.WithAutoMigrate(false))
			if err != nil {
				return err
			}
			defer func() { _ = components.Close(ctx) }()

			reports, err := components.Service.ListReports(ctx, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.Header("ID", "Date", "Type", "Rule", "User", "Status")
			for _, r := range reports.Objects {
				err := table.Append([]string{
					r.ID,
					r.Timestamp.Format(time.DateTime),
					r.Type,
					r.SyncRule,
					r.User,
					string(r.Status),
				})
				if err != nil {
					return err
				}
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Page %d of %d (%d reports)\n",
				reports.Pager.Page, reports.Pager.PageCount, reports.Pager.Total)
			return err
		},
	}
	listCmd.Flags().Int("page", 1, "Page to list")
	listCmd.Flags().Int("page-size", 25, "Reports per page")
	listCmd.Flags().String("rule", "", "Only list the reports of this rule")

	cmd.AddCommand(listCmd)
	return cmd
}
