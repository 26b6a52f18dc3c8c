package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synclab/metasync/internal/migrations"
	"github.com/synclab/metasync/internal/storage"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending store migrations",
		Long: `Upgrade the documents kept in the configured store to the latest version.
Use --dry-run to list the pending migrations without applying them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := storage.NewDocumentStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open document store: %w", err)
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			tasks := migrations.Tasks()
			if dryRun {
				pending, err := migrations.Pending(ctx, store, tasks)
				if err != nil {
					return err
				}
				for _, task := range pending {
					_, _ = fmt.Fprintf(out, "pending %02d.%s\n", task.Version, task.Name)
				}
				_, _ = fmt.Fprintf(out, "%d migrations pending\n", len(pending))
				return nil
			}

			applied, err := migrations.Run(ctx, store, tasks)
			for _, task := range applied {
				_, _ = fmt.Fprintf(out, "applied %02d.%s\n", task.Version, task.Name)
			}
			if err != nil {
				return err
			}

			version, err := migrations.CurrentVersion(ctx, store)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "store is at version %d\n", version)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "List pending migrations without applying them")
	return cmd
}
