package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"rentledger/internal/migrations"
	"rentledger/internal/models"
)

func MigrateCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		UpCmd(env),
		DownCmd(env),
		StatusCmd(env),
		HistoryCmd(env),
		ValidateCmd(env),
	)
	return cmd
}

func UpCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			out := cmd.OutOrStdout()

			db, err := env.DB()
			if err != nil {
				return err
			}
			migrator := migrations.NewMigrator(db)

			pending, err := migrator.Pending()
			if err != nil {
				return fmt.Errorf("failed to get applied migrations: %w", err)
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
				return nil
			}

			if dryRun {
				fmt.Fprintln(out, "Pending migrations:")
				for _, m := range pending {
					fmt.Fprintf(out, "- %s (%s)\n", m.Name, m.Version)
				}
				return nil
			}

			applied, err := migrator.Up()
			for _, m := range applied {
				fmt.Fprintf(out, "Successfully applied migration: %s\n", m.Name)
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show pending migrations without executing them")

	return cmd
}

func DownCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.DB()
			if err != nil {
				return err
			}

			reverted, err := migrations.NewMigrator(db).Down()
			if err != nil {
				return err
			}
			if reverted == nil {
				return fmt.Errorf("no migrations to revert")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully reverted migration: %s\n", reverted.Name)
			return nil
		},
	}
}

func StatusCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.DB()
			if err != nil {
				return err
			}

			statuses, err := migrations.NewMigrator(db).Status()
			if err != nil {
				return fmt.Errorf("failed to get applied migrations: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s  %-42s  %-8s\n", "Version", "Name", "Status")
			for _, s := range statuses {
				status := "Pending"
				if s.Applied {
					status = "Applied"
				}
				fmt.Fprintf(out, "%-16s  %-42s  %-8s\n", s.Version, s.Name, status)
			}
			return nil
		},
	}
}

func HistoryCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show migration history",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.DB()
			if err != nil {
				return err
			}

			records, err := migrations.NewMigrator(db).History()
			if err != nil {
				return fmt.Errorf("failed to get migration history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No migrations have been applied yet.")
				return nil
			}

			fmt.Fprintf(out, "%-16s  %-42s  %-24s\n", "Version", "Name", "Applied At")
			for _, record := range records {
				fmt.Fprintf(out, "%-16s  %-42s  %-24s\n", record.Version, record.Name, record.AppliedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

// ValidateCmd checks that every registered model has its table.
func ValidateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the schema covers every model",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.DB()
			if err != nil {
				return err
			}

			var missing []string
			for name, model := range models.ModelTypeRegistry {
				if !db.Migrator().HasTable(model) {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				sort.Strings(missing)
				return fmt.Errorf("validation failed: missing tables for %v", missing)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
