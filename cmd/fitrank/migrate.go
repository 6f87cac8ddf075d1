// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Reads everything from --from and writes it to --to.
package main

import (
	"fmt"

	"github.com/harperreed/fitrank/internal/config"
	"github.com/harperreed/fitrank/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all gyms, profiles, stats, achievements and workouts from one
storage backend to another. Backends are sqlite, postgres and charm; the
other settings (data_dir, postgres_dsn) come from your config.

Records already present in the destination with the same ID are overwritten.

USAGE:

  fitrank migrate --from sqlite --to postgres --dry-run   # Preview
  fitrank migrate --from sqlite --to postgres             # Copy
  fitrank migrate --from charm --to sqlite`,
	Annotations: map[string]string{skipStorage: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to are both %q", migrateFrom)
		}

		srcCfg, dstCfg := *cfg, *cfg
		srcCfg.Backend, dstCfg.Backend = migrateFrom, migrateTo
		if err := srcCfg.Validate(); err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
		if err := dstCfg.Validate(); err != nil {
			return fmt.Errorf("invalid destination: %w", err)
		}

		src, err := srcCfg.OpenStorage(ctx)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer src.Close()

		if migrateDryRun {
			yellow.Fprintln(out, "Dry run mode - no changes will be made")
			data, err := src.GetAllData(ctx)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
			}
			printSummary(cmd, &storage.MigrateSummary{
				Gyms:         len(data.Gyms),
				Profiles:     len(data.Profiles),
				Stats:        len(data.Stats),
				Achievements: len(data.Achievements),
				Workouts:     len(data.Workouts),
			})
			return nil
		}

		dst, err := dstCfg.OpenStorage(ctx)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migration complete", "from", migrateFrom, "to", migrateTo)
		green.Fprintf(out, "✓ Migrated %s -> %s\n", migrateFrom, migrateTo)
		printSummary(cmd, summary)
		return nil
	},
}

func printSummary(cmd *cobra.Command, s *storage.MigrateSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Gyms:         %d\n", s.Gyms)
	fmt.Fprintf(out, "  Profiles:     %d\n", s.Profiles)
	fmt.Fprintf(out, "  Stats:        %d\n", s.Stats)
	fmt.Fprintf(out, "  Achievements: %d\n", s.Achievements)
	fmt.Fprintf(out, "  Workouts:     %d\n", s.Workouts)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendPostgres, "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
