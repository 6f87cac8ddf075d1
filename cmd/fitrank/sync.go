// ABOUTME: CLI commands for Charm Cloud sync when the charm backend is active.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/fitrank/internal/charm"
	"github.com/harperreed/fitrank/internal/config"
	"github.com/spf13/cobra"
)

// noStorage is shared by sync subcommands that work on the KV files directly.
var noStorage = map[string]string{skipStorage: "true"}

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync fitrank data across devices",
	Long: `Sync fitrank data across devices using Charm Cloud.

Requires the charm backend (backend: "charm" in config.json, or
FITRANK_BACKEND=charm). Data is E2E encrypted with your SSH key before
upload.

GETTING STARTED:

  1. Link your device:    fitrank sync link
  2. Check sync status:   fitrank sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each write.`,
}

func runCharm(cmd *cobra.Command, arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = cmd.OutOrStdout()
	charmCmd.Stderr = cmd.ErrOrStderr()
	return charmCmd.Run()
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		out := cmd.OutOrStdout()
		green.Fprintln(out, "\n✓ Device linked to Charm")
		if cfg.GetBackend() != config.BackendCharm {
			yellow.Fprintln(out, "⚠ Set backend to \"charm\" to sync your fitrank data.")
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect from Charm",
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		green.Fprintln(cmd.OutOrStdout(), "✓ Device unlinked from Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Your local fitrank data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		client, ok := repo.(*charm.Client)
		if !ok {
			yellow.Fprintf(out, "Backend is %s; sync needs the charm backend.\n", cfg.GetBackend())
			return nil
		}

		id, err := client.ID()
		if err != nil {
			yellow.Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'fitrank sync link' to connect to Charm.")
			return nil
		}
		if err := client.Sync(); err != nil {
			yellow.Fprintf(out, "⚠ Sync failed: %v\n", err)
		}

		data, err := client.GetAllData(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read local data: %w", err)
		}

		fmt.Fprintln(out, "Charm ID:", id)
		if client.IsReadOnly() {
			yellow.Fprintln(out, "Read-only: another fitrank process holds the database")
		}
		green.Fprintln(out, "✓ Connected to Charm")
		fmt.Fprintf(out, "  Profiles: %d\n", len(data.Profiles))
		fmt.Fprintf(out, "  Workouts: %d\n", len(data.Workouts))
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt, want string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	var answer string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
	return answer == want
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete all cloud and local data",
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all cloud backups and local fitrank data.")
		if !confirm(cmd, "Type 'wipe' to confirm: ", "wipe") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		green.Fprintln(out, "✓ Data wiped successfully")
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair database corruption",
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		force, _ := cmd.Flags().GetBool("force")

		fmt.Fprintln(out, "Repairing fitrank database...")
		result, err := kv.Repair(charm.DBName, force)
		if result.WalCheckpointed {
			green.Fprintln(out, "  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			green.Fprintln(out, "  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			green.Fprintln(out, "  ✓ Integrity check passed")
		} else {
			yellow.Fprintln(out, "  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			green.Fprintln(out, "  ✓ Database vacuumed")
		}
		if err != nil {
			if !force {
				yellow.Fprintln(out, "\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		green.Fprintln(out, "\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local data and restore from cloud",
	Annotations: noStorage,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will DELETE all local fitrank data and restore from cloud.")
		if !confirm(cmd, "Continue? [y/N]: ", "y") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		green.Fprintln(out, "✓ Local data reset and restored from cloud")
		return nil
	},
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
