package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmww/wifi-sync/internal/sync"
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record this machine's Wi-Fi networks into the store file",
	Long: `Save the Wi-Fi networks NetworkManager knows about into the store file.

Networks this machine knows but the store file does not (matched by SSID)
are appended to the file. Existing entries are never modified, reordered,
or removed, so running save twice in a row leaves the file untouched.
Profiles that cannot be represented (WEP security, unreadable fields) are
skipped with a reason.

With --git-history, every change to the store file is committed to a Git
repository in the file's directory, giving a browsable record of when each
network was added.`,
	Example: `  # Save new networks into the default store file
  wifi-sync save

  # Save to a specific file
  wifi-sync save --file=~/Sync/networks.yaml

  # Keep a Git history of store changes
  wifi-sync save --git-history

  # Show what would be saved without writing anything
  wifi-sync save --dry-run`,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, orchestrator, err := setupRun(cmd)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("🧪 Dry run: saving networks to %s\n", cfg.StorePath)
	} else {
		fmt.Printf("🚀 Saving networks to %s\n", cfg.StorePath)
	}

	result, err := orchestrator.Save(context.Background(), cfg.StorePath, sync.Options{DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	displaySaveResult(result, cfg.StorePath)
	return nil
}

// displaySaveResult shows the final results of the save operation
func displaySaveResult(result *sync.SaveResult, storePath string) {
	fmt.Printf("\n📊 Results:\n")
	fmt.Printf("  • Networks on this machine: %d\n", result.SystemProfiles)
	fmt.Printf("  • Networks already stored: %d\n", result.StoreProfiles)
	fmt.Printf("  • New on this machine: %d\n", len(result.Added))

	displaySkipped(result.Skipped)

	if len(result.Added) == 0 {
		fmt.Println("\n✅ Store file already up to date")
		return
	}

	if result.DryRun {
		fmt.Printf("\n🧪 Would save:\n")
		for _, record := range result.Added {
			fmt.Printf("  • %s (%s)\n", record.SSID, record.Credential)
		}
		return
	}

	fmt.Printf("\n✅ Saved networks:\n")
	for _, record := range result.Added {
		fmt.Printf("  • %s (%s)\n", record.SSID, record.Credential)
	}
	fmt.Printf("\n💾 Store file now holds %d networks: %s\n", result.StoreProfiles+len(result.Added), storePath)
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().Bool("dry-run", false, "Show what would be saved without making changes")
	saveCmd.Flags().Bool("git-history", false, "Commit store file changes to a Git repository in its directory")
}
