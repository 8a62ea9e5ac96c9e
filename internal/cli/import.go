package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmww/wifi-sync/internal/sync"
	"github.com/wmww/wifi-sync/pkg/nmcli"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Add networks from the store file to NetworkManager",
	Long: `Import saved Wi-Fi networks from the store file into NetworkManager.

Every network present in the store file but unknown to NetworkManager is
created as a new connection profile. Networks this machine already knows
(matched by SSID) are left untouched, and so are networks only this machine
knows about. The store file itself is never modified.

A network that fails to import does not stop the run; the failure is
reported at the end alongside the networks that did import.`,
	Example: `  # Import every stored network this machine is missing
  wifi-sync import

  # Import from a specific store file
  wifi-sync import --file=~/Sync/networks.json

  # Show what would be imported without touching NetworkManager
  wifi-sync import --dry-run`,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, orchestrator, err := setupRun(cmd)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("🧪 Dry run: importing networks from %s\n", cfg.StorePath)
	} else {
		fmt.Printf("🚀 Importing networks from %s\n", cfg.StorePath)
	}

	result, err := orchestrator.Import(context.Background(), cfg.StorePath, sync.Options{DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	displayImportResult(result)
	return nil
}

// displayImportResult shows the final results of the import operation
func displayImportResult(result *sync.ImportResult) {
	fmt.Printf("\n📊 Results:\n")
	fmt.Printf("  • Networks on this machine: %d\n", result.SystemProfiles)
	fmt.Printf("  • Networks in store file: %d\n", result.StoreProfiles)
	fmt.Printf("  • Missing from this machine: %d\n", len(result.Missing))

	displaySkipped(result.Skipped)

	if len(result.Missing) == 0 {
		fmt.Println("\n✅ Nothing to import")
		return
	}

	if result.DryRun {
		fmt.Printf("\n🧪 Would import:\n")
		for _, record := range result.Missing {
			fmt.Printf("  • %s (%s)\n", record.SSID, record.Credential)
		}
		return
	}

	if len(result.Applied) > 0 {
		fmt.Printf("\n✅ Imported networks:\n")
		for _, record := range result.Applied {
			fmt.Printf("  • %s (%s)\n", record.SSID, record.Credential)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\n❌ Errors:\n")
		for _, recordErr := range result.Errors {
			fmt.Printf("  • %s (%s): %s\n", recordErr.SSID, recordErr.Step, recordErr.Message)
		}
	}
}

// displaySkipped lists system profiles that could not be read as Wi-Fi
// networks, with the reason each one was set aside.
func displaySkipped(skipped []nmcli.Skip) {
	if len(skipped) == 0 {
		return
	}

	fmt.Printf("\n⚠️  Skipped profiles:\n")
	for _, skip := range skipped {
		fmt.Printf("  • %s: %v\n", skip.Name, skip.Reason)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("dry-run", false, "Show what would be imported without making changes")
}
