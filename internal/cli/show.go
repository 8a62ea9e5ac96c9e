package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wmww/wifi-sync/internal/sync"
	"github.com/wmww/wifi-sync/pkg/profile"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show how this machine and the store file differ",
	Long: `Show the saved Wi-Fi networks on this machine and in the store file.

Lists the networks known to each side and where they disagree: networks
only NetworkManager knows are candidates for save, networks only the store
file knows are candidates for import. Nothing is modified.`,
	Example: `  # Compare this machine against the default store file
  wifi-sync show

  # Compare against a specific file
  wifi-sync show --file=~/Sync/networks.json`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, orchestrator, err := setupRun(cmd)
	if err != nil {
		return err
	}

	result, err := orchestrator.Show(context.Background(), cfg.StorePath)
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	displayShowResult(result, cfg.StorePath)
	return nil
}

// displayShowResult prints one row per known network with its sync status
func displayShowResult(result *sync.ShowResult, storePath string) {
	fmt.Printf("\n📊 Networks on this machine: %d\n", len(result.System))
	fmt.Printf("📊 Networks in store file: %d\n\n", len(result.Store))

	onlySystem := make(map[string]bool, len(result.OnlySystem))
	for _, record := range result.OnlySystem {
		onlySystem[record.SSID] = true
	}
	onlyStore := make(map[string]bool, len(result.OnlyStore))
	for _, record := range result.OnlyStore {
		onlyStore[record.SSID] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "SSID\tSECURITY\tAUTOCONNECT\tSTATUS\n")

	seen := make(map[string]bool)
	rows := make([]profile.Record, 0, len(result.System)+len(result.Store))
	rows = append(rows, result.System...)
	rows = append(rows, result.Store...)

	for _, record := range rows {
		if seen[record.SSID] {
			continue
		}
		seen[record.SSID] = true

		autoconnect := "yes"
		if !record.Autoconnect {
			autoconnect = "no"
		}

		status := "in sync"
		if onlySystem[record.SSID] {
			status = "only this machine"
		} else if onlyStore[record.SSID] {
			status = "only store file"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", record.SSID, record.Credential, autoconnect, status)
	}
	_ = w.Flush()

	displaySkipped(result.Skipped)

	if len(result.OnlySystem) == 0 && len(result.OnlyStore) == 0 {
		fmt.Println("\n✅ This machine and the store file are in sync")
		return
	}

	if len(result.OnlySystem) > 0 {
		fmt.Printf("\n💾 Run 'wifi-sync save' to store %d networks from this machine\n", len(result.OnlySystem))
	}
	if len(result.OnlyStore) > 0 {
		fmt.Printf("📥 Run 'wifi-sync import' to add %d stored networks to this machine\n", len(result.OnlyStore))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
