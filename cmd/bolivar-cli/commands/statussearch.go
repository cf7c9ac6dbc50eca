package commands

import (
	"fmt"
	"os"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusSearchCmd)
}

// useful when the portal markup drifts: save the response page and see
// which extraction tier still finds a status on it
var statusSearchCmd = &cobra.Command{
	Use:   "status-search <path/to/page.html>",
	Short: "Runs the status extraction heuristics over a saved portal page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("read page", err)
		}

		value, tier := bolivar.SearchStatus(string(data))
		fmt.Printf("tier: %s\nstatus: %s\nnormalized: %s\n", tier, value, bolivar.NormalizeStatus(value))
	},
}
