package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "signal the node to start a mining operation",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	var result struct {
		Status string `json:"status"`
	}
	if err := get("/v1/mining/signal", &result); err != nil {
		return err
	}

	pterm.Success.Println(result.Status)
	return nil
}
