package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "run the tamper check over the full chain",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) error {
	var result struct {
		Status string `json:"status"`
	}
	if err := get("/v1/chain/validate", &result); err != nil {
		pterm.Error.Println(err)
		return err
	}

	pterm.Success.Println(result.Status)
	return nil
}
