package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var balanceAccount string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "show effective balances, mempool included",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&balanceAccount, "account", "a", "", "limit the output to a single account")
}

func balanceRun(cmd *cobra.Command, args []string) error {
	path := "/v1/balances/list"
	if balanceAccount != "" {
		path += "/" + balanceAccount
	}

	var result struct {
		LatestBlock string `json:"latest_block"`
		Uncommitted int    `json:"uncommitted"`
		Balances    []struct {
			Account string `json:"account"`
			Balance uint64 `json:"balance"`
		} `json:"balances"`
	}
	if err := get(path, &result); err != nil {
		return err
	}

	rows := pterm.TableData{{"Account", "Balance"}}
	for _, bal := range result.Balances {
		rows = append(rows, []string{bal.Account, strconv.FormatUint(bal.Balance, 10)})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	pterm.Info.Printfln("latest block %s, %d uncommitted", result.LatestBlock, result.Uncommitted)
	return nil
}
