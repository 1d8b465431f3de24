package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "show the blocks of the chain, genesis first",
	RunE:  chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	var blocks []struct {
		Hash   string `json:"hash"`
		Header struct {
			Number        uint64 `json:"number"`
			PrevBlockHash string `json:"prev_block_hash"`
			TimeStamp     uint64 `json:"timestamp"`
			BeneficiaryID string `json:"beneficiary"`
			Difficulty    int    `json:"difficulty"`
			Nonce         uint64 `json:"nonce"`
		} `json:"block"`
		Trans []struct {
			FromID string `json:"from"`
			ToID   string `json:"to"`
			Value  uint64 `json:"value"`
			Tip    uint64 `json:"tip"`
		} `json:"trans"`
	}
	if err := get("/v1/blocks/list", &blocks); err != nil {
		return err
	}

	rows := pterm.TableData{{"Number", "Hash", "Difficulty", "Txs", "Beneficiary"}}
	for _, block := range blocks {
		rows = append(rows, []string{
			strconv.FormatUint(block.Header.Number, 10),
			shorten(block.Hash),
			strconv.Itoa(block.Header.Difficulty),
			strconv.Itoa(len(block.Trans)),
			shorten(block.Header.BeneficiaryID),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// shorten keeps hashes and accounts readable in table output.
func shorten(s string) string {
	if len(s) <= 16 {
		return s
	}
	return s[:10] + ".." + s[len(s)-4:]
}
