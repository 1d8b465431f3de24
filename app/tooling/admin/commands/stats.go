package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "show derived figures about the ledger",
	RunE:  statsRun,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func statsRun(cmd *cobra.Command, args []string) error {
	var stats struct {
		BlockCount        uint64        `json:"block_count"`
		TransactionCount  uint64        `json:"transaction_count"`
		PendingCount      int           `json:"pending_count"`
		AverageBlockTime  time.Duration `json:"average_block_time"`
		CurrentDifficulty int           `json:"current_difficulty"`
		EstimatedHashRate float64       `json:"estimated_hash_rate"`
	}
	if err := get("/v1/stats", &stats); err != nil {
		return err
	}

	rows := pterm.TableData{
		{"Blocks", strconv.FormatUint(stats.BlockCount, 10)},
		{"Transactions", strconv.FormatUint(stats.TransactionCount, 10)},
		{"Pending", strconv.Itoa(stats.PendingCount)},
		{"Avg Block Time", stats.AverageBlockTime.String()},
		{"Difficulty", strconv.Itoa(stats.CurrentDifficulty)},
		{"Est Hash Rate", fmt.Sprintf("%.2f H/s", stats.EstimatedHashRate)},
	}

	return pterm.DefaultTable.WithData(rows).Render()
}
