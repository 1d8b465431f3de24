package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	sendFrom  string
	sendTo    string
	sendValue uint64
	sendTip   uint64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "submit a transaction to the mempool",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendFrom, "from", "f", "", "account the value is moving from")
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "account the value is moving to")
	sendCmd.Flags().Uint64VarP(&sendValue, "value", "v", 0, "value to transfer")
	sendCmd.Flags().Uint64VarP(&sendTip, "tip", "p", 0, "tip offered to the miner")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("value")
}

func sendRun(cmd *cobra.Command, args []string) error {
	payload := struct {
		FromID string `json:"from"`
		ToID   string `json:"to"`
		Value  uint64 `json:"value"`
		Tip    uint64 `json:"tip"`
	}{
		FromID: sendFrom,
		ToID:   sendTo,
		Value:  sendValue,
		Tip:    sendTip,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(url+"/v1/tx/add", "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("node returned %s: %s", resp.Status, msg)
	}

	fmt.Println("transaction added to mempool")
	return nil
}
