// Package commands contains the set of admin subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var url string

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "admin tooling for a forgecoin node",
	Long:  `Admin provides query and control operations against a running forgecoin node over its public API.`,
}

// Execute runs the root command and everything underneath it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "url of the node to talk to")
}

// get performs a GET against the node and decodes the JSON response into v.
func get(path string, v any) error {
	resp, err := http.Get(url + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("node returned %s: %s", resp.Status, msg)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
