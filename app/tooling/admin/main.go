// This program provides admin tooling against a running node.
package main

import (
	"fmt"
	"os"

	"github.com/forgecoin/forgecoin/app/tooling/admin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
