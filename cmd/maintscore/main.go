// main is the entry point for the maintscore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/maintscore/cmd"
)

func main() {
	err := cmd.Execute()
	if closeErr := cmd.CloseStore(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "Warn failed to close record store:", closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
