// main is the entry point for the qualens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/qualens/qualens/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.CloseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
