// Command qcore is the coordination kernel's command-line front end:
// run submits a circuit and prints results, serve starts the
// HTTP/streaming control plane.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "qcore",
		Short: "Quantum circuit coordination kernel",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
