package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "dtbtool",
	Short:   "Inspect and validate flattened device tree blobs",
	Long:    `dtbtool loads a .dtb file and dumps, validates, or queries it using the same parser the kernel boots from.`,
	Version: "0.1.0",
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
