package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "reg <file.dtb> <node-path>",
		Short: "Print a node's reg iterator output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReg(args[0], args[1])
		},
	})
}

func runReg(path, nodePath string) error {
	dt, err := parseFile(path)
	if err != nil {
		return err
	}
	id, err := findNode(dt, nodePath)
	if err != nil {
		return err
	}
	entries, err := dt.Reg(id)
	if err != nil {
		return fmt.Errorf("reg on %s: %w", nodePath, err)
	}
	for _, e := range entries {
		fmt.Printf("{addr=0x%x, size=0x%x}\n", e.Addr, e.Size)
	}
	return nil
}
