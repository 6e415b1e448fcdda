package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rvkernel/internal/fdt"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dump <file.dtb>",
		Short: "Print the parsed device tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	})
}

func runDump(path string) error {
	dt, err := parseFile(path)
	if err != nil {
		return err
	}
	printSubtree(dt, dt.Root(), 0)
	return nil
}

func printSubtree(dt *fdt.DeviceTree, id fdt.NodeId, depth int) {
	n := dt.Node(id)
	indent := strings.Repeat("  ", depth)
	name := n.Name
	if name == "" {
		name = "/"
	}
	fmt.Printf("%s%s {\n", indent, name)
	for _, p := range n.Properties {
		fmt.Printf("%s  %s;\n", indent, p.Name())
	}
	for _, child := range n.Children() {
		printSubtree(dt, child, depth+1)
	}
	fmt.Printf("%s}\n", indent)
}
