// Command dtbtool loads a flattened device tree blob from disk and
// exercises internal/fdt outside the kernel's own boot path: dumping the
// parsed tree, validating its structure block, or iterating one node's
// reg property. The moral equivalent of fdtdump/dtc for this repo.
package main

func main() {
	execute()
}
