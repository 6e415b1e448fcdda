package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rvkernel/internal/fdt/fdttest"
)

func writeMinimalBlob(t *testing.T) string {
	t.Helper()
	b := fdttest.NewBuilder()
	b.BeginNode("")
	b.PropU32("#address-cells", 1)
	b.PropU32("#size-cells", 1)
	b.BeginNode("memory@0")
	b.PropU32Array("reg", []uint32{0, 0x1000})
	b.EndNode()
	b.EndNode()

	path := filepath.Join(t.TempDir(), "minimal.dtb")
	require.NoError(t, os.WriteFile(path, b.Build(), 0o644))
	return path
}

func TestRunDumpOnMinimalBlob(t *testing.T) {
	path := writeMinimalBlob(t)
	require.NoError(t, runDump(path))
}

func TestRunValidateSucceedsOnWellFormedBlob(t *testing.T) {
	path := writeMinimalBlob(t)
	require.NoError(t, runValidate(path))

	dt, err := parseFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, dt.NodeCount())
}

func TestRunRegPrintsSingleEntry(t *testing.T) {
	path := writeMinimalBlob(t)
	require.NoError(t, runReg(path, "/memory@0"))
}

func TestFindNodeReturnsErrorForUnknownPath(t *testing.T) {
	path := writeMinimalBlob(t)
	dt, err := parseFile(path)
	require.NoError(t, err)

	_, err = findNode(dt, "/no-such-node")
	require.Error(t, err)
}
