package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNetlist(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "circuit.txt")
	content := "net_f = | A B\nZ = ~ net_f\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores flag defaults so Changed does not leak between runs
func resetFlags() {
	for _, fs := range []*pflag.FlagSet{rootCmd.PersistentFlags(), generateCmd.Flags(), faultsCmd.Flags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	netlist := writeNetlist(t, dir)
	output := filepath.Join(dir, "output.txt")

	_, err := execute(t, "generate",
		"--circuit", netlist,
		"--fault", "net_f/0",
		"--inputs", "A,B",
		"--output", output,
		"--log", filepath.Join(dir, "run.log"),
	)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"[A, B] = [0, 0], Z = 1",
		"[A, B] = [1, 0], Z = 1",
		"[A, B] = [0, 1], Z = 1",
		"[A, B] = [1, 1], Z = 1",
	}, "\n")+"\n", string(content))

	log, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "Writing 4 test vectors")
	assert.Contains(t, string(log), `"run":`)
}

func TestFaultsCommand(t *testing.T) {
	dir := t.TempDir()
	netlist := writeNetlist(t, dir)

	out, err := execute(t, "faults",
		"--circuit", netlist,
		"--inputs", "A,B",
		"--log", filepath.Join(dir, "run.log"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "net_f stuck-at-0")
	assert.Contains(t, out, "Fault coverage: 8/8 (100.0%)")
}

func TestGenerateCommandErrors(t *testing.T) {
	dir := t.TempDir()
	netlist := writeNetlist(t, dir)

	_, err := execute(t, "generate",
		"--circuit", netlist,
		"--node", "net_f",
		"--type", "SA2",
		"--log", filepath.Join(dir, "run.log"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fault type")

	_, err = execute(t, "generate",
		"--circuit", filepath.Join(dir, "missing.txt"),
		"--node", "net_f",
		"--type", "SA0",
		"--log", filepath.Join(dir, "run.log"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netlist source unavailable")
}
