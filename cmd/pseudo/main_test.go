package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.pseudo")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestTokenizeSubcommandRunsToCompletion(t *testing.T) {
	path := writeTempSource(t, "f(x)\n    return x\n")
	require.Equal(t, 0, Test([]string{"tokenize", path}))
}

func TestParseSubcommandRunsToCompletion(t *testing.T) {
	path := writeTempSource(t, "f(x)\n    return x\n")
	require.Equal(t, 0, Test([]string{"parse", path}))
}

func TestCompileSubcommandRunsToCompletion(t *testing.T) {
	path := writeTempSource(t, "f(x)\n    return x + 1\n")
	require.Equal(t, 0, Test([]string{"compile", path}))
}

func TestInterpretSubcommandRunsToCompletion(t *testing.T) {
	path := writeTempSource(t, "Test()\n    return 1 + 1\n")
	require.Equal(t, 0, Test([]string{"interpret", path}))
}

func TestVMRunSubcommandQuietNoWaitRunsToCompletion(t *testing.T) {
	path := writeTempSource(t, "Test()\n    return 1 + 1\n")
	require.Equal(t, 0, Test([]string{"vm-run", "--quiet", "--no-wait", path}))
}

func TestMissingFileArgumentFails(t *testing.T) {
	require.NotEqual(t, 0, Test([]string{"interpret"}))
}

func TestUnknownSourceFileFails(t *testing.T) {
	require.NotEqual(t, 0, Test([]string{"interpret", filepath.Join(t.TempDir(), "missing.pseudo")}))
}
