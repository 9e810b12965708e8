package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "cat", NormalizeWord("  CaT \r"))
	assert.Equal(t, "", NormalizeWord(" \t "))
}

func TestIsLowerAlpha(t *testing.T) {
	assert.True(t, IsLowerAlpha("spell"))
	assert.False(t, IsLowerAlpha("Spell"))
	assert.False(t, IsLowerAlpha("spe ll"))
	assert.False(t, IsLowerAlpha(""))
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, ParseYesNo("y", false))
	assert.True(t, ParseYesNo(" YES ", false))
	assert.False(t, ParseYesNo("n", true))
	assert.True(t, ParseYesNo("", true))
	assert.False(t, ParseYesNo("", false))
	assert.False(t, ParseYesNo("maybe", false))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "370,105", FormatWithCommas(370105))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,000", FormatWithCommas(-12000))
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
}

func TestTOMLRoundTrip(t *testing.T) {
	type section struct {
		Workers int  `toml:"workers"`
		Enabled bool `toml:"enabled"`
	}
	type doc struct {
		Solver section `toml:"solver"`
	}

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, EnsureDir(filepath.Dir(path)))
	require.NoError(t, SaveTOMLFile(doc{Solver: section{Workers: 4, Enabled: true}}, path))
	assert.True(t, FileExists(path))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, 4, got.Solver.Workers)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(raw, "solver")
	require.True(t, ok)
	workers, ok := ExtractInt(sec, "workers")
	assert.True(t, ok)
	assert.Equal(t, 4, workers)
	enabled, ok := ExtractBool(sec, "enabled")
	assert.True(t, ok)
	assert.True(t, enabled)
	_, ok = ExtractString(sec, "workers")
	assert.False(t, ok, "wrong type")
	_, ok = ExtractInt(sec, "enabled")
	assert.False(t, ok, "bool is not an int")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	result := CheckDirStatus(dir)
	assert.True(t, result.Exists)
	assert.True(t, result.Writable)
	assert.NoError(t, result.Error)
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestGetDictPath(t *testing.T) {
	execDir, configDir := t.TempDir(), t.TempDir()
	pr := &PathResolver{executableDir: execDir, configDir: configDir}
	name := "spellserve-test-words.txt"

	assert.Equal(t, name, pr.GetDictPath(name), "unresolved paths are returned as given")

	inConfig := filepath.Join(configDir, name)
	require.NoError(t, os.WriteFile(inConfig, []byte("cat\n"), 0o644))
	assert.Equal(t, inConfig, pr.GetDictPath(name))

	inExec := filepath.Join(execDir, name)
	require.NoError(t, os.WriteFile(inExec, []byte("cat\n"), 0o644))
	assert.Equal(t, inExec, pr.GetDictPath(name), "the executable directory wins over the config directory")

	abs := filepath.Join(t.TempDir(), "missing.txt")
	assert.Equal(t, abs, pr.GetDictPath(abs))
}
