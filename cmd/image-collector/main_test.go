// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/image-collector/internal/history"
)

// execute runs the CLI with args after resetting flags and viper overrides
// left behind by earlier runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range []*cobra.Command{rootCmd, exportCmd, historyCmd, historyListCmd, historyExportCmd} {
		reset := func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	viper.Set("history.enabled", true)
	viper.Set("history.db", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupVault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"journal/trip.md":   "---\ntitle: Summer Trip\n---\n![[beach.png|300]]\n![map](../assets/map%20v2.jpg)\n![[missing.gif]]\n",
		"journal/beach.png": "PNG",
		"assets/map v2.jpg": "JPG",
		"plain.md":          "no images, just [a link](x.png)",
		"assets/notes.txt":  "text",
	}
	for p, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func TestExportCommand(t *testing.T) {
	dir := setupVault(t)

	out, err := execute(t, "export", "--vault", dir, "--no-history", "journal/trip.md")
	require.NoError(t, err)

	assert.Contains(t, out, "Exported beach.png to trip images/beach.png")
	assert.Contains(t, out, "Exported map v2.jpg to trip images/map v2.jpg")
	assert.Contains(t, out, "Image not found: missing.gif")

	data, err := os.ReadFile(filepath.Join(dir, "trip images", "beach.png"))
	require.NoError(t, err)
	assert.Equal(t, "PNG", string(data))
	_, err = os.Stat(filepath.Join(dir, ".image-collector"))
	assert.True(t, os.IsNotExist(err), "--no-history must not create the database")
}

func TestExportCommandRerun(t *testing.T) {
	dir := setupVault(t)

	_, err := execute(t, "export", "--vault", dir, "--no-history", "journal/trip.md")
	require.NoError(t, err)

	out, err := execute(t, "export", "--vault", dir, "--no-history", "journal/trip.md")
	require.NoError(t, err, "an existing folder never fails the export")
	assert.Contains(t, out, "Failed to export image beach.png")

	out, err = execute(t, "export", "--vault", dir, "--no-history", "--overwrite", "journal/trip.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported beach.png to trip images/beach.png")
}

func TestExportCommandNoImages(t *testing.T) {
	dir := setupVault(t)

	out, err := execute(t, "export", "--vault", dir, "--no-history", "plain.md")
	require.NoError(t, err)
	assert.Contains(t, out, "No images found in the markdown file.")

	_, err = os.Stat(filepath.Join(dir, "plain images"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommandNotMarkdown(t *testing.T) {
	dir := setupVault(t)

	out, err := execute(t, "export", "--vault", dir, "--no-history", "assets/notes.txt")
	require.Error(t, err)
	assert.Contains(t, out, "No active markdown file.")
}

func TestExportCommandArguments(t *testing.T) {
	dir := setupVault(t)

	_, err := execute(t, "export", "--vault", dir, "--no-history")
	require.Error(t, err)

	_, err = execute(t, "export", "--vault", dir, "--no-history", "nope.md")
	require.Error(t, err)
}

func TestExportAllWithReportAndHistory(t *testing.T) {
	dir := setupVault(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := execute(t, "export", "--vault", dir, "--all", "--history-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "exported: journal/trip.md -> trip images (2 exported, 1 not found, 0 failed)")
	assert.Contains(t, out, "skipped:  plain.md (no images)")
	assert.Contains(t, out, "Batch summary:")

	out, err = execute(t, "history", "list", "--vault", dir, "--history-db", dbPath, "--json")
	require.NoError(t, err)
	var runs []history.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)

	byDoc := map[string]history.Run{}
	for _, r := range runs {
		byDoc[r.Document] = r
	}
	assert.Equal(t, "Summer Trip", byDoc["journal/trip.md"].Title)
	assert.Equal(t, 2, byDoc["journal/trip.md"].Exported)
	assert.Equal(t, 0, byDoc["plain.md"].Total())

	out, err = execute(t, "history", "export", "--vault", dir, "--history-db", dbPath, "--format", "json", "--document", "journal/trip.md")
	require.NoError(t, err)
	var entries []history.ExportEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Outcomes, 3)
}

func TestExportSingleWithReport(t *testing.T) {
	dir := setupVault(t)

	out, err := execute(t, "export", "--vault", dir, "--no-history", "--report", "text", filepath.Join(dir, "journal", "trip.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "trip.md -> trip images")
	assert.Contains(t, out, "2 exported, 1 not found, 0 failed")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "image-collector dev\n", out)
}
