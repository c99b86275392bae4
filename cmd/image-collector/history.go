// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/image-collector/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past image exports",
	Long: `History reads the export log kept in the vault (by default
.image-collector/history.db). Every export run records the note, the target
folder, and the outcome of each image.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent export runs",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	document, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), history.QueryOptions{Document: document, Limit: limit})
	if err != nil {
		return wrapCommandError(err, "cannot read export history", historyFailedCode)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatRuns(w io.Writer, runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No export runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-40s  %8s  %9s  %6s\n",
		"ID", "Started", "Document", "Exported", "Not found", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 98))
	for _, r := range runs {
		doc := r.Document
		if len(doc) > 40 {
			doc = "..." + doc[len(doc)-37:]
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-40s  %8d  %9d  %6d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), doc,
			r.Exported, r.NotFound, r.CopyFailed)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history with per-image outcomes as YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	document, _ := cmd.Flags().GetString("document")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return wrapCommandError(err, "cannot create export file", historyFailedCode)
		}
		defer f.Close()
		w = f
	}

	opts := history.QueryOptions{Document: document}
	switch format {
	case "yaml", "":
		err = store.ExportYAML(context.Background(), opts, w)
	case "json":
		err = store.ExportJSON(context.Background(), opts, w)
	default:
		return wrapValidationError(fmt.Errorf("unsupported format %q", format), "use yaml or json")
	}
	if err != nil {
		return wrapCommandError(err, "history export failed", historyFailedCode)
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported history to %s\n", outPath)
	}
	return nil
}

// --- shared helpers ---

func openHistory() (*history.Store, error) {
	cfg := loadConfig()
	store, err := history.Open(historyPath(cfg, absVault(cfg.VaultDir)))
	if err != nil {
		return nil, wrapCommandError(err, "cannot open export history", historyFailedCode)
	}
	return store, nil
}

func init() {
	historyCmd.PersistentFlags().String("history-db", "", "history database path (default: <vault>/.image-collector/history.db)")
	historyCmd.PersistentFlags().String("document", "", "only runs for this vault path")

	historyListCmd.Flags().Int("limit", 20, "maximum runs to list (-1 = all)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	historyCmd.PersistentPreRunE = bindHistoryDB
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}

// bindHistoryDB applies an explicit --history-db flag over the configured path.
func bindHistoryDB(cmd *cobra.Command, args []string) error {
	if f := cmd.Flags().Lookup("history-db"); f != nil && f.Changed {
		viper.Set("history.db", f.Value.String())
	}
	return nil
}

// absVault resolves the vault directory for commands that do not open it.
func absVault(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
