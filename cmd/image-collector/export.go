// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/image-collector/internal/exporter"
	"github.com/pdiddy/image-collector/internal/history"
	"github.com/pdiddy/image-collector/internal/logging"
	"github.com/pdiddy/image-collector/internal/notify"
	"github.com/pdiddy/image-collector/internal/report"
	"github.com/pdiddy/image-collector/internal/vault"
	"github.com/pdiddy/image-collector/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [notes...]",
	Short: "Export the images embedded in markdown notes",
	Long: `Export copies every image a note embeds into "<note> images" at the
vault root. Notes are given as vault paths or file paths inside the vault;
--all exports every markdown note in the vault.

One notice is printed per image: exported, not found, or failed. An existing
target folder is reused. Existing files in it are not overwritten unless
--overwrite is set.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		viper.Set("history.enabled", false)
	}
	bindHistoryDB(cmd, args)
	cfg := loadConfig()

	if !all && len(args) == 0 {
		return wrapValidationError(errors.New("no notes given"), "pass one or more notes, or --all")
	}

	provider, err := logging.NewProvider(cfg.Log)
	if err != nil {
		return wrapValidationError(err, "invalid logging configuration")
	}
	log := provider.Logger("cli")

	v, err := vault.Open(cfg.VaultDir, vault.WithOverwrite(cfg.Overwrite))
	if err != nil {
		return wrapValidationError(err, "cannot open vault")
	}

	docs, err := selectNotes(v, all, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sink := notify.NewWriterSink(out, "")
	opts := []exporter.Option{exporter.WithLogger(provider.Logger("exporter"))}

	if cfg.History.Enabled {
		store, err := history.Open(historyPath(cfg, v.Root()))
		if err != nil {
			return wrapCommandError(err, "cannot open export history", historyFailedCode)
		}
		defer store.Close()
		opts = append(opts, exporter.WithAfterExport(recordRun(store, log)))
	}

	exp := exporter.New(v, v, v, sink, opts...)
	ctx := context.Background()

	if len(docs) == 1 && !all {
		return exportOne(ctx, exp, sink, docs[0], cfg.Report, cmd)
	}

	result := exp.ExportBatch(ctx, docs, out)
	if result.Failed > 0 {
		return wrapCommandError(fmt.Errorf("%d note(s) failed export", result.Failed), "batch export incomplete", exportFailedCode)
	}
	return nil
}

func exportOne(ctx context.Context, exp *exporter.Exporter, sink exporter.NotificationSink, doc types.FileRef, format types.ReportFormat, cmd *cobra.Command) error {
	rep, err := exp.ExportDocument(ctx, doc)
	if err != nil {
		if goerrors.IsCategory(err, goerrors.CategoryValidation) {
			sink.Notify(exporter.NoticeNoActiveMarkdown)
			return err
		}
		return wrapCommandError(err, "export failed", exportFailedCode)
	}
	if format == "" {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return report.Write(cmd.OutOrStdout(), rep, format)
}

// selectNotes turns the command arguments into vault files.
func selectNotes(v *vault.Vault, all bool, args []string) ([]types.FileRef, error) {
	if all {
		return v.Markdown(), nil
	}
	docs := make([]types.FileRef, 0, len(args))
	for _, arg := range args {
		ref, err := v.Lookup(arg)
		if err != nil {
			return nil, wrapValidationError(err, fmt.Sprintf("note %q not found in vault", arg))
		}
		docs = append(docs, ref)
	}
	return docs, nil
}

// recordRun stores each export in the history database. Recording failures
// are logged and never affect the export.
func recordRun(store *history.Store, log logging.Logger) exporter.AfterExportFunc {
	return func(ctx context.Context, doc types.FileRef, text string, rep types.ExportReport, startedAt time.Time) {
		if _, err := store.Record(ctx, doc.Path, vault.Title(text), rep, startedAt); err != nil {
			log.Warn("history.record_failed", "document", doc.Path, "error", err)
		}
	}
}

// historyPath returns the configured history database, or the default one
// inside the vault.
func historyPath(cfg types.CollectorConfig, vaultRoot string) string {
	if cfg.History.DBPath != "" {
		return cfg.History.DBPath
	}
	return history.DefaultPath(vaultRoot)
}

func init() {
	exportCmd.Flags().Bool("all", false, "export every markdown note in the vault")
	exportCmd.Flags().Bool("overwrite", false, "replace files that already exist in the target folder")
	exportCmd.Flags().String("report", "", "print a report after a single-note export: text, yaml, or json")
	exportCmd.Flags().Bool("no-history", false, "do not record this run in the export history")
	exportCmd.Flags().String("history-db", "", "history database path (default: <vault>/.image-collector/history.db)")

	viper.BindPFlag("overwrite", exportCmd.Flags().Lookup("overwrite"))
	viper.BindPFlag("report", exportCmd.Flags().Lookup("report"))

	rootCmd.AddCommand(exportCmd)
}
