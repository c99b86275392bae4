// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders an ExportReport for the terminal or for tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/image-collector/pkg/types"
)

// Write renders r to w in the given format.
func Write(w io.Writer, r types.ExportReport, format types.ReportFormat) error {
	switch format {
	case types.ReportText, "":
		return writeText(w, r)
	case types.ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case types.ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q: use text, yaml, or json", format)
	}
}

func writeText(w io.Writer, r types.ExportReport) error {
	fmt.Fprintf(w, "%s -> %s\n", r.SourceDocumentName, r.TargetFolderName)
	if r.Empty() {
		fmt.Fprintln(w, "no images")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tStatus\tKind\tPath\tDetail")
	fmt.Fprintln(tw, "-\t------\t----\t----\t------")
	for i, o := range r.Outcomes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, o.Status, o.Reference.Kind, o.Reference.RawPath, detail(o))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d exported, %d not found, %d failed\n",
		r.Count(types.OutcomeExported), r.Count(types.OutcomeNotFound), r.Count(types.OutcomeCopyFailed))
	return nil
}

func detail(o types.ExportOutcome) string {
	switch o.Status {
	case types.OutcomeExported:
		return o.TargetPath
	case types.OutcomeCopyFailed:
		return strings.ReplaceAll(o.ErrorDetail, "\n", " ")
	default:
		return ""
	}
}
