// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exporter

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/image-collector/pkg/types"
)

// BatchResult holds the outcome of exporting several documents.
type BatchResult struct {
	// Documents with at least one image reference.
	Exported int
	// Documents without image references.
	Empty int
	// Documents that could not be exported at all.
	Failed int

	ImagesExported   int
	ImagesNotFound   int
	ImagesCopyFailed int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Exported + r.Empty + r.Failed
}

// HasFailures reports whether any document or image failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.ImagesNotFound > 0 || r.ImagesCopyFailed > 0
}

// ExportBatch exports each document in turn, printing one status line per
// document to w and a summary at the end. A failing document does not stop
// the batch.
func (e *Exporter) ExportBatch(ctx context.Context, docs []types.FileRef, w io.Writer) BatchResult {
	var result BatchResult
	for _, doc := range docs {
		report, err := e.ExportDocument(ctx, doc)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", doc.Path, err)
			result.Failed++
			continue
		}
		if report.Empty() {
			fmt.Fprintf(w, "skipped:  %s (no images)\n", doc.Path)
			result.Empty++
			continue
		}

		exported := report.Count(types.OutcomeExported)
		notFound := report.Count(types.OutcomeNotFound)
		copyFailed := report.Count(types.OutcomeCopyFailed)
		result.Exported++
		result.ImagesExported += exported
		result.ImagesNotFound += notFound
		result.ImagesCopyFailed += copyFailed

		fmt.Fprintf(w, "exported: %s -> %s (%d exported, %d not found, %d failed)\n",
			doc.Path, report.TargetFolderName, exported, notFound, copyFailed)
	}

	fmt.Fprintf(w, "\nBatch summary: %d documents exported, %d without images, %d failed (total: %d); images: %d exported, %d not found, %d failed\n",
		result.Exported, result.Empty, result.Failed, result.Total(),
		result.ImagesExported, result.ImagesNotFound, result.ImagesCopyFailed)
	return result
}
