// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exporter

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/pdiddy/image-collector/pkg/types"
)

const unsupportedDocumentCode = "UNSUPPORTED_DOCUMENT"

// ErrUnsupportedDocument is the source of the error ExportDocument returns
// for documents whose kind cannot carry embedded images.
var ErrUnsupportedDocument = errors.New("document kind does not support image export")

// ExportDocument is the command entry point: it checks that doc supports
// image export, reads it, and exports its images into TargetFolderName(doc).
// Errors are returned only for work that happens before the export starts.
func (e *Exporter) ExportDocument(ctx context.Context, doc types.FileRef) (types.ExportReport, error) {
	if !doc.Kind().SupportsImageExport() {
		err := fmt.Errorf("%s (%s): %w", doc.Path, doc.Kind(), ErrUnsupportedDocument)
		return types.ExportReport{}, goerrors.Wrap(err, goerrors.CategoryValidation, "image export requires a markdown document").
			WithTextCode(unsupportedDocumentCode)
	}

	startedAt := e.now()
	text, err := e.reader.Read(ctx, doc)
	if err != nil {
		return types.ExportReport{}, fmt.Errorf("reading %s: %w", doc.Path, err)
	}

	report := e.ExportImages(ctx, text, doc, TargetFolderName(doc))

	if e.after != nil {
		e.after(ctx, doc, text, report, startedAt)
	}
	return report, nil
}
