// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exporter copies the images embedded in a markdown note into a
// per-note folder. It owns no I/O of its own: reading notes, resolving links,
// and moving bytes are delegated to host collaborators, and every per-image
// failure is recorded in the report rather than returned.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/pdiddy/image-collector/internal/extract"
	"github.com/pdiddy/image-collector/internal/logging"
	"github.com/pdiddy/image-collector/pkg/types"
)

// Notices shown to the user.
const (
	NoticeNoImages         = "No images found in the markdown file."
	NoticeNoActiveMarkdown = "No active markdown file."
)

// DocumentReader returns the text of a document.
type DocumentReader interface {
	Read(ctx context.Context, doc types.FileRef) (string, error)
}

// LinkResolver maps a link path, as written in the note at originPath, to a
// concrete file. The resolution rules belong to the host.
type LinkResolver interface {
	ResolveLink(rawPath, originPath string) (types.FileRef, bool)
}

// BinaryStore creates folders and moves binary content. CreateFolder returns
// an error wrapping fs.ErrExist when the folder is already present.
type BinaryStore interface {
	CreateFolder(ctx context.Context, name string) error
	ReadBinary(ctx context.Context, f types.FileRef) ([]byte, error)
	WriteBinary(ctx context.Context, path string, data []byte) error
}

// NotificationSink receives user-visible notices. Fire-and-forget.
type NotificationSink interface {
	Notify(message string)
}

// AfterExportFunc is called once per exported document, including documents
// without images. text is the document content the report was built from.
type AfterExportFunc func(ctx context.Context, doc types.FileRef, text string, report types.ExportReport, startedAt time.Time)

// Exporter runs image exports against one set of host collaborators.
type Exporter struct {
	reader   DocumentReader
	resolver LinkResolver
	store    BinaryStore
	sink     NotificationSink
	log      logging.Logger
	after    AfterExportFunc
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithAfterExport registers a hook run after each ExportDocument.
func WithAfterExport(fn AfterExportFunc) Option {
	return func(e *Exporter) { e.after = fn }
}

// New creates an Exporter. Hosts that implement all three capabilities
// (such as a vault) are passed three times.
func New(reader DocumentReader, resolver LinkResolver, store BinaryStore, sink NotificationSink, opts ...Option) *Exporter {
	e := &Exporter{
		reader:   reader,
		resolver: resolver,
		store:    store,
		sink:     sink,
		log:      logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TargetFolderName derives the per-note image folder: "<basename> images".
func TargetFolderName(doc types.FileRef) string {
	return doc.Basename + " images"
}

// ExportImages extracts the image references in text and copies each
// resolved image into targetFolder, strictly in document order. It never
// returns an error: misses and copy failures become outcomes, and folder
// creation failures are ignored so an existing folder never blocks a re-run.
func (e *Exporter) ExportImages(ctx context.Context, text string, source types.FileRef, targetFolder string) types.ExportReport {
	report := types.ExportReport{
		SourceDocumentName: source.Name,
		TargetFolderName:   targetFolder,
	}

	refs := extract.ImageReferences(text)
	if len(refs) == 0 {
		e.sink.Notify(NoticeNoImages)
		e.log.Info("export.no_images", "document", source.Path)
		return report
	}

	e.log.Info("export.start", "document", source.Path, "references", len(refs), "folder", targetFolder)

	if err := e.store.CreateFolder(ctx, targetFolder); err != nil {
		if errors.Is(err, fs.ErrExist) {
			e.log.Debug("export.folder_exists", "folder", targetFolder)
		} else {
			e.log.Warn("export.folder_create_failed", "folder", targetFolder, "error", err)
		}
	}

	report.Outcomes = make([]types.ExportOutcome, 0, len(refs))
	for _, ref := range refs {
		report.Outcomes = append(report.Outcomes, e.exportOne(ctx, ref, source, targetFolder))
	}

	e.log.Info("export.done",
		"document", source.Path,
		"exported", report.Count(types.OutcomeExported),
		"not_found", report.Count(types.OutcomeNotFound),
		"copy_failed", report.Count(types.OutcomeCopyFailed),
	)
	return report
}

func (e *Exporter) exportOne(ctx context.Context, ref types.ImageReference, source types.FileRef, targetFolder string) types.ExportOutcome {
	outcome := types.ExportOutcome{Reference: ref}

	file, ok := e.resolver.ResolveLink(ref.RawPath, source.Path)
	if !ok {
		outcome.Status = types.OutcomeNotFound
		e.sink.Notify(fmt.Sprintf("Image not found: %s", ref.RawPath))
		e.log.Error("image.not_found", "document", source.Path, "path", ref.RawPath)
		return outcome
	}

	outcome.ResolvedName = file.Name
	outcome.TargetPath = path.Join(targetFolder, file.Name)

	if err := e.copyFile(ctx, file, outcome.TargetPath); err != nil {
		outcome.Status = types.OutcomeCopyFailed
		outcome.ErrorDetail = err.Error()
		e.sink.Notify(fmt.Sprintf("Failed to export image %s: %v", file.Name, err))
		e.log.Error("image.copy_failed", "document", source.Path, "image", file.Path, "error", err)
		return outcome
	}

	outcome.Status = types.OutcomeExported
	e.sink.Notify(fmt.Sprintf("Exported %s to %s", file.Name, outcome.TargetPath))
	e.log.Debug("image.exported", "image", file.Path, "target", outcome.TargetPath)
	return outcome
}

func (e *Exporter) copyFile(ctx context.Context, file types.FileRef, target string) error {
	data, err := e.store.ReadBinary(ctx, file)
	if err != nil {
		return err
	}
	return e.store.WriteBinary(ctx, target, data)
}
