// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReferenceKind identifies the markdown syntax an image reference was written in.
type ReferenceKind string

const (
	// ReferenceWikilink is the double-bracket embed form: ![[path|size]].
	ReferenceWikilink ReferenceKind = "wikilink"
	// ReferenceInline is the bracket/parenthesis form: ![alt](path).
	ReferenceInline ReferenceKind = "inline"
)

// ImageReference is one mention of an image inside a markdown document.
type ImageReference struct {
	// RawPath is the link path used for resolution: percent-decoded,
	// trimmed, and cut at the first pipe. Never empty.
	RawPath string `json:"raw_path" yaml:"raw_path"`

	// Literal is the captured path text exactly as written in the document.
	Literal string `json:"literal" yaml:"literal"`

	// Kind is the syntax the reference was written in.
	Kind ReferenceKind `json:"kind" yaml:"kind"`

	// Offset is the byte offset of the match in the document.
	Offset int `json:"offset" yaml:"offset"`
}

// OutcomeStatus is the terminal state of exporting one image reference.
type OutcomeStatus string

const (
	OutcomeExported   OutcomeStatus = "exported"
	OutcomeNotFound   OutcomeStatus = "notFound"
	OutcomeCopyFailed OutcomeStatus = "copyFailed"
)

// ExportOutcome records the result of exporting a single ImageReference.
type ExportOutcome struct {
	Reference ImageReference `json:"reference" yaml:"reference"`
	Status    OutcomeStatus  `json:"status" yaml:"status"`

	// ResolvedName is the name of the file the reference resolved to.
	// Empty when Status is OutcomeNotFound.
	ResolvedName string `json:"resolved_name,omitempty" yaml:"resolved_name,omitempty"`

	// TargetPath is the vault path the copy was written (or attempted) to.
	// Empty when Status is OutcomeNotFound.
	TargetPath string `json:"target_path,omitempty" yaml:"target_path,omitempty"`

	// ErrorDetail carries the read or write error text for OutcomeCopyFailed.
	ErrorDetail string `json:"error_detail,omitempty" yaml:"error_detail,omitempty"`
}

// ExportReport is the aggregate result of one export run over one document.
type ExportReport struct {
	SourceDocumentName string `json:"source_document_name" yaml:"source_document_name"`

	// TargetFolderName is "<source basename> images".
	TargetFolderName string `json:"target_folder_name" yaml:"target_folder_name"`

	// Outcomes are ordered by first appearance of each reference in the source.
	Outcomes []ExportOutcome `json:"outcomes" yaml:"outcomes"`
}

// Count returns the number of outcomes with the given status.
func (r ExportReport) Count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// HasFailures reports whether any image was not found or failed to copy.
func (r ExportReport) HasFailures() bool {
	return r.Count(OutcomeExported) < len(r.Outcomes)
}

// Empty reports whether the source document referenced no images.
func (r ExportReport) Empty() bool {
	return len(r.Outcomes) == 0
}
