// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/image-collector/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() types.ExportReport {
	return types.ExportReport{
		SourceDocumentName: "trip.md",
		TargetFolderName:   "trip images",
		Outcomes: []types.ExportOutcome{
			{
				Reference:    types.ImageReference{RawPath: "beach.png", Literal: "beach.png|400", Kind: types.ReferenceWikilink},
				Status:       types.OutcomeExported,
				ResolvedName: "beach.png",
				TargetPath:   "trip images/beach.png",
			},
			{
				Reference: types.ImageReference{RawPath: "gone.png", Literal: "gone.png", Kind: types.ReferenceInline},
				Status:    types.OutcomeNotFound,
			},
			{
				Reference:    types.ImageReference{RawPath: "dup.png", Literal: "dup.png", Kind: types.ReferenceWikilink},
				Status:       types.OutcomeCopyFailed,
				ResolvedName: "dup.png",
				TargetPath:   "trip images/dup.png",
				ErrorDetail:  "file already exists: trip images/dup.png",
			},
		},
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("vault", ".image-collector", "history.db"), DefaultPath("vault"))
}

func TestRecordAndOutcomes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	id, err := s.Record(ctx, "journal/trip.md", "Summer Trip", sampleReport(), started)
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := s.Runs(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "journal/trip.md", run.Document)
	assert.Equal(t, "Summer Trip", run.Title)
	assert.Equal(t, "trip images", run.TargetFolder)
	assert.True(t, started.Equal(run.StartedAt))
	assert.Equal(t, 1, run.Exported)
	assert.Equal(t, 1, run.NotFound)
	assert.Equal(t, 1, run.CopyFailed)
	assert.Equal(t, 3, run.Total())

	outcomes, err := s.Outcomes(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleReport().Outcomes, outcomes)
}

func TestRecordEmptyReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := types.ExportReport{SourceDocumentName: "plain.md", TargetFolderName: "plain images"}
	id, err := s.Record(ctx, "plain.md", "", report, time.Now())
	require.NoError(t, err)

	outcomes, err := s.Outcomes(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestRunsOrderingAndFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	docs := []string{"a.md", "b.md", "a.md", "c.md"}
	for i, doc := range docs {
		// Sub-second offsets check that ordering does not depend on
		// timestamp string length.
		started := base.Add(time.Duration(i) * 500 * time.Millisecond)
		_, err := s.Record(ctx, doc, "", sampleReport(), started)
		require.NoError(t, err)
	}

	runs, err := s.Runs(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 4)
	assert.Equal(t, "c.md", runs[0].Document, "newest first")
	assert.Equal(t, "a.md", runs[3].Document)

	runs, err = s.Runs(ctx, QueryOptions{Document: "a.md"})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.Runs(ctx, QueryOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestExportFormats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, "journal/trip.md", "Summer Trip", sampleReport(), time.Now())
	require.NoError(t, err)

	var yamlOut bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, QueryOptions{}, &yamlOut))
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "journal/trip.md", fromYAML[0]["document"])
	assert.Len(t, fromYAML[0]["outcomes"], 3)

	var jsonOut bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, QueryOptions{}, &jsonOut))
	var fromJSON []ExportEntry
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "Summer Trip", fromJSON[0].Title)
	assert.Equal(t, types.OutcomeCopyFailed, fromJSON[0].Outcomes[2].Status)
}
