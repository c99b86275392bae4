// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf, "")
	sink.Notify("Exported a.png to trip images/a.png")
	sink.Notify("Image not found: b.png")

	assert.Equal(t, "Exported a.png to trip images/a.png\nImage not found: b.png\n", buf.String())
}

func TestWriterSinkPrefix(t *testing.T) {
	var buf bytes.Buffer
	NewWriterSink(&buf, "[trip.md] ").Notify("No images found in the markdown file.")
	assert.Equal(t, "[trip.md] No images found in the markdown file.\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	assert.Empty(t, r.Messages())

	r.Notify("first")
	r.Notify("second")
	got := r.Messages()
	assert.Equal(t, []string{"first", "second"}, got)

	got[0] = "mutated"
	assert.Equal(t, "first", r.Messages()[0], "Messages must return a copy")

	r.Reset()
	assert.Empty(t, r.Messages())
}
