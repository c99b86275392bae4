// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers user-visible notices produced during an export.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// WriterSink prints each notice as one line on an io.Writer.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewWriterSink returns a sink writing to w. A non-empty prefix is printed
// before every notice.
func NewWriterSink(w io.Writer, prefix string) *WriterSink {
	return &WriterSink{w: w, prefix: prefix}
}

// Notify writes message. Write errors are ignored; notices are fire-and-forget.
func (s *WriterSink) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s%s\n", s.prefix, message)
}

// Recorder keeps notices in memory in the order they were sent.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Notify appends message.
func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the recorded notices.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reset discards all recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
