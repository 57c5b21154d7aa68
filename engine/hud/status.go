// Package hud holds the on-screen text and overlays that sit on top of the 3D view: the
// bootstrap status line, the informational overlay and the aim reticle.
package hud

import (
	"log"
	"sync"
)

// StatusSink is a write-only text display for human-readable progress. Writes never block.
type StatusSink interface {
	// SetStatus replaces the displayed status text.
	//
	// Parameters:
	//   - text: the new status
	SetStatus(text string)
}

// StatusFunc adapts a function to the StatusSink interface.
type StatusFunc func(text string)

// SetStatus calls f(text).
func (f StatusFunc) SetStatus(text string) {
	f(text)
}

// LogStatus returns a StatusSink that writes each status to the standard logger.
func LogStatus() StatusSink {
	return StatusFunc(func(text string) {
		log.Printf("[Status] %s", text)
	})
}

// MultiStatus returns a StatusSink that forwards every status to each non-nil sink.
//
// Parameters:
//   - sinks: the sinks to fan out to
//
// Returns:
//   - StatusSink: the combined sink
func MultiStatus(sinks ...StatusSink) StatusSink {
	kept := make([]StatusSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return StatusFunc(func(text string) {
		for _, s := range kept {
			s.SetStatus(text)
		}
	})
}

// StatusHistory is a StatusSink that remembers every status it was given.
type StatusHistory struct {
	mu    sync.Mutex
	texts []string
}

// SetStatus appends text to the history.
func (h *StatusHistory) SetStatus(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.texts = append(h.texts, text)
}

// Texts returns a copy of every status in the order received.
func (h *StatusHistory) Texts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.texts))
	copy(out, h.texts)
	return out
}

// Last returns the most recent status, or "" if none was set.
func (h *StatusHistory) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.texts) == 0 {
		return ""
	}
	return h.texts[len(h.texts)-1]
}
