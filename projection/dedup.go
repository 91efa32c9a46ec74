package projection

import (
	"time"

	"chatlink/domain"
)

// DefaultDedupWindow is the span within which two content-identical messages
// from the same sender are treated as one delivery.
const DefaultDedupWindow = time.Second

// Deduplicator decides whether an inbound message is already materialized
// locally. The message id is the primary key; the content/sender/window
// heuristic is a safety net for retried sends whose ids legitimately differ.
// Once the server guarantees id round-trip the heuristic can be deleted
// without touching callers.
type Deduplicator struct {
	window time.Duration
	seen   map[string]struct{}
	recent []fingerprint
}

type fingerprint struct {
	senderID string
	content  string
	at       time.Time
}

func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &Deduplicator{
		window: window,
		seen:   make(map[string]struct{}),
	}
}

// IsDuplicate reports whether m matches a message already registered.
// It does not register m; call Register once the message is materialized.
func (d *Deduplicator) IsDuplicate(m domain.Message) bool {
	if _, ok := d.seen[m.ID]; ok {
		return true
	}
	for _, fp := range d.recent {
		if fp.senderID == m.SenderID && fp.content == m.Content &&
			absDuration(m.CreatedAt.Sub(fp.at)) < d.window {
			return true
		}
	}
	return false
}

// Register records a materialized message for future duplicate checks and
// prunes fingerprints that fell out of the window.
func (d *Deduplicator) Register(m domain.Message) {
	d.seen[m.ID] = struct{}{}

	cutoff := m.CreatedAt.Add(-d.window)
	kept := d.recent[:0]
	for _, fp := range d.recent {
		if fp.at.After(cutoff) {
			kept = append(kept, fp)
		}
	}
	d.recent = append(kept, fingerprint{senderID: m.SenderID, content: m.Content, at: m.CreatedAt})
}

// Reset drops all registered state, used when the transcript is cleared.
func (d *Deduplicator) Reset() {
	d.seen = make(map[string]struct{})
	d.recent = nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
