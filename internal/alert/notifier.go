// Package alert posts periodic section congestion digests to chat platforms (Slack, Discord).
package alert

import "context"

// Sidebar color hints for digest severity.
const (
	ColorInfo    = "#439fe0"
	ColorWarning = "#e8a317"
)

// Notifier is the interface that platform-specific implementations must
// satisfy. Each notifier handles message delivery for a single chat
// platform.
type Notifier interface {
	// Send delivers a digest message to the platform.
	Send(ctx context.Context, msg Message) error

	// Close releases any platform resources.
	Close() error
}

// Message is a digest formatted for display in chat.
type Message struct {
	Title    string  // headline (e.g. "Section Congestion Digest")
	Body     string  // detail text
	Severity string  // "info" or "warning"
	Color    string  // sidebar color hint
	Fields   []Field // key-value metadata pairs
}

// Field is a key-value pair displayed alongside the digest body.
type Field struct {
	Name  string
	Value string
	Short bool // hint: render side-by-side with another field
}
