// Package notify is the operator notification surface: success
// confirmations and failure reasons flow through a Notifier regardless
// of whether the console is running as a CLI or the TUI dashboard.
package notify

import (
	"sync"
	"time"
)

// Kind is the severity of a notification.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is one surfaced message.
type Notification struct {
	Title       string
	Description string
	Kind        Kind
	Timestamp   time.Time
}

// Notifier is the output side channel of the view controllers.
type Notifier interface {
	Notify(title, description string, kind Kind)
}

// Func adapts a function into a Notifier.
type Func func(title, description string, kind Kind)

// Notify implements Notifier.
func (f Func) Notify(title, description string, kind Kind) {
	f(title, description, kind)
}

// Buffer stores notifications for later display, e.g. the TUI status
// line. It is safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	messages []Notification
	onNotify func(Notification)
}

// NewBuffer creates a buffering notifier. onNotify, if non-nil, is
// invoked for every message as it arrives.
func NewBuffer(onNotify func(Notification)) *Buffer {
	return &Buffer{
		messages: make([]Notification, 0),
		onNotify: onNotify,
	}
}

// Notify implements Notifier.
func (b *Buffer) Notify(title, description string, kind Kind) {
	b.mu.Lock()
	n := Notification{
		Title:       title,
		Description: description,
		Kind:        kind,
		Timestamp:   time.Now(),
	}
	b.messages = append(b.messages, n)
	callback := b.onNotify
	b.mu.Unlock()

	if callback != nil {
		callback(n)
	}
}

// Latest returns the most recent notification, if any.
func (b *Buffer) Latest() (Notification, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.messages) == 0 {
		return Notification{}, false
	}
	return b.messages[len(b.messages)-1], true
}

// All returns a copy of every buffered notification.
func (b *Buffer) All() []Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Notification, len(b.messages))
	copy(out, b.messages)
	return out
}

// Clear drops all buffered notifications.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = b.messages[:0]
}
