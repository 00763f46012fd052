// Package notify is the in-process notification bus between the core and any
// presentation surface.
package notify

import "sync"

// Level tags a notification for presentation.
type Level string

// Notification levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is a single user-facing event.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Notifier fans notifications out to subscribers. Delivery is best-effort: a
// subscriber that stops draining loses events rather than blocking the
// publisher.
type Notifier struct {
	mu   sync.Mutex
	subs []chan Notification
}

// Subscribe returns a channel of future notifications.
func (n *Notifier) Subscribe() <-chan Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan Notification, 16)
	n.subs = append(n.subs, ch)
	return ch
}

// Publish delivers a notification to all subscribers.
func (n *Notifier) Publish(level Level, title string, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- Notification{Level: level, Title: title, Message: message}:
		default:
		}
	}
}

// Success publishes a success notification.
func (n *Notifier) Success(title string, message string) {
	n.Publish(LevelSuccess, title, message)
}

// Error publishes an error notification.
func (n *Notifier) Error(title string, message string) {
	n.Publish(LevelError, title, message)
}

// Warning publishes a warning notification.
func (n *Notifier) Warning(title string, message string) {
	n.Publish(LevelWarning, title, message)
}

// Info publishes an info notification.
func (n *Notifier) Info(title string, message string) {
	n.Publish(LevelInfo, title, message)
}
