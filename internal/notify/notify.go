package notify

import "sync"

// Level classifies a notification for presentation.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
	LevelWarning
	LevelInfo
)

// Notification is a transient, user-visible message (a toast).
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives transient user-visible messages. Implementations must be
// safe for concurrent use; store operations run on arbitrary goroutines.
type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Warning(string) {}
func (discard) Info(string)    {}

// Recorder collects notifications for inspection in tests.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *Recorder) Success(message string) { r.record(LevelSuccess, message) }
func (r *Recorder) Error(message string)   { r.record(LevelError, message) }
func (r *Recorder) Warning(message string) { r.record(LevelWarning, message) }
func (r *Recorder) Info(message string)    { r.record(LevelInfo, message) }

func (r *Recorder) record(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Level: level, Message: message})
}

// All returns a copy of everything recorded so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Errors returns only the error-level messages recorded so far.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.notifications {
		if n.Level == LevelError {
			out = append(out, n.Message)
		}
	}
	return out
}

// Reset clears the recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
