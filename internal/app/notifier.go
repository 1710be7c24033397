package app

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives user-facing event notifications. It is injected
// explicitly into whichever component needs to report an event; there
// is no ambient bus.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Level, string)

func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Level, string) {}
