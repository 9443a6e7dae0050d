package session

// Notice is a transient user-facing notification
type Notice struct {
	Title   string
	Message string
	IsError bool
}

// Notifier receives notices the controller wants surfaced to the user
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(n Notice)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notice) { f(n) }

// NopNotifier discards all notices
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(Notice) {}
