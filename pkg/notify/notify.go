// Package notify dispatches the native-notification leg of an alarm.
//
// Notification is best-effort: the persisted Notified flag and the terminal
// alarm panel remain the source of truth whether or not the push succeeded,
// so a Notifier error is logged by the caller and never fed back into a
// state transition.
package notify

// Notifier delivers a short titled message to the user's devices.
type Notifier interface {
	Notify(title, message string) error
}

// Noop is the Notifier used when no push credentials are configured.
type Noop struct{}

// Notify discards the message.
func (Noop) Notify(title, message string) error { return nil }
