package notify

import (
	"fmt"

	"github.com/gregdel/pushover"
)

// Pushover sends dose alarms through the Pushover push service.
type Pushover struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

// NewPushover builds a Pushover notifier from an application API token and a
// user (or device) key.
func NewPushover(apiToken, userKey string) *Pushover {
	return &Pushover{
		app:       pushover.New(apiToken),
		recipient: pushover.NewRecipient(userKey),
	}
}

// Notify pushes a high-priority message so the alarm breaks through quiet
// hours on most devices.
func (p *Pushover) Notify(title, message string) error {
	msg := pushover.NewMessageWithTitle(message, title)
	msg.Priority = pushover.PriorityHigh
	if _, err := p.app.SendMessage(msg, p.recipient); err != nil {
		return fmt.Errorf("pushover send: %w", err)
	}
	return nil
}

var _ Notifier = (*Pushover)(nil)
