package notify

import "github.com/gen2brain/beeep"

const appName = "togglr"

// Notifier posts desktop toasts. A disabled notifier is a no-op, so callers
// never need to branch on the setting.
type Notifier struct {
	Enabled bool
}

func New(enabled bool) *Notifier {
	return &Notifier{Enabled: enabled}
}

// Updated surfaces the confirmation shown after a successful commit.
func (n *Notifier) Updated() error {
	return n.notify("Entry updated.")
}

func (n *Notifier) notify(message string) error {
	if !n.Enabled {
		return nil
	}
	return beeep.Notify(appName, message, "")
}
