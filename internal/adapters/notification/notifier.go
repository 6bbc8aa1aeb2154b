// Package notification provides desktop notification and chime utilities.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/pomoday/pomoday/internal/ports"
)

// Notifier handles desktop notifications and the completion chime. Both are
// best-effort: callers log failures and move on.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
	sound   bool
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a notifier with the given toggles.
func New(enabled, sound bool) *Notifier {
	return &Notifier{enabled: enabled, sound: sound}
}

// SetEnabled toggles desktop notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetSound toggles the completion chime.
func (n *Notifier) SetSound(sound bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sound = sound
}

// IsEnabled returns true if desktop notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, body string) error {
	if !n.IsEnabled() {
		return nil
	}
	return beeep.Notify(title, body, "")
}

// Chime plays the session-complete beep if sound is enabled.
func (n *Notifier) Chime() error {
	n.mu.Lock()
	sound := n.sound
	n.mu.Unlock()
	if !sound {
		return nil
	}
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// NotifyFocusComplete announces a finished focus interval and the break that
// comes next.
func (n *Notifier) NotifyFocusComplete(nextBreak string) error {
	title := "🍅 Focus complete!"
	body := fmt.Sprintf("Great work. Time for a %s break.", nextBreak)
	return n.Notify(title, body)
}

// NotifyBreakComplete announces a finished break.
func (n *Notifier) NotifyBreakComplete() error {
	return n.Notify("☕ Break over!", "Ready to focus?")
}
