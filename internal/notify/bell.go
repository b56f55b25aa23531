package notify

import (
	"fmt"
	"os"
	"time"
)

// Bell manages terminal bell notifications with debounce. Long renders
// run unattended, so the bell marks animations reaching a final state.
type Bell struct {
	debounce  time.Duration
	lastRing  time.Time
	triggerOn map[string]bool
}

// NewBell creates a Bell with the given debounce interval and trigger states.
func NewBell(debounce time.Duration, states []string) *Bell {
	triggerOn := make(map[string]bool, len(states))
	for _, s := range states {
		triggerOn[s] = true
	}
	return &Bell{
		debounce:  debounce,
		triggerOn: triggerOn,
	}
}

// Ring attempts to ring the terminal bell for the given pipeline state.
// Returns true if the bell actually rang.
func (b *Bell) Ring(state string, now time.Time) bool {
	if !b.triggerOn[state] {
		return false
	}
	if now.Sub(b.lastRing) < b.debounce {
		return false
	}

	fmt.Fprint(os.Stderr, "\a")
	b.lastRing = now
	return true
}
