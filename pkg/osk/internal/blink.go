package internal

import (
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
)

// BlinkPulse is the caret feedback animation: after Start the caret toggles
// a fixed number of times at a fixed interval and then stays visible.
type BlinkPulse struct {
	toggles  int
	interval time.Duration

	remaining int
	next      time.Time
	visible   bool
}

func NewBlinkPulse(toggles int, interval time.Duration) *BlinkPulse {
	if toggles < 0 {
		toggles = constants.DefaultBlinkToggles
	}
	if interval <= 0 {
		interval = constants.DefaultBlinkInterval
	}
	return &BlinkPulse{toggles: toggles, interval: interval, visible: true}
}

// Configure changes the pulse shape. A running pulse keeps its schedule.
func (b *BlinkPulse) Configure(toggles int, interval time.Duration) {
	if toggles >= 0 {
		b.toggles = toggles
	}
	if interval > 0 {
		b.interval = interval
	}
}

// Start (re)schedules a full pulse with the caret visible.
func (b *BlinkPulse) Start(now time.Time) {
	b.visible = true
	b.remaining = b.toggles
	b.next = now.Add(b.interval)
}

// Stop cancels the pulse and leaves the caret visible.
func (b *BlinkPulse) Stop() {
	b.remaining = 0
	b.visible = true
}

// Tick applies every toggle due at now and reports whether visibility
// changed.
func (b *BlinkPulse) Tick(now time.Time) bool {
	before := b.visible
	for b.remaining > 0 && !now.Before(b.next) {
		b.visible = !b.visible
		b.remaining--
		b.next = b.next.Add(b.interval)
	}
	if b.remaining == 0 {
		b.visible = true
	}
	return b.visible != before
}

func (b *BlinkPulse) Visible() bool {
	return b.visible
}

// Active reports whether toggles are still scheduled.
func (b *BlinkPulse) Active() bool {
	return b.remaining > 0
}

// Remaining is the number of toggles left.
func (b *BlinkPulse) Remaining() int {
	return b.remaining
}

// NextIn returns the time until the next toggle, or false when idle.
func (b *BlinkPulse) NextIn(now time.Time) (time.Duration, bool) {
	if b.remaining == 0 {
		return 0, false
	}
	d := b.next.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}
