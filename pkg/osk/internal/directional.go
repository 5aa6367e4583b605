package internal

import (
	"image"
	"math"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
)

// Direction represents a cardinal direction for navigation.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// DirectionFor maps an arrow key to its direction.
func DirectionFor(code constants.KeyCode) Direction {
	switch code {
	case constants.KeyUp:
		return DirectionUp
	case constants.KeyDown:
		return DirectionDown
	case constants.KeyLeft:
		return DirectionLeft
	case constants.KeyRight:
		return DirectionRight
	default:
		return DirectionNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return ""
	}
}

// DirectionalInput tracks held arrow keys and produces repeats after a delay.
// Hosts whose input source has no auto-repeat (game pads, raw evdev) feed it
// through the engine.
type DirectionalInput struct {
	held struct {
		up, down, left, right bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
}

// NewDirectionalInput creates a DirectionalInput with default timing.
// Default delay is 300ms before first repeat, then 50ms between repeats.
func NewDirectionalInput() DirectionalInput {
	return NewDirectionalInputWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

func NewDirectionalInputWithTiming(delay, interval time.Duration) DirectionalInput {
	return DirectionalInput{
		repeatDelay:    delay,
		repeatInterval: interval,
	}
}

// SetHeld updates the held state for an arrow key at time now.
// Returns true if the key was an arrow key.
func (d *DirectionalInput) SetHeld(code constants.KeyCode, held bool, now time.Time) bool {
	var slot *bool
	switch code {
	case constants.KeyUp:
		slot = &d.held.up
	case constants.KeyDown:
		slot = &d.held.down
	case constants.KeyLeft:
		slot = &d.held.left
	case constants.KeyRight:
		slot = &d.held.right
	default:
		return false
	}
	*slot = held
	d.hasRepeated = false
	d.lastRepeatTime = now
	return true
}

func (d *DirectionalInput) IsHeld() bool {
	return d.held.up || d.held.down || d.held.left || d.held.right
}

// HeldDirection returns the currently held direction.
// If multiple directions are held, priority is: up, down, left, right.
func (d *DirectionalInput) HeldDirection() Direction {
	switch {
	case d.held.up:
		return DirectionUp
	case d.held.down:
		return DirectionDown
	case d.held.left:
		return DirectionLeft
	case d.held.right:
		return DirectionRight
	}
	return DirectionNone
}

// Update returns the direction to repeat at now, or DirectionNone.
// The first repeat occurs after repeatDelay, subsequent repeats after repeatInterval.
func (d *DirectionalInput) Update(now time.Time) Direction {
	if !d.IsHeld() {
		d.lastRepeatTime = now
		d.hasRepeated = false
		return DirectionNone
	}

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if now.Sub(d.lastRepeatTime) >= threshold {
		d.lastRepeatTime = now
		d.hasRepeated = true
		return d.HeldDirection()
	}
	return DirectionNone
}

// Reset clears all held directions and timing state.
func (d *DirectionalInput) Reset() {
	d.held.up = false
	d.held.down = false
	d.held.left = false
	d.held.right = false
	d.hasRepeated = false
}

// visibleRow returns the visible key indices of rows[r].
func visibleRow(keys []Key, rows [][]int, r int) []int {
	if r < 0 || r >= len(rows) {
		return nil
	}
	var out []int
	for _, idx := range rows[r] {
		if idx >= 0 && idx < len(keys) && keys[idx].Visible() {
			out = append(out, idx)
		}
	}
	return out
}

// FindPosition returns the row and column of key idx among visible keys, or
// (-1, -1).
func FindPosition(keys []Key, rows [][]int, idx int) (int, int) {
	for r := range rows {
		for c, k := range visibleRow(keys, rows, r) {
			if k == idx {
				return r, c
			}
		}
	}
	return -1, -1
}

// MoveHorizontal moves idx one key left (delta < 0) or right within its row,
// stopping at the row edges.
func MoveHorizontal(keys []Key, rows [][]int, idx, delta int) int {
	r, c := FindPosition(keys, rows, idx)
	if r < 0 {
		return FirstVisible(keys)
	}
	row := visibleRow(keys, rows, r)
	return row[clamp(c+delta, 0, len(row)-1)]
}

// MoveVertical moves idx to the adjacent row. The target is the key covering
// the same weighted position along its row. ok is false when the move leaves
// the grid above the first row or below the last.
func MoveVertical(keys []Key, rows [][]int, idx, delta int) (target int, ok bool) {
	r, c := FindPosition(keys, rows, idx)
	if r < 0 {
		return FirstVisible(keys), true
	}

	next := r + delta
	for next >= 0 && next < len(rows) && len(visibleRow(keys, rows, next)) == 0 {
		next += delta
	}
	if next < 0 || next >= len(rows) {
		return idx, false
	}

	from := visibleRow(keys, rows, r)
	to := visibleRow(keys, rows, next)
	return to[WeightedColumn(keys, from, c, to)], true
}

// WeightedColumn maps column c of row from to the column of row to whose
// weight span contains the centre of c's weight span.
func WeightedColumn(keys []Key, from []int, c int, to []int) int {
	pos := (weightSum(keys, from[:c]) + keys[from[c]].Weight/2) / weightSum(keys, from)

	total := weightSum(keys, to)
	acc := 0.0
	for j, idx := range to {
		acc += keys[idx].Weight
		if pos*total < acc {
			return j
		}
	}
	return len(to) - 1
}

func weightSum(keys []Key, indices []int) float64 {
	sum := 0.0
	for _, idx := range indices {
		sum += keys[idx].Weight
	}
	return sum
}

// NearestKey returns the visible key whose centre is closest to p, or -1.
func NearestKey(keys []Key, p image.Point) int {
	var all []int
	for i, k := range keys {
		if k.Visible() {
			all = append(all, i)
		}
	}
	if len(all) == 0 {
		return -1
	}
	return nearestOf(keys, all, p)
}

func nearestOf(keys []Key, candidates []int, p image.Point) int {
	best, bestDist := candidates[0], math.Inf(1)
	for _, idx := range candidates {
		c := keys[idx].Center()
		d := math.Hypot(float64(c.X-p.X), float64(c.Y-p.Y))
		if d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

// HitTest returns the visible key containing p, or -1.
func HitTest(keys []Key, p image.Point) int {
	for i, k := range keys {
		if k.Visible() && p.In(k.Rect) {
			return i
		}
	}
	return -1
}
