package internal

import (
	"image"

	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
)

// Signature identifies a key across rebuilds of the key set.
type Signature struct {
	Kind    KeyKind
	Code    keymap.Code
	HasCode bool
	Caption string
	Output  string
}

func (k Key) Signature() Signature {
	return Signature{Kind: k.Kind, Code: k.Code, HasCode: k.HasCode, Caption: k.Caption, Output: k.Output}
}

// TieBreak decides between several keys that match a signature equally well.
type TieBreak int

const (
	// TieBreakFirstMatch picks the first matching key in layout order.
	TieBreakFirstMatch TieBreak = iota
	// TieBreakNearest picks the match closest to the previously highlighted key.
	TieBreakNearest
	// TieBreakFirstVisible gives up on ambiguous matches and uses the first
	// visible key.
	TieBreakFirstVisible
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakNearest:
		return "nearest"
	case TieBreakFirstVisible:
		return "first-visible"
	default:
		return "first-match"
	}
}

// ParseTieBreak accepts the names returned by String. Unknown names select
// TieBreakFirstMatch.
func ParseTieBreak(s string) TieBreak {
	switch s {
	case "nearest":
		return TieBreakNearest
	case "first-visible":
		return TieBreakFirstVisible
	default:
		return TieBreakFirstMatch
	}
}

// FindSignature returns the index of the visible key that best matches sig,
// or -1. Keys of a different kind never match. For character keys a physical
// code match beats a caption match, which beats an output match. prev is the
// rectangle of the key that was highlighted before the rebuild.
func FindSignature(keys []Key, sig Signature, policy TieBreak, prev image.Rectangle) int {
	var candidates []int
	if sig.Kind != KeyCharacter {
		candidates = matching(keys, sig.Kind, func(Key) bool { return true })
	} else {
		tiers := []func(Key) bool{
			func(k Key) bool { return sig.HasCode && k.HasCode && k.Code == sig.Code },
			func(k Key) bool { return sig.Caption != "" && k.Caption == sig.Caption },
			func(k Key) bool { return sig.Output != "" && k.Output == sig.Output },
		}
		for _, tier := range tiers {
			if candidates = matching(keys, sig.Kind, tier); len(candidates) > 0 {
				break
			}
		}
	}

	switch {
	case len(candidates) == 0:
		return -1
	case len(candidates) == 1:
		return candidates[0]
	}

	switch policy {
	case TieBreakNearest:
		if prev.Empty() {
			return candidates[0]
		}
		return nearestOf(keys, candidates, rectCenter(prev))
	case TieBreakFirstVisible:
		return FirstVisible(keys)
	default:
		return candidates[0]
	}
}

func matching(keys []Key, kind KeyKind, pred func(Key) bool) []int {
	var out []int
	for i, k := range keys {
		if k.Kind == kind && k.Visible() && pred(k) {
			out = append(out, i)
		}
	}
	return out
}

// FirstVisible returns the first key with an area, or -1.
func FirstVisible(keys []Key) int {
	for i, k := range keys {
		if k.Visible() {
			return i
		}
	}
	return -1
}

// PendingSignature carries one signature from an activation to the next
// rebuild. Take empties it.
type PendingSignature struct {
	sig Signature
	set bool
}

func (p *PendingSignature) Set(sig Signature) {
	p.sig = sig
	p.set = true
}

func (p *PendingSignature) Take() (Signature, bool) {
	if !p.set {
		return Signature{}, false
	}
	sig := p.sig
	p.sig = Signature{}
	p.set = false
	return sig, true
}

func (p *PendingSignature) Pending() bool {
	return p.set
}

func rectCenter(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
