// Package input derives the character counter shown beneath the composer.
package input

import "unicode/utf8"

// MaxChars is the largest text the classifier accepts.
const MaxChars = 5000

const (
	warningAbove  = 4000
	criticalAbove = 4500
)

// Tier buckets the counter so the renderer can colour it.
type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierCritical
)

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Stats is the counter state for one version of the composer text.
type Stats struct {
	Count int
	Tier  Tier
}

// Track counts characters (runes, not bytes) and picks the display tier.
func Track(text string) Stats {
	count := utf8.RuneCountInString(text)
	return Stats{Count: count, Tier: tierFor(count)}
}

func tierFor(count int) Tier {
	switch {
	case count > criticalAbove:
		return TierCritical
	case count > warningAbove:
		return TierWarning
	default:
		return TierNormal
	}
}
