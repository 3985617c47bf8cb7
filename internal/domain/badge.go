package domain

// BadgeLevel classifies a volunteer by cumulative validated hours.
type BadgeLevel string

const (
	BadgeBronze BadgeLevel = "BRONZE"
	BadgeSilver BadgeLevel = "SILVER"
	BadgeGold   BadgeLevel = "GOLD"
)

// Badge tier boundaries in hours (inclusive lower bounds).
const (
	SilverThresholdHours = 50
	GoldThresholdHours   = 200
)

// BadgeForHours maps cumulative validated hours to a badge tier.
// It is the single source of truth for the tier: every mutation of a
// volunteer's total hours must run its result through this function.
func BadgeForHours(totalHours float64) BadgeLevel {
	switch {
	case totalHours >= GoldThresholdHours:
		return BadgeGold
	case totalHours >= SilverThresholdHours:
		return BadgeSilver
	default:
		return BadgeBronze
	}
}
