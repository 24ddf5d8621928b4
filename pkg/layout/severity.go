package layout

// Tier is the deterministic visual severity classification of a node,
// derived from its width relative to the snapshot's maximum width. Renderers
// use it for visual weighting: atoms render calm, the widest compounds loud.
type Tier int

const (
	// TierInfo is the calmest tier. Atoms always classify as TierInfo,
	// regardless of the snapshot's maximum width.
	TierInfo Tier = iota
	// TierDebug covers narrow compounds (normalized position <= 0.4).
	TierDebug
	// TierWarn covers mid-range compounds (normalized position in (0.4, 0.7]).
	TierWarn
	// TierError covers the widest compounds (normalized position > 0.7).
	TierError
)

// String returns the tier name as used in renderer styling.
func (t Tier) String() string {
	switch t {
	case TierInfo:
		return "info"
	case TierDebug:
		return "debug"
	case TierWarn:
		return "warn"
	case TierError:
		return "error"
	default:
		return "unknown"
	}
}

// Severity thresholds on the normalized width position. Ties fall to the
// lower tier (strict greater-than).
const (
	errorThreshold = 0.7
	warnThreshold  = 0.4
)

// Severity classifies a width against the snapshot maximum. It is pure and
// deterministic, and monotonic non-decreasing in width for a fixed maxWidth.
//
// Atoms (width 1) are always [TierInfo]. Compounds are placed at the
// normalized position t = (width-1)/(maxWidth-1), with the denominator
// floored at 1 so a snapshot of only atoms never divides by zero.
func Severity(width, maxWidth int) Tier {
	if width <= 1 {
		return TierInfo
	}

	denom := maxWidth - 1
	if denom < 1 {
		denom = 1
	}
	t := float64(width-1) / float64(denom)

	switch {
	case t > errorThreshold:
		return TierError
	case t > warnThreshold:
		return TierWarn
	default:
		return TierDebug
	}
}
