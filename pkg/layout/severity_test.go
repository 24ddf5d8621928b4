package layout

import "testing"

func TestSeverity(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		maxWidth int
		want     Tier
	}{
		{"atom is always info", 1, 3, TierInfo},
		{"atom in huge snapshot", 1, 1000, TierInfo},
		{"mid compound", 2, 3, TierWarn},
		{"widest compound", 3, 3, TierError},
		{"narrow compound in wide snapshot", 2, 100, TierDebug},
		{"exactly at warn threshold stays debug", 5, 11, TierDebug},  // t = 0.4
		{"just above warn threshold", 6, 11, TierWarn},               // t = 0.5
		{"exactly at error threshold stays warn", 8, 11, TierWarn},   // t = 0.7
		{"just above error threshold", 9, 11, TierError},             // t = 0.8
		{"compound with degenerate max", 2, 1, TierError},            // denominator floored at 1
		{"compound equal to max of two", 2, 2, TierError},
		{"zero width treated as atom", 0, 10, TierInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Severity(tt.width, tt.maxWidth); got != tt.want {
				t.Errorf("Severity(%d, %d) = %v, want %v", tt.width, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestSeverityMonotonic(t *testing.T) {
	// For a fixed maximum, widening a node must never lower its tier.
	const maxWidth = 20
	prev := TierInfo
	for width := 1; width <= maxWidth; width++ {
		got := Severity(width, maxWidth)
		if got < prev {
			t.Fatalf("Severity(%d, %d) = %v, below previous %v", width, maxWidth, got, prev)
		}
		prev = got
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierInfo, "info"},
		{TierDebug, "debug"},
		{TierWarn, "warn"},
		{TierError, "error"},
		{Tier(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
