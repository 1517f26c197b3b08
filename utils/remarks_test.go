package utils

import "testing"

func TestRemarkFor_InclusiveBoundaries(t *testing.T) {
	tests := []struct {
		percentage   int
		wantSeverity string
	}{
		{100, "success"},
		{90, "success"}, // boundary is inclusive
		{89, "info"},
		{75, "info"},
		{74, "warning"},
		{50, "warning"},
		{49, "destructive"},
		{0, "destructive"},
	}

	for _, tc := range tests {
		tier := RemarkFor(tc.percentage)
		if tier.Severity != tc.wantSeverity {
			t.Errorf("RemarkFor(%d): expected severity %s, got %s", tc.percentage, tc.wantSeverity, tier.Severity)
		}
	}
}

func TestRemarkFor_FirstMatchWins(t *testing.T) {
	// 95 satisfies every tier's lower bound; the highest threshold must win.
	tier := RemarkFor(95)
	if tier.MinPercentage != 90 {
		t.Errorf("Expected top tier (min 90), got min %d", tier.MinPercentage)
	}
}
