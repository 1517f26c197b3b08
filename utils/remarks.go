package utils

// RemarkTier maps a percentage band to the message and severity shown on a
// result view. Severity is a semantic color key the frontend understands.
type RemarkTier struct {
	MinPercentage int    `json:"min_percentage"`
	Message       string `json:"message"`
	Severity      string `json:"severity"`
}

// remarkTiers is scanned highest threshold first; the first tier whose
// MinPercentage the score meets wins. Adding a tier is a data change only.
var remarkTiers = []RemarkTier{
	{MinPercentage: 90, Message: "Outstanding! You are in top MDCAT form.", Severity: "success"},
	{MinPercentage: 75, Message: "Great work! A little more polish and you are there.", Severity: "info"},
	{MinPercentage: 50, Message: "Decent effort. Revise the weak chapters and retry.", Severity: "warning"},
	{MinPercentage: 0, Message: "Needs work. Start with the basics and build up.", Severity: "destructive"},
}

// RemarkFor returns the tier for a percentage. Thresholds are inclusive
// lower bounds: exactly 90 lands in the top tier.
func RemarkFor(percentage int) RemarkTier {
	for _, tier := range remarkTiers {
		if percentage >= tier.MinPercentage {
			return tier
		}
	}
	return remarkTiers[len(remarkTiers)-1]
}
