package ranking

// Reason labels attached to ranked results.
const (
	ReasonVisual  = "visual similarity"
	ReasonColor   = "color match"
	ReasonKeyword = "keyword match"
)

const (
	reasonThreshold = 0.3
	minReasons      = 2
)

var backfillOrder = []string{ReasonKeyword, ReasonColor, ReasonVisual}

// Explain lists the signals above threshold (visual, color, keyword) and
// backfills to at least two distinct reasons.
func Explain(keyword, colorScore, embedding float64) []string {
	reasons := make([]string, 0, 3)
	if embedding > reasonThreshold {
		reasons = append(reasons, ReasonVisual)
	}
	if colorScore > reasonThreshold {
		reasons = append(reasons, ReasonColor)
	}
	if keyword > reasonThreshold {
		reasons = append(reasons, ReasonKeyword)
	}

	for _, r := range backfillOrder {
		if len(reasons) >= minReasons {
			break
		}
		if !contains(reasons, r) {
			reasons = append(reasons, r)
		}
	}
	return reasons
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
