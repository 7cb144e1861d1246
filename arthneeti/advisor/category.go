package advisor

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Advice categories the curated pools cover.
const (
	CategorySaving    = "saving"
	CategoryInvesting = "investing"
	CategoryDebt      = "debt"
	CategoryBudgeting = "budgeting"
	CategoryScams     = "scams"
	CategoryGeneral   = "general"
)

var categoryKeywords = map[string][]string{
	CategorySaving:    {"save", "saving", "savings", "emergency fund", "bachat", "fd", "deposit"},
	CategoryInvesting: {"invest", "stock", "share", "mutual fund", "sip", "gold", "market", "ipo", "nivesh", "trading"},
	CategoryDebt:      {"loan", "debt", "emi", "credit", "borrow", "interest", "karz", "udhaar"},
	CategoryBudgeting: {"budget", "expense", "spend", "rent", "salary", "income", "kharcha"},
	CategoryScams:     {"scam", "fraud", "guaranteed", "double", "ponzi", "scheme", "otp", "dhokha"},
}

// DetectCategory maps a free-text question to an advice category with a
// confidence score. Exact keyword hits score highest; fuzzy matches
// catch misspellings; anything else is general advice.
func DetectCategory(question string) (string, float64) {
	q := strings.ToLower(question)

	bestCategory := CategoryGeneral
	bestScore := 0.0
	for category, keywords := range categoryKeywords {
		score := 0.0
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				score += 1.0
				continue
			}
			for _, word := range strings.Fields(q) {
				if len(word) > 3 && fuzzy.RankMatch(word, kw) >= 0 {
					score += 0.5
					break
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestCategory = category
		}
	}

	if bestScore == 0 {
		return CategoryGeneral, 0.3
	}
	confidence := bestScore / 3.0
	if confidence > 1.0 {
		confidence = 1.0
	}
	return bestCategory, confidence
}
