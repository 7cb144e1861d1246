package engine

import "github.com/arthneeti/game-engine/arthneeti/database/models"

// LevelSpec declares one progression tier. Reaching EITHER the month or
// the literacy threshold is sufficient; the highest qualifying tier
// wins.
type LevelSpec struct {
	Tier          int
	MinMonth      int
	MinLiteracy   int
	MaxDifficulty int
	// Categories is the allow-list of scenario categories; nil means all.
	Categories []string
}

var levelTable = []LevelSpec{
	{
		Tier: 1, MinMonth: 1, MinLiteracy: 0, MaxDifficulty: 2,
		Categories: []string{models.CategoryNeeds, models.CategoryWants, models.CategoryEmergency, models.CategorySocial},
	},
	{
		Tier: 2, MinMonth: 4, MinLiteracy: 20, MaxDifficulty: 3,
		Categories: []string{models.CategoryNeeds, models.CategoryWants, models.CategoryEmergency, models.CategorySocial, models.CategoryInvestment, models.CategoryNews},
	},
	{
		Tier: 3, MinMonth: 7, MinLiteracy: 45, MaxDifficulty: 4,
		Categories: []string{models.CategoryNeeds, models.CategoryWants, models.CategoryEmergency, models.CategorySocial, models.CategoryInvestment, models.CategoryNews, models.CategoryQuiz, models.CategoryTrap},
	},
	{
		Tier: 4, MinMonth: 10, MinLiteracy: 70, MaxDifficulty: 5,
		Categories: nil,
	},
}

// Named unlock gates, expressed as minimum tiers.
const (
	UnlockLoans           = 2
	UnlockInvesting       = 2
	UnlockDiversification = 3
	UnlockMastery         = 4
)

// computeLevel returns the highest tier whose month or literacy
// threshold is met. Monotonic in both inputs.
func computeLevel(month, literacy int) int {
	level := 1
	for _, spec := range levelTable {
		if month >= spec.MinMonth || literacy >= spec.MinLiteracy {
			if spec.Tier > level {
				level = spec.Tier
			}
		}
	}
	return level
}

// levelSpec returns the tier definition, defaulting to tier 1.
func levelSpec(tier int) LevelSpec {
	for _, spec := range levelTable {
		if spec.Tier == tier {
			return spec
		}
	}
	return levelTable[0]
}

// refreshLevel raises the session's level to the computed tier. It is a
// ratchet: the stored level never goes down. Returns true when the
// level changed.
func refreshLevel(s *models.GameSession) bool {
	computed := computeLevel(s.CurrentMonth, s.FinancialLiteracy)
	if computed > s.Level {
		s.Level = computed
		return true
	}
	return false
}
