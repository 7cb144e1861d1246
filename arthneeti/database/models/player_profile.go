package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Career stages. The stage shapes both the starting state of a new
// session and the context fed to the AI game master.
const (
	StageStudentFunded   = "STUDENT_FULLY_FUNDED"
	StageStudentPartTime = "STUDENT_PART_TIME"
	StageFresher         = "FRESHER"
	StageProfessional    = "PROFESSIONAL"
	StageBusinessOwner   = "BUSINESS_OWNER"
	StageRetired         = "RETIRED"
)

// PlayerProfile is the cross-session aggregate for one user: best-ever
// results plus the persona profile used for scenario generation.
// Updated only at game finalization (bests) or by explicit profile
// edits (career fields).
type PlayerProfile struct {
	bun.BaseModel `bun:"table:player_profiles,alias:pp"`

	ID     int64  `bun:"id,pk,autoincrement"`
	UserID string `bun:"user_id,notnull,unique"`

	CareerStage         string `bun:"career_stage,notnull,default:'FRESHER'"`
	RiskAppetite        string `bun:"risk_appetite,notnull,default:'MODERATE'"`
	ResponsibilityLevel string `bun:"responsibility_level,notnull,default:'SELF'"`

	HighestWealth int64 `bun:"highest_wealth,notnull,default:0"`
	// HighestScore is the best financial literacy reached in any run.
	HighestScore  int   `bun:"highest_score,notnull,default:0"`
	BestCredit    int   `bun:"best_credit,notnull,default:0"`
	BestHappiness int   `bun:"best_happiness,notnull,default:0"`
	// StockProfit is the largest unrealized market gain held at game
	// over across runs, not a lifetime sum.
	StockProfit int64 `bun:"stock_profit,notnull,default:0"`
	TotalGames  int   `bun:"total_games,notnull,default:0"`

	Badges []string `bun:"badges,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// CareerStageDisplay returns the human-readable stage name.
func (p *PlayerProfile) CareerStageDisplay() string {
	switch p.CareerStage {
	case StageStudentFunded:
		return "Student (Fully Funded)"
	case StageStudentPartTime:
		return "Student (Part Time)"
	case StageFresher:
		return "Fresher"
	case StageProfessional:
		return "Professional"
	case StageBusinessOwner:
		return "Business Owner"
	case StageRetired:
		return "Retired"
	}
	return "Fresher"
}
