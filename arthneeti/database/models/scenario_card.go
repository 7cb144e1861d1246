package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Scenario categories. The allow-list a player sees grows with their
// level (see engine level table).
const (
	CategoryNeeds      = "NEEDS"
	CategoryWants      = "WANTS"
	CategoryEmergency  = "EMERGENCY"
	CategoryInvestment = "INVESTMENT"
	CategorySocial     = "SOCIAL"
	CategoryTrap       = "TRAP"
	CategoryNews       = "NEWS"
	CategoryQuiz       = "QUIZ"
)

// ScenarioCard is a decision point presented to the player. Cards are
// immutable once issued; AI-authored cards carry IsGenerated and are
// excluded from deck queries so they are only ever seen by the session
// they were generated for.
type ScenarioCard struct {
	bun.BaseModel `bun:"table:scenario_cards,alias:sc"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description,type:text"`

	// Localized copies, optional
	TitleHi       string `bun:"title_hi"`
	DescriptionHi string `bun:"description_hi,type:text"`
	TitleMr       string `bun:"title_mr"`
	DescriptionMr string `bun:"description_mr,type:text"`

	Category    string `bun:"category,notnull,default:'WANTS'"`
	Difficulty  int    `bun:"difficulty,notnull,default:1"`
	MinMonth    int    `bun:"min_month,notnull,default:1"`
	IsActive    bool   `bun:"is_active,notnull,default:true"`
	IsGenerated bool   `bun:"is_generated,notnull,default:false"`

	// News-linked cards move the market when resolved: every listed
	// sector's price is multiplied by NewsMultiplier and momentum is
	// biased in the shock's direction.
	NewsSectors    []string `bun:"news_sectors,type:jsonb"`
	NewsMultiplier float64  `bun:"news_multiplier,notnull,default:0"`

	Choices []*Choice `bun:"rel:has-many,join:id=card_id"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Choice is one of the 2-3 options attached to a card. Immutable once
// created.
type Choice struct {
	bun.BaseModel `bun:"table:choices,alias:ch"`

	ID     int64 `bun:"id,pk,autoincrement"`
	CardID int64 `bun:"card_id,notnull"`

	Text string `bun:"text,notnull"`

	WealthImpact    int64 `bun:"wealth_impact,notnull,default:0"`
	HappinessImpact int   `bun:"happiness_impact,notnull,default:0"`
	CreditImpact    int   `bun:"credit_impact,notnull,default:0"`
	LiteracyImpact  int   `bun:"literacy_impact,notnull,default:0"`

	Feedback      string `bun:"feedback,type:text"`
	IsRecommended bool   `bun:"is_recommended,notnull,default:false"`

	// Optional recurring-expense side effects
	AddExpenseName    string `bun:"add_expense_name"`
	AddExpenseAmount  int64  `bun:"add_expense_amount,notnull,default:0"`
	CancelExpenseName string `bun:"cancel_expense_name"`
}
