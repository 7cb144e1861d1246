package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Terminal reasons, in precedence order.
const (
	ReasonBankruptcy = "BANKRUPTCY"
	ReasonBurnout    = "BURNOUT"
	ReasonCompleted  = "COMPLETED"
)

// GameHistory is one finished playthrough, kept for leaderboards.
type GameHistory struct {
	bun.BaseModel `bun:"table:game_history,alias:gh"`

	ID        int64  `bun:"id,pk,autoincrement"`
	UserID    string `bun:"user_id,notnull"`
	SessionID int64  `bun:"session_id,notnull"`

	FinalWealth    int64  `bun:"final_wealth,notnull"`
	PortfolioValue int64  `bun:"portfolio_value,notnull"`
	FinalHappiness int    `bun:"final_happiness,notnull"`
	FinalCredit    int    `bun:"final_credit,notnull"`
	Literacy       int    `bun:"literacy,notnull"`
	MonthsPlayed   int    `bun:"months_played,notnull"`
	Persona        string `bun:"persona,notnull"`
	Reason         string `bun:"reason,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
