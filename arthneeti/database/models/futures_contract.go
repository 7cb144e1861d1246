package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FuturesContract records a forward disposal of held units: the payout
// happened at creation, the row exists for settlement analytics.
type FuturesContract struct {
	bun.BaseModel `bun:"table:futures_contracts,alias:fc"`

	ID        int64  `bun:"id,pk,autoincrement"`
	SessionID int64  `bun:"session_id,notnull"`
	Sector    string `bun:"sector,notnull"`

	Units          float64 `bun:"units,notnull"`
	StrikePrice    int64   `bun:"strike_price,notnull"`
	SpotPrice      int64   `bun:"spot_price,notnull"`
	DurationMonths int     `bun:"duration_months,notnull"`
	CreatedMonth   int     `bun:"created_month,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
