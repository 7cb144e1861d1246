package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MarketHistory holds the pre-generated (session, sector, month, price)
// trajectory. Generated once at session start for the whole horizon and
// revealed one month at a time.
type MarketHistory struct {
	bun.BaseModel `bun:"table:market_history,alias:mh"`

	ID        int64  `bun:"id,pk,autoincrement"`
	SessionID int64  `bun:"session_id,notnull"`
	Sector    string `bun:"sector,notnull"`
	Month     int    `bun:"month,notnull"`
	Price     int64  `bun:"price,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
