package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PlayerChoice is the append-only turn log. A null ChoiceID records a
// skip; the row still marks the card as seen.
type PlayerChoice struct {
	bun.BaseModel `bun:"table:player_choices,alias:pc"`

	ID        int64  `bun:"id,pk,autoincrement"`
	SessionID int64  `bun:"session_id,notnull"`
	CardID    int64  `bun:"card_id,notnull"`
	ChoiceID  *int64 `bun:"choice_id"`

	ChosenAt time.Time `bun:"chosen_at,notnull,default:current_timestamp"`
}
