package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Expense categories
const (
	ExpenseHousing   = "HOUSING"
	ExpenseFood      = "FOOD"
	ExpenseUtilities = "UTILITIES"
	ExpenseTransport = "TRANSPORT"
	ExpenseLifestyle = "LIFESTYLE"
	ExpenseDebt      = "DEBT"
)

// RecurringExpense is a named monthly drain owned by a session.
// Cancellation flags the row instead of deleting it so the ledger
// stays auditable.
type RecurringExpense struct {
	bun.BaseModel `bun:"table:recurring_expenses,alias:re"`

	ID        int64  `bun:"id,pk,autoincrement"`
	SessionID int64  `bun:"session_id,notnull"`
	Name      string `bun:"name,notnull"`

	Amount        int64   `bun:"amount,notnull"`
	Category      string  `bun:"category,notnull"`
	IsEssential   bool    `bun:"is_essential,notnull,default:false"`
	InflationRate float64 `bun:"inflation_rate,notnull,default:0"`

	StartMonth     int  `bun:"start_month,notnull,default:1"`
	IsCancelled    bool `bun:"is_cancelled,notnull,default:false"`
	CancelledMonth int  `bun:"cancelled_month,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Inflate applies the annual inflation rate once, integer-truncated.
func (e *RecurringExpense) Inflate() int64 {
	old := e.Amount
	e.Amount = int64(float64(e.Amount) * (1 + e.InflationRate))
	return e.Amount - old
}
