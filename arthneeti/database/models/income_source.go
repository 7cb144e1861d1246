package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Income source types. Freelance income is stochastic: some months it
// simply does not arrive.
const (
	IncomeSalary     = "SALARY"
	IncomeBusiness   = "BUSINESS"
	IncomeInvestment = "INVESTMENT"
	IncomeFreelance  = "FREELANCE"
	IncomeRental     = "RENTAL"
	IncomeAllowance  = "ALLOWANCE"
	IncomeOther      = "OTHER"
)

// IncomeSource is a named monthly credit owned by a session.
type IncomeSource struct {
	bun.BaseModel `bun:"table:income_sources,alias:inc"`

	ID        int64  `bun:"id,pk,autoincrement"`
	SessionID int64  `bun:"session_id,notnull"`
	Name      string `bun:"name,notnull"`

	Amount      int64   `bun:"amount,notnull"`
	Type        string  `bun:"type,notnull,default:'SALARY'"`
	Variability float64 `bun:"variability,notnull,default:0"`
	Frequency   string  `bun:"frequency,notnull,default:'MONTHLY'"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
