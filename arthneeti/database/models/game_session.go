package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GameSession is the aggregate root of one playthrough. The JSONB maps
// (prices, trends, portfolio, funds, applications) are only mutated
// through the accessor methods below so their invariants hold on every
// write: prices stay positive, units stay non-negative, happiness and
// credit stay inside their bands.
type GameSession struct {
	bun.BaseModel `bun:"table:game_sessions,alias:gs"`

	ID     int64  `bun:"id,pk,autoincrement"`
	UserID string `bun:"user_id,notnull"`

	CurrentMonth      int   `bun:"current_month,notnull,default:1"`
	Wealth            int64 `bun:"wealth,notnull"`
	Happiness         int   `bun:"happiness,notnull"`
	CreditScore       int   `bun:"credit_score,notnull"`
	FinancialLiteracy int   `bun:"financial_literacy,notnull,default:0"`
	Lifelines         int   `bun:"lifelines,notnull,default:3"`
	Level             int   `bun:"level,notnull,default:1"`
	IsActive          bool  `bun:"is_active,notnull,default:true"`

	MarketPrices    map[string]int64       `bun:"market_prices,type:jsonb"`
	MarketTrends    map[string]int         `bun:"market_trends,type:jsonb"`
	Portfolio       map[string]float64     `bun:"portfolio,type:jsonb"`
	PurchaseHistory []PurchaseRecord       `bun:"purchase_history,type:jsonb"`
	FundNAVs        map[string]float64     `bun:"fund_navs,type:jsonb"`
	FundHoldings    map[string]FundHolding `bun:"fund_holdings,type:jsonb"`
	IPOApplications []IPOApplication       `bun:"ipo_applications,type:jsonb"`

	GameLog             string `bun:"game_log,type:text"`
	FinalReport         string `bun:"final_report,type:text"`
	MonthlyExpenseTotal int64  `bun:"monthly_expense_total,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

type PurchaseRecord struct {
	Sector string  `json:"sector"`
	Units  float64 `json:"units"`
	Price  int64   `json:"price"`
	Month  int     `json:"month"`
}

type FundHolding struct {
	Units    float64 `json:"units"`
	Invested int64   `json:"invested"`
}

// IPO application lifecycle: APPLIED until the lock-in month passes,
// then PROCESSED with the settlement credited in one lump sum.
const (
	IPOStatusApplied   = "APPLIED"
	IPOStatusProcessed = "PROCESSED"
)

type IPOApplication struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Month  int    `json:"month"`
}

const (
	HappinessMin = 0
	HappinessMax = 100
	CreditMin    = 300
	CreditMax    = 900
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyHappiness adds a delta and clamps to [0,100].
func (s *GameSession) ApplyHappiness(delta int) {
	s.Happiness = clamp(s.Happiness+delta, HappinessMin, HappinessMax)
}

// ApplyCredit adds a delta and clamps to [300,900].
func (s *GameSession) ApplyCredit(delta int) {
	s.CreditScore = clamp(s.CreditScore+delta, CreditMin, CreditMax)
}

func (s *GameSession) Price(sector string) int64 {
	return s.MarketPrices[sector]
}

// SetPrice floors at 1; a tradable sector never reaches zero.
func (s *GameSession) SetPrice(sector string, price int64) {
	if price < 1 {
		price = 1
	}
	if s.MarketPrices == nil {
		s.MarketPrices = make(map[string]int64)
	}
	s.MarketPrices[sector] = price
}

func (s *GameSession) Trend(sector string) int {
	return s.MarketTrends[sector]
}

// SetTrend clamps momentum to [-5,5].
func (s *GameSession) SetTrend(sector string, trend int) {
	if s.MarketTrends == nil {
		s.MarketTrends = make(map[string]int)
	}
	s.MarketTrends[sector] = clamp(trend, -5, 5)
}

func (s *GameSession) Units(sector string) float64 {
	return s.Portfolio[sector]
}

// AddUnits credits (or with a negative delta debits) holdings, never
// letting a position go below zero; dust positions are removed.
func (s *GameSession) AddUnits(sector string, delta float64) {
	if s.Portfolio == nil {
		s.Portfolio = make(map[string]float64)
	}
	units := s.Portfolio[sector] + delta
	if units <= dustUnits {
		delete(s.Portfolio, sector)
		return
	}
	s.Portfolio[sector] = units
}

const dustUnits = 1e-4

// HasOtherHoldings reports whether any sector besides the given one
// still carries units. Used by the diversification gate.
func (s *GameSession) HasOtherHoldings(sector string) bool {
	for sec, units := range s.Portfolio {
		if sec != sector && units > dustUnits {
			return true
		}
	}
	return false
}

// PortfolioValue prices live holdings plus mutual fund positions.
func (s *GameSession) PortfolioValue() int64 {
	var total float64
	for sector, units := range s.Portfolio {
		total += units * float64(s.MarketPrices[sector])
	}
	for fund, holding := range s.FundHoldings {
		total += holding.Units * s.FundNAVs[fund]
	}
	return int64(total)
}

// AppendLog adds one line to the append-only gameplay log.
func (s *GameSession) AppendLog(line string) {
	if s.GameLog != "" {
		s.GameLog += "\n"
	}
	s.GameLog += line
}

// SetFinalReport is write-once; later calls are ignored.
func (s *GameSession) SetFinalReport(report string) {
	if s.FinalReport == "" {
		s.FinalReport = report
	}
}
