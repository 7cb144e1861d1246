package engine

import "github.com/arthneeti/game-engine/arthneeti/database/models"

// MarketMode selects how monthly prices move.
type MarketMode string

const (
	// ModeTrajectory reveals prices from the pre-generated per-session
	// trajectory table.
	ModeTrajectory MarketMode = "trajectory"
	// ModeLive evolves prices in place from persisted momentum.
	ModeLive MarketMode = "live"
)

// Config is the full game tuning. DefaultConfig matches the balance the
// game shipped with; tests shrink pieces of it freely.
type Config struct {
	StartingWealth    int64
	StartingHappiness int
	StartingCredit    int
	StartingLifelines int
	StartMonth        int

	CardsPerMonth      int
	GameDurationMonths int
	MonthlySalary      int64

	// Probability that card selection is delegated to the AI game master.
	AIGenerationChance float64

	MarketMode MarketMode

	// Month-advance tuning
	FreelanceDryChance  float64
	DataBreachChance    float64
	LowWealthThreshold  int64
	LowWealthPenalty    int
	HedonicThreshold    int
	SignificantMovePct  float64
	MomentumResetChance float64

	// Loan tuning
	FamilyLoanAmount      int64
	FamilyLoanCeiling     int64
	InstantLoanAmount     int64
	InstantLoanCreditMult int64
	InstantLoanEMI        int64
	BankLoanAmount        int64
	BankLoanMinCredit     int
	BankLoanEMI           int64
}

func DefaultConfig() Config {
	return Config{
		StartingWealth:    25000,
		StartingHappiness: 100,
		StartingCredit:    700,
		StartingLifelines: 3,
		StartMonth:        1,

		CardsPerMonth:      3,
		GameDurationMonths: 12,
		MonthlySalary:      25000,

		AIGenerationChance: 0.30,

		MarketMode: ModeTrajectory,

		FreelanceDryChance:  0.30,
		DataBreachChance:    0.15,
		LowWealthThreshold:  10000,
		LowWealthPenalty:    2,
		HedonicThreshold:    90,
		SignificantMovePct:  5.0,
		MomentumResetChance: 0.15,

		FamilyLoanAmount:      5000,
		FamilyLoanCeiling:     50000,
		InstantLoanAmount:     10000,
		InstantLoanCreditMult: 30,
		InstantLoanEMI:        500,
		BankLoanAmount:        100000,
		BankLoanMinCredit:     750,
		BankLoanEMI:           1200,
	}
}

// SectorParams drives both the trajectory generator and the futures
// quote. Drift and volatility are per-month.
type SectorParams struct {
	BasePrice int64
	Drift     float64
	Vol       float64
}

// Sectors is the closed set of tradable sectors.
var Sectors = map[string]SectorParams{
	"gold":        {BasePrice: 5000, Drift: 0.004, Vol: 0.02},
	"tech":        {BasePrice: 1200, Drift: 0.012, Vol: 0.08},
	"real_estate": {BasePrice: 8000, Drift: 0.007, Vol: 0.03},
}

func validSector(sector string) bool {
	_, ok := Sectors[sector]
	return ok
}

// MutualFund is a named fund with its own NAV random walk.
type MutualFund struct {
	Code       string
	Name       string
	StartNAV   float64
	Volatility float64
}

var MutualFunds = map[string]MutualFund{
	"EQGROW":  {Code: "EQGROW", Name: "Equity Growth Fund", StartNAV: 100, Volatility: 0.05},
	"BALADV":  {Code: "BALADV", Name: "Balanced Advantage Fund", StartNAV: 75, Volatility: 0.03},
	"LIQSAFE": {Code: "LIQSAFE", Name: "Liquid Safety Fund", StartNAV: 50, Volatility: 0.01},
}

// IPOOffering opens in exactly one month of the game; applications are
// accepted only in that month.
type IPOOffering struct {
	Name            string
	OpenMonth       int
	ListingGainProb float64
	MinAmount       int64
	MaxAmount       int64
}

var IPOSchedule = map[string]IPOOffering{
	"Zentech Labs":      {Name: "Zentech Labs", OpenMonth: 3, ListingGainProb: 0.70, MinAmount: 5000, MaxAmount: 15000},
	"Bharat Foods":      {Name: "Bharat Foods", OpenMonth: 6, ListingGainProb: 0.55, MinAmount: 5000, MaxAmount: 15000},
	"Nila Green Energy": {Name: "Nila Green Energy", OpenMonth: 9, ListingGainProb: 0.40, MinAmount: 5000, MaxAmount: 15000},
}

// defaultExpense seeds every new session's ledger.
type defaultExpense struct {
	Name      string
	Amount    int64
	Category  string
	Inflation float64
	Essential bool
}

var defaultExpenses = []defaultExpense{
	{Name: "Rent (2BHK)", Amount: 10000, Category: models.ExpenseHousing, Inflation: 0.05, Essential: true},
	{Name: "Groceries", Amount: 2500, Category: models.ExpenseFood, Inflation: 0.07, Essential: true},
	{Name: "Utilities", Amount: 1000, Category: models.ExpenseUtilities, Inflation: 0.03, Essential: true},
	{Name: "Transport", Amount: 1000, Category: models.ExpenseTransport, Inflation: 0.05, Essential: true},
}

// stageStart captures how a career stage begins a run: cash, credit and
// the income sources the stage carries.
type stageStart struct {
	Wealth  int64
	Credit  int
	Incomes []stageIncome
}

type stageIncome struct {
	Name        string
	Amount      int64
	Type        string
	Variability float64
}

var stageStarts = map[string]stageStart{
	models.StageStudentFunded: {
		Wealth: 5000, Credit: 650,
		Incomes: []stageIncome{{Name: "Monthly Allowance", Amount: 5000, Type: models.IncomeAllowance}},
	},
	models.StageStudentPartTime: {
		Wealth: 10000, Credit: 680,
		Incomes: []stageIncome{{Name: "Freelance Gigs", Amount: 8000, Type: models.IncomeFreelance, Variability: 0.2}},
	},
	models.StageFresher: {
		Wealth: 20000, Credit: 700,
		Incomes: []stageIncome{{Name: "Salary", Amount: 25000, Type: models.IncomeSalary}},
	},
	models.StageProfessional: {
		Wealth: 100000, Credit: 750,
		Incomes: []stageIncome{{Name: "Salary", Amount: 80000, Type: models.IncomeSalary}},
	},
	models.StageBusinessOwner: {
		Wealth: 50000, Credit: 720,
		Incomes: []stageIncome{{Name: "Business Income", Amount: 60000, Type: models.IncomeBusiness, Variability: 0.3}},
	},
	models.StageRetired: {
		Wealth: 500000, Credit: 800,
		Incomes: []stageIncome{{Name: "Pension & Interest", Amount: 30000, Type: models.IncomeOther}},
	},
}

// Expense names with loan side effects.
const (
	highInterestLoanName = "High Interest Loan"
	bankLoanName         = "Bank Personal Loan"
)
