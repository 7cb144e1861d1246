package engine

import (
	"context"
	"testing"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

func tradingSession(env *testEnv, level int) *models.GameSession {
	return env.seedSession(&models.GameSession{
		UserID: "u", CurrentMonth: 1, Wealth: 100000, Happiness: 80, CreditScore: 700,
		Level: level, IsActive: true,
	})
}

func TestBuyStockRoundTrip(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockInvesting)

	if _, err := env.svc.BuyStock(context.Background(), sess.ID, "u", "gold", 10000); err != nil {
		t.Fatalf("BuyStock: %v", err)
	}
	if sess.Wealth != 90000 {
		t.Errorf("Wealth = %d, want 90000", sess.Wealth)
	}
	units := sess.Units("gold")
	if units != 2.0 { // 10000 over base price 5000
		t.Errorf("units = %v, want 2.0", units)
	}
	if len(sess.PurchaseHistory) != 1 || sess.PurchaseHistory[0].Price != 5000 {
		t.Errorf("PurchaseHistory = %+v", sess.PurchaseHistory)
	}

	// Selling the full position at an unchanged price is wealth-neutral.
	if _, err := env.svc.SellStock(context.Background(), sess.ID, "u", "gold", units); err != nil {
		t.Fatalf("SellStock: %v", err)
	}
	if sess.Wealth != 100000 {
		t.Errorf("Wealth after round trip = %d, want 100000", sess.Wealth)
	}
	if sess.Units("gold") != 0 {
		t.Errorf("residual units = %v, want 0", sess.Units("gold"))
	}
}

func TestTradingRejections(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockInvesting)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code string
	}{
		{"unknown sector", func() error {
			_, err := env.svc.BuyStock(ctx, sess.ID, "u", "crypto", 1000)
			return err
		}, CodeInvalidSector},
		{"zero amount", func() error {
			_, err := env.svc.BuyStock(ctx, sess.ID, "u", "gold", 0)
			return err
		}, CodeInvalidAmount},
		{"over budget", func() error {
			_, err := env.svc.BuyStock(ctx, sess.ID, "u", "gold", 200000)
			return err
		}, CodeInsufficientFunds},
		{"selling air", func() error {
			_, err := env.svc.SellStock(ctx, sess.ID, "u", "gold", 5)
			return err
		}, CodeInsufficientUnits},
		{"unknown fund", func() error {
			_, err := env.svc.BuyMutualFund(ctx, sess.ID, "u", "NOFUND", 1000)
			return err
		}, CodeInvalidFund},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			actionErr, ok := err.(*ActionError)
			if !ok {
				t.Fatalf("err = %v, want *ActionError", err)
			}
			if actionErr.Code != tt.code {
				t.Errorf("code = %q, want %q", actionErr.Code, tt.code)
			}
		})
	}
}

func TestInvestingLevelGate(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, 1)

	_, err := env.svc.BuyStock(context.Background(), sess.ID, "u", "gold", 1000)
	if !IsRejection(err) {
		t.Fatalf("err = %v, want level-gate rejection", err)
	}
	if err.(*ActionError).Code != CodeLocked {
		t.Errorf("code = %q, want %q", err.(*ActionError).Code, CodeLocked)
	}
}

func TestDiversificationGate(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockInvesting)
	ctx := context.Background()

	if _, err := env.svc.BuyStock(ctx, sess.ID, "u", "gold", 5000); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	// Second sector is locked below the diversification tier.
	_, err := env.svc.BuyStock(ctx, sess.ID, "u", "tech", 5000)
	if !IsRejection(err) || err.(*ActionError).Code != CodeLocked {
		t.Fatalf("err = %v, want diversification lock", err)
	}
	// Averaging into the held sector stays allowed.
	if _, err := env.svc.BuyStock(ctx, sess.ID, "u", "gold", 5000); err != nil {
		t.Fatalf("averaging in: %v", err)
	}

	sess.Level = UnlockDiversification
	if _, err := env.svc.BuyStock(ctx, sess.ID, "u", "tech", 5000); err != nil {
		t.Fatalf("diversified buy at tier %d: %v", UnlockDiversification, err)
	}
}

func TestSellFutures(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockMastery)
	ctx := context.Background()

	if _, err := env.svc.BuyStock(ctx, sess.ID, "u", "tech", 12000); err != nil {
		t.Fatalf("BuyStock: %v", err)
	}
	units := sess.Units("tech")
	before := sess.Wealth

	if _, err := env.svc.SellFutures(ctx, sess.ID, "u", "tech", units, 3); err != nil {
		t.Fatalf("SellFutures: %v", err)
	}
	if sess.Units("tech") != 0 {
		t.Errorf("units = %v after forward sale, want 0", sess.Units("tech"))
	}
	if sess.Wealth <= before {
		t.Errorf("no payout credited: wealth %d -> %d", before, sess.Wealth)
	}
	if len(env.contracts.rows) != 1 {
		t.Fatalf("contracts = %d, want 1", len(env.contracts.rows))
	}
	contract := env.contracts.rows[0]
	if contract.Sector != "tech" || contract.DurationMonths != 3 || contract.SpotPrice != 1200 {
		t.Errorf("contract = %+v", contract)
	}
	// tech drift .012 sits below the .02 carry, so the quote discounts
	// spot slightly.
	if contract.StrikePrice >= contract.SpotPrice {
		t.Errorf("strike %d not discounted from spot %d", contract.StrikePrice, contract.SpotPrice)
	}
}

func TestFuturesMasteryGate(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockDiversification)

	_, err := env.svc.SellFutures(context.Background(), sess.ID, "u", "tech", 1, 3)
	if !IsRejection(err) || err.(*ActionError).Code != CodeLocked {
		t.Fatalf("err = %v, want mastery lock", err)
	}
}

func TestMutualFundRoundTrip(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockInvesting)
	ctx := context.Background()

	if _, err := env.svc.BuyMutualFund(ctx, sess.ID, "u", "EQGROW", 10000); err != nil {
		t.Fatalf("BuyMutualFund: %v", err)
	}
	holding := sess.FundHoldings["EQGROW"]
	if holding.Units != 100 { // 10000 at NAV 100
		t.Errorf("units = %v, want 100", holding.Units)
	}
	if holding.Invested != 10000 {
		t.Errorf("invested = %d, want 10000", holding.Invested)
	}

	if _, err := env.svc.SellMutualFund(ctx, sess.ID, "u", "EQGROW", 100); err != nil {
		t.Fatalf("SellMutualFund: %v", err)
	}
	if sess.Wealth != 100000 {
		t.Errorf("Wealth after round trip = %d, want 100000", sess.Wealth)
	}
	if _, ok := sess.FundHoldings["EQGROW"]; ok {
		t.Error("dust position not removed")
	}
}

func TestSellMutualFundPartial(t *testing.T) {
	env := newTestEnv(DefaultConfig(), 1)
	sess := tradingSession(env, UnlockInvesting)
	ctx := context.Background()

	if _, err := env.svc.BuyMutualFund(ctx, sess.ID, "u", "BALADV", 7500); err != nil {
		t.Fatalf("BuyMutualFund: %v", err)
	}
	if _, err := env.svc.SellMutualFund(ctx, sess.ID, "u", "BALADV", 50); err != nil {
		t.Fatalf("SellMutualFund: %v", err)
	}
	holding := sess.FundHoldings["BALADV"]
	if holding.Units != 50 {
		t.Errorf("remaining units = %v, want 50", holding.Units)
	}
	if holding.Invested != 3750 {
		t.Errorf("remaining invested = %d, want 3750", holding.Invested)
	}
}
