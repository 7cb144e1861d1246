package engine

import (
	"context"
	"fmt"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// BuyStock converts cash into fractional units of a sector at the
// current price. Gated by the investing unlock; below the
// diversification unlock only one sector may be held at a time.
func (s *Service) BuyStock(ctx context.Context, sessionID int64, userID string, sector string, amount int64) (*models.GameSession, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	refreshLevel(sess)

	if sess.Level < UnlockInvesting {
		return nil, reject(CodeLocked, "investing unlocks at level %d", UnlockInvesting)
	}
	if sess.Level < UnlockDiversification && sess.HasOtherHoldings(sector) {
		return nil, reject(CodeLocked, "diversifying across sectors unlocks at level %d", UnlockDiversification)
	}
	if !validSector(sector) {
		return nil, reject(CodeInvalidSector, "unknown sector %q", sector)
	}
	if amount <= 0 {
		return nil, reject(CodeInvalidAmount, "amount must be positive")
	}
	if amount > sess.Wealth {
		return nil, reject(CodeInsufficientFunds, "need ₹%d, have ₹%d", amount, sess.Wealth)
	}

	price := sess.Price(sector)
	units := float64(amount) / float64(price)

	sess.Wealth -= amount
	sess.AddUnits(sector, units)
	sess.PurchaseHistory = append(sess.PurchaseHistory, models.PurchaseRecord{
		Sector: sector,
		Units:  units,
		Price:  price,
		Month:  sess.CurrentMonth,
	})
	sess.AppendLog(fmt.Sprintf("Month %d: bought %.4f units of %s at ₹%d", sess.CurrentMonth, units, sector, price))

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// SellStock liquidates units at the current price, rounded down to
// whole currency.
func (s *Service) SellStock(ctx context.Context, sessionID int64, userID string, sector string, units float64) (*models.GameSession, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if !validSector(sector) {
		return nil, reject(CodeInvalidSector, "unknown sector %q", sector)
	}
	if units <= 0 {
		return nil, reject(CodeInvalidAmount, "units must be positive")
	}
	held := sess.Units(sector)
	if units > held {
		return nil, reject(CodeInsufficientUnits, "holding %.4f units of %s, cannot sell %.4f", held, sector, units)
	}

	price := sess.Price(sector)
	proceeds := int64(units * float64(price))

	sess.Wealth += proceeds
	sess.AddUnits(sector, -units)
	sess.AppendLog(fmt.Sprintf("Month %d: sold %.4f units of %s for ₹%d", sess.CurrentMonth, units, sector, proceeds))

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// SellFutures locks a forward quote on held units: immediate payout,
// units leave the live portfolio, and the contract is recorded for
// analytics. Top-tier unlock only.
func (s *Service) SellFutures(ctx context.Context, sessionID int64, userID string, sector string, units float64, durationMonths int) (*models.GameSession, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	refreshLevel(sess)

	if sess.Level < UnlockMastery {
		return nil, reject(CodeLocked, "futures trading unlocks at level %d", UnlockMastery)
	}
	if !validSector(sector) {
		return nil, reject(CodeInvalidSector, "unknown sector %q", sector)
	}
	if units <= 0 || durationMonths <= 0 {
		return nil, reject(CodeInvalidAmount, "units and duration must be positive")
	}
	held := sess.Units(sector)
	if units > held {
		return nil, reject(CodeInsufficientUnits, "holding %.4f units of %s, cannot write %.4f", held, sector, units)
	}

	spot := sess.Price(sector)
	strike := futuresQuote(spot, sector, durationMonths)
	payout := int64(units * float64(strike))

	sess.Wealth += payout
	sess.AddUnits(sector, -units)
	sess.AppendLog(fmt.Sprintf("Month %d: forward sale of %.4f %s units at strike ₹%d (spot ₹%d)",
		sess.CurrentMonth, units, sector, strike, spot))

	if err := s.contracts.Create(ctx, &models.FuturesContract{
		SessionID:      sess.ID,
		Sector:         sector,
		Units:          units,
		StrikePrice:    strike,
		SpotPrice:      spot,
		DurationMonths: durationMonths,
		CreatedMonth:   sess.CurrentMonth,
	}); err != nil {
		return nil, fmt.Errorf("failed to record contract: %w", err)
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// BuyMutualFund converts cash into fund units at the current NAV and
// accumulates the invested basis.
func (s *Service) BuyMutualFund(ctx context.Context, sessionID int64, userID string, fundCode string, amount int64) (*models.GameSession, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	refreshLevel(sess)

	if sess.Level < UnlockInvesting {
		return nil, reject(CodeLocked, "investing unlocks at level %d", UnlockInvesting)
	}
	if _, ok := MutualFunds[fundCode]; !ok {
		return nil, reject(CodeInvalidFund, "unknown fund %q", fundCode)
	}
	if amount <= 0 {
		return nil, reject(CodeInvalidAmount, "amount must be positive")
	}
	if amount > sess.Wealth {
		return nil, reject(CodeInsufficientFunds, "need ₹%d, have ₹%d", amount, sess.Wealth)
	}

	nav := sess.FundNAVs[fundCode]
	if nav <= 0 {
		nav = MutualFunds[fundCode].StartNAV
		sess.FundNAVs[fundCode] = nav
	}
	units := float64(amount) / nav

	if sess.FundHoldings == nil {
		sess.FundHoldings = make(map[string]models.FundHolding)
	}
	holding := sess.FundHoldings[fundCode]
	holding.Units += units
	holding.Invested += amount
	sess.FundHoldings[fundCode] = holding
	sess.Wealth -= amount
	sess.AppendLog(fmt.Sprintf("Month %d: bought %.4f units of %s at NAV %.2f", sess.CurrentMonth, units, fundCode, nav))

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

const fundDustUnits = 1e-4

// SellMutualFund redeems units at the current NAV, reducing the
// invested basis proportionally; dust positions are closed entirely.
func (s *Service) SellMutualFund(ctx context.Context, sessionID int64, userID string, fundCode string, units float64) (*models.GameSession, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := MutualFunds[fundCode]; !ok {
		return nil, reject(CodeInvalidFund, "unknown fund %q", fundCode)
	}
	if units <= 0 {
		return nil, reject(CodeInvalidAmount, "units must be positive")
	}
	holding, ok := sess.FundHoldings[fundCode]
	if !ok || units > holding.Units {
		return nil, reject(CodeInsufficientUnits, "holding %.4f units of %s, cannot redeem %.4f", holding.Units, fundCode, units)
	}

	nav := sess.FundNAVs[fundCode]
	proceeds := int64(units * nav)
	fraction := units / holding.Units

	holding.Invested -= int64(float64(holding.Invested) * fraction)
	holding.Units -= units
	if holding.Units <= fundDustUnits {
		delete(sess.FundHoldings, fundCode)
	} else {
		sess.FundHoldings[fundCode] = holding
	}
	sess.Wealth += proceeds
	sess.AppendLog(fmt.Sprintf("Month %d: redeemed %.4f units of %s for ₹%d", sess.CurrentMonth, units, fundCode, proceeds))

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}
