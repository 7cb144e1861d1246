package engine

import (
	"context"
	"fmt"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// ApplyForIPO locks in an application during the offering's open month.
// The full amount leaves the wallet immediately and stays locked until
// the next month-end settles the listing.
func (s *Service) ApplyForIPO(ctx context.Context, sessionID int64, userID string, name string, amount int64) (*models.GameSession, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	refreshLevel(sess)

	if sess.Level < UnlockInvesting {
		return nil, reject(CodeLocked, "investing unlocks at level %d", UnlockInvesting)
	}
	offering, ok := IPOSchedule[name]
	if !ok {
		return nil, reject(CodeIPOClosed, "no IPO named %q", name)
	}
	if sess.CurrentMonth != offering.OpenMonth {
		return nil, reject(CodeIPOClosed, "%s is only open in month %d", name, offering.OpenMonth)
	}
	for _, app := range sess.IPOApplications {
		if app.Name == name {
			return nil, reject(CodeIPODuplicate, "already applied to %s", name)
		}
	}
	if amount < offering.MinAmount || amount > offering.MaxAmount {
		return nil, reject(CodeInvalidAmount, "%s lot size is ₹%d to ₹%d", name, offering.MinAmount, offering.MaxAmount)
	}
	if amount > sess.Wealth {
		return nil, reject(CodeInsufficientFunds, "need ₹%d, have ₹%d", amount, sess.Wealth)
	}

	sess.Wealth -= amount
	sess.IPOApplications = append(sess.IPOApplications, models.IPOApplication{
		Name:   name,
		Amount: amount,
		Status: models.IPOStatusApplied,
		Month:  sess.CurrentMonth,
	})
	sess.AppendLog(fmt.Sprintf("Month %d: applied ₹%d to the %s IPO", sess.CurrentMonth, amount, name))

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

var allotmentRatios = []float64{0, 0.5, 1.0}

// settleIPOs resolves every application whose lock-in month has passed.
// Allotment is the lottery: none, half or full. The unallotted part is
// refunded at par; the allotted part lists at a gain or a loss and the
// whole settlement lands as one lump sum.
func (s *Service) settleIPOs(sess *models.GameSession) []string {
	var lines []string
	for i := range sess.IPOApplications {
		app := &sess.IPOApplications[i]
		if app.Status != models.IPOStatusApplied || app.Month >= sess.CurrentMonth {
			continue
		}
		offering, ok := IPOSchedule[app.Name]
		if !ok {
			app.Status = models.IPOStatusProcessed
			sess.Wealth += app.Amount
			lines = append(lines, fmt.Sprintf("%s IPO was withdrawn; ₹%d refunded.", app.Name, app.Amount))
			continue
		}

		ratio := allotmentRatios[s.rng.Intn(len(allotmentRatios))]
		allotted := int64(float64(app.Amount) * ratio)
		refund := app.Amount - allotted

		var payout int64
		if allotted > 0 {
			var move float64
			if s.rng.Float64() < offering.ListingGainProb {
				move = 0.10 + s.rng.Float64()*0.70
			} else {
				move = -0.30 + s.rng.Float64()*0.25
			}
			payout = int64(float64(allotted) * (1 + move))
			pct := move * 100
			if pct >= 0 {
				lines = append(lines, fmt.Sprintf("%s listed %.0f%% up! Your ₹%d allotment settled at ₹%d.", app.Name, pct, allotted, payout))
			} else {
				lines = append(lines, fmt.Sprintf("%s listed %.0f%% down. Your ₹%d allotment settled at ₹%d.", app.Name, -pct, allotted, payout))
			}
		} else {
			lines = append(lines, fmt.Sprintf("No allotment in the %s IPO; ₹%d refunded.", app.Name, refund))
		}
		if refund > 0 && allotted > 0 {
			lines = append(lines, fmt.Sprintf("Partial allotment: ₹%d refunded from %s.", refund, app.Name))
		}

		sess.Wealth += refund + payout
		app.Status = models.IPOStatusProcessed
		sess.AppendLog(fmt.Sprintf("Month %d: %s IPO settled (allotted ₹%d, credited ₹%d)",
			sess.CurrentMonth, app.Name, allotted, refund+payout))
	}
	return lines
}
