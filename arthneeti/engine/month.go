package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// AdvanceMonth runs one month-end cycle on an owned session. Normally
// the cycle runs inside ProcessChoice at a card-count boundary; this
// entry point exists so the cycle is independently drivable.
func (s *Service) AdvanceMonth(ctx context.Context, sessionID int64, userID string) (*MonthResult, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	result, err := s.advanceMonth(ctx, sess)
	if err != nil {
		return nil, err
	}
	if result.GameOver {
		if _, err := s.finalize(ctx, sess, result.Reason); err != nil {
			return nil, err
		}
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return result, nil
}

// advanceMonth mutates the in-memory session through the fixed month-end
// sequence: month++, level refresh, income, breach risk, expenses and
// inflation, market tick, IPO settlement, soft decay, terminal check,
// chatbot nudge.
func (s *Service) advanceMonth(ctx context.Context, sess *models.GameSession) (*MonthResult, error) {
	var report []string

	// 1. Time moves
	sess.CurrentMonth++
	report = append(report, fmt.Sprintf("--- Month %d ---", sess.CurrentMonth))

	// 2. Level refresh
	if refreshLevel(sess) {
		report = append(report, fmt.Sprintf("Level up! You are now level %d.", sess.Level))
	}

	// 3. Income
	incomeLines, total, err := s.collectIncome(ctx, sess)
	if err != nil {
		return nil, err
	}
	sess.Wealth += total
	report = append(report, incomeLines...)

	// 4. Predatory-lender harassment risk while an instant loan runs
	activeExpenses, err := s.expenses.Active(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	for _, exp := range activeExpenses {
		if exp.Name == highInterestLoanName && s.rng.Float64() < s.cfg.DataBreachChance {
			sess.ApplyHappiness(-15)
			report = append(report, "Your loan app leaked your contacts. Collection calls are harassing your family. (-15 happiness)")
			break
		}
	}

	// 5. Recurring drain; annual inflation on every 12th boundary
	inflationDue := sess.CurrentMonth > 1 && sess.CurrentMonth%12 == 1
	var drain int64
	for _, exp := range activeExpenses {
		if inflationDue && exp.InflationRate > 0 {
			increase := exp.Inflate()
			if err := s.expenses.Update(ctx, exp); err != nil {
				return nil, fmt.Errorf("failed to persist inflation: %w", err)
			}
			if increase > 0 {
				report = append(report, fmt.Sprintf("Inflation: %s is now ₹%d/month (+₹%d).", exp.Name, exp.Amount, increase))
			}
		}
		drain += exp.Amount
	}
	sess.Wealth -= drain
	sess.MonthlyExpenseTotal = drain
	report = append(report, fmt.Sprintf("Paid ₹%d in monthly expenses.", drain))

	// 6. Market tick
	var marketLines []string
	if s.cfg.MarketMode == ModeLive {
		marketLines = s.liveTick(sess)
	} else {
		marketLines, err = s.revealMonth(ctx, sess)
		if err != nil {
			return nil, err
		}
	}
	report = append(report, marketLines...)
	report = append(report, s.fundTick(sess)...)

	// 7. IPO settlement
	report = append(report, s.settleIPOs(sess)...)

	// 8. Soft decay
	if sess.Wealth < s.cfg.LowWealthThreshold {
		sess.ApplyHappiness(-s.cfg.LowWealthPenalty)
		report = append(report, "Money worries are weighing on you. (-2 happiness)")
	} else if sess.Happiness > s.cfg.HedonicThreshold {
		sess.ApplyHappiness(-1)
	}

	result := &MonthResult{}

	// 9. Terminal check
	if over, reason := s.checkGameOver(sess); over {
		result.GameOver = true
		result.Reason = reason
	}

	// 10. Proactive chatbot nudge, only on a live session
	if !result.GameOver {
		incomes, err := s.incomes.BySession(ctx, sess.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load incomes: %w", err)
		}
		result.Chatbot = s.evaluateChatbot(sess, activeExpenses, incomes)
	}

	result.Report = strings.Join(report, "\n")

	s.log.Info("Month advanced",
		slog.String("type", "engine"),
		slog.String("operation", "advance_month"),
		slog.String("session_id", fmt.Sprintf("%d", sess.ID)),
		slog.Int("month", sess.CurrentMonth),
		slog.Int64("wealth", sess.Wealth))

	return result, nil
}

// collectIncome sums the month's credits. Freelance sources miss a
// month entirely with a fixed probability, otherwise wobble around the
// base amount; sessions with no sources at all fall back to the flat
// salary constant.
func (s *Service) collectIncome(ctx context.Context, sess *models.GameSession) ([]string, int64, error) {
	sources, err := s.incomes.BySession(ctx, sess.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load income sources: %w", err)
	}

	if len(sources) == 0 {
		return []string{fmt.Sprintf("Salary credited: ₹%d.", s.cfg.MonthlySalary)}, s.cfg.MonthlySalary, nil
	}

	var lines []string
	var total int64
	for _, src := range sources {
		if src.Type == models.IncomeFreelance {
			if s.rng.Float64() < s.cfg.FreelanceDryChance {
				lines = append(lines, fmt.Sprintf("Dry month: no payment from %s.", src.Name))
				continue
			}
			factor := 0.8 + s.rng.Float64()*0.4
			amount := int64(float64(src.Amount) * factor)
			total += amount
			lines = append(lines, fmt.Sprintf("%s paid ₹%d this month.", src.Name, amount))
			continue
		}
		total += src.Amount
		lines = append(lines, fmt.Sprintf("%s credited: ₹%d.", src.Name, src.Amount))
	}
	return lines, total, nil
}
