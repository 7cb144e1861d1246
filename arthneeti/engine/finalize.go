package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arthneeti/game-engine/arthneeti/config"
	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// finalize closes out a terminated session: deactivate, assign the
// persona, write the report, archive it, record the run and roll the
// player's lifetime bests forward. The caller persists the session.
func (s *Service) finalize(ctx context.Context, sess *models.GameSession, reason string) (string, error) {
	sess.IsActive = false
	persona := GeneratePersona(sess.Wealth, sess.Happiness, sess.FinancialLiteracy)

	report := s.buildReport(ctx, sess, reason, persona)
	sess.SetFinalReport(report)

	if s.archive != nil {
		if err := s.archive.Put(ctx, sess.ID, report); err != nil {
			s.log.Warn("Failed to archive final report",
				slog.String("type", "engine"),
				slog.String("session_id", fmt.Sprintf("%d", sess.ID)),
				slog.Any("error", err))
		}
	}

	portfolioValue := sess.PortfolioValue()
	if err := s.history.Create(ctx, &models.GameHistory{
		UserID:         sess.UserID,
		SessionID:      sess.ID,
		FinalWealth:    sess.Wealth,
		PortfolioValue: portfolioValue,
		FinalHappiness: sess.Happiness,
		FinalCredit:    sess.CreditScore,
		Literacy:       sess.FinancialLiteracy,
		MonthsPlayed:   sess.CurrentMonth,
		Persona:        persona,
		Reason:         reason,
	}); err != nil {
		return "", fmt.Errorf("failed to record game history: %w", err)
	}

	if err := s.rollUpProfile(ctx, sess, persona, reason); err != nil {
		return "", err
	}

	s.log.Info("Session finalized",
		slog.String("type", "engine"),
		slog.String("operation", "finalize"),
		slog.String("session_id", fmt.Sprintf("%d", sess.ID)),
		slog.String("reason", reason),
		slog.String("persona", persona))

	return persona, nil
}

// buildReport asks the AI narrator first and falls back to a plain
// Markdown summary when no narrator is wired or the call fails.
func (s *Service) buildReport(ctx context.Context, sess *models.GameSession, reason, persona string) string {
	if s.reporter != nil {
		aiCtx, cancel := context.WithTimeout(ctx, config.AIRequestTimeout)
		defer cancel()
		prompt := reportPrompt(sess, reason, persona)
		if narrated, err := s.reporter.Narrate(aiCtx, prompt); err == nil && strings.TrimSpace(narrated) != "" {
			return narrated
		} else if err != nil {
			s.log.Warn("Report narration failed, using fallback",
				slog.String("type", "ai"),
				slog.Any("error", err))
		}
	}
	return fallbackReport(sess, reason, persona)
}

func reportPrompt(sess *models.GameSession, reason, persona string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, warm end-of-game financial report for a player.\n")
	fmt.Fprintf(&b, "Outcome: %s after %d months.\n", reason, sess.CurrentMonth)
	fmt.Fprintf(&b, "Final wealth: ₹%d. Portfolio value: ₹%d.\n", sess.Wealth, sess.PortfolioValue())
	fmt.Fprintf(&b, "Happiness: %d/100. Credit score: %d. Financial literacy: %d.\n",
		sess.Happiness, sess.CreditScore, sess.FinancialLiteracy)
	fmt.Fprintf(&b, "Assigned persona: %s.\n", persona)
	fmt.Fprintf(&b, "Recent play log:\n%s\n", tailLines(sess.GameLog, 15))
	b.WriteString("Highlight one good decision and one lesson. Keep it under 200 words.")
	return b.String()
}

var reasonHeadlines = map[string]string{
	models.ReasonBankruptcy: "The money ran out.",
	models.ReasonBurnout:    "The joy ran out.",
	models.ReasonCompleted:  "You made it through the year!",
}

// fallbackReport is the deterministic Markdown summary.
func fallbackReport(sess *models.GameSession, reason, persona string) string {
	headline := reasonHeadlines[reason]
	if headline == "" {
		headline = "Game over."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Final Report: %s\n\n", persona)
	fmt.Fprintf(&b, "%s\n\n", headline)
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Months played | %d |\n", sess.CurrentMonth)
	fmt.Fprintf(&b, "| Final wealth | ₹%d |\n", sess.Wealth)
	fmt.Fprintf(&b, "| Portfolio value | ₹%d |\n", sess.PortfolioValue())
	fmt.Fprintf(&b, "| Happiness | %d/100 |\n", sess.Happiness)
	fmt.Fprintf(&b, "| Credit score | %d |\n", sess.CreditScore)
	fmt.Fprintf(&b, "| Financial literacy | %d |\n", sess.FinancialLiteracy)
	if log := tailLines(sess.GameLog, 10); log != "" {
		fmt.Fprintf(&b, "\n## Last moves\n\n%s\n", log)
	}
	return b.String()
}

// tailLines returns the last n lines of a newline-joined log.
func tailLines(log string, n int) string {
	if log == "" {
		return ""
	}
	lines := strings.Split(log, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// rollUpProfile folds the finished run into the player's lifetime
// profile.
func (s *Service) rollUpProfile(ctx context.Context, sess *models.GameSession, persona, reason string) error {
	profile, err := s.profiles.Get(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("failed to load player profile: %w", err)
	}
	if profile == nil {
		profile = &models.PlayerProfile{UserID: sess.UserID, CareerStage: models.StageFresher}
	}

	netWorth := sess.Wealth + sess.PortfolioValue()
	if netWorth > profile.HighestWealth {
		profile.HighestWealth = netWorth
	}
	if sess.CreditScore > profile.BestCredit {
		profile.BestCredit = sess.CreditScore
	}
	if sess.Happiness > profile.BestHappiness {
		profile.BestHappiness = sess.Happiness
	}
	if sess.FinancialLiteracy > profile.HighestScore {
		profile.HighestScore = sess.FinancialLiteracy
	}
	if gain := marketGain(sess); gain > profile.StockProfit {
		profile.StockProfit = gain
	}
	profile.TotalGames++

	if reason == models.ReasonCompleted && !hasBadge(profile, persona) {
		profile.Badges = append(profile.Badges, persona)
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("failed to update player profile: %w", err)
	}
	return nil
}

// marketGain is the unrealized gain on positions still open at game
// over: current value less the recorded purchase basis.
func marketGain(sess *models.GameSession) int64 {
	var gain int64
	for sector, units := range sess.Portfolio {
		remaining := units
		// Purchase records are chronological; attribute the open units to
		// the most recent buys first.
		for i := len(sess.PurchaseHistory) - 1; i >= 0 && remaining > 0; i-- {
			rec := sess.PurchaseHistory[i]
			if rec.Sector != sector {
				continue
			}
			matched := rec.Units
			if matched > remaining {
				matched = remaining
			}
			gain += int64(matched * float64(sess.Price(sector)-rec.Price))
			remaining -= matched
		}
	}
	for code, holding := range sess.FundHoldings {
		gain += int64(holding.Units*sess.FundNAVs[code]) - holding.Invested
	}
	return gain
}

func hasBadge(profile *models.PlayerProfile, badge string) bool {
	for _, b := range profile.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
