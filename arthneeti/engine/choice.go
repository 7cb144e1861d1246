package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// ProcessChoice is the core turn transition. The step order is load
// once, compute everything in memory, persist once; side effects
// (expense rows, the turn log) land through their stores inside the
// same logical turn.
func (s *Service) ProcessChoice(ctx context.Context, sessionID int64, userID string, cardID, choiceID int64) (*TurnResult, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrNotFound
	}
	choice, err := s.cards.GetChoice(ctx, choiceID)
	if err != nil {
		return nil, err
	}
	if choice == nil || choice.CardID != card.ID {
		return nil, ErrNotFound
	}

	var feedback []string
	if choice.Feedback != "" {
		feedback = append(feedback, choice.Feedback)
	}

	// 1. Gameplay log line
	sess.AppendLog(fmt.Sprintf("Month %d: %q -> %q (wealth %+d, happiness %+d, credit %+d, literacy %+d)",
		sess.CurrentMonth, card.Title, choice.Text,
		choice.WealthImpact, choice.HappinessImpact, choice.CreditImpact, choice.LiteracyImpact))

	// 2. Stat deltas; happiness and credit clamp, literacy does not
	sess.Wealth += choice.WealthImpact
	sess.ApplyHappiness(choice.HappinessImpact)
	sess.ApplyCredit(choice.CreditImpact)
	sess.FinancialLiteracy += choice.LiteracyImpact

	// 3. Recurring-expense add
	if choice.AddExpenseName != "" && choice.AddExpenseAmount > 0 {
		if err := s.expenses.Create(ctx, &models.RecurringExpense{
			SessionID:     sess.ID,
			Name:          choice.AddExpenseName,
			Amount:        choice.AddExpenseAmount,
			Category:      models.ExpenseLifestyle,
			InflationRate: 0.04,
			StartMonth:    sess.CurrentMonth,
		}); err != nil {
			return nil, fmt.Errorf("failed to add recurring expense: %w", err)
		}
		feedback = append(feedback, fmt.Sprintf("New monthly commitment added: %s (₹%d/month).",
			choice.AddExpenseName, choice.AddExpenseAmount))
	}

	// 4. Cancel-by-name
	if choice.CancelExpenseName != "" {
		cancelled, err := s.cancelExpenses(ctx, sess, choice.CancelExpenseName)
		if err != nil {
			return nil, err
		}
		if cancelled > 0 {
			feedback = append(feedback, fmt.Sprintf("Cancelled %s, freeing up monthly cash.", choice.CancelExpenseName))
		}
	}

	// 5. Market news shock
	if card.NewsMultiplier > 0 && len(card.NewsSectors) > 0 {
		feedback = append(feedback, s.applyNewsShock(sess, card.NewsSectors, card.NewsMultiplier)...)
	}

	// 6. Turn log row
	cid := choice.ID
	if err := s.choiceLog.Create(ctx, &models.PlayerChoice{
		SessionID: sess.ID,
		CardID:    card.ID,
		ChoiceID:  &cid,
	}); err != nil {
		return nil, fmt.Errorf("failed to log choice: %w", err)
	}

	result := &TurnResult{Session: sess}

	// 7. Month boundary: every CardsPerMonth logged turns
	count, err := s.choiceLog.Count(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count turns: %w", err)
	}
	if count/s.cfg.CardsPerMonth+1 > sess.CurrentMonth {
		monthResult, err := s.advanceMonth(ctx, sess)
		if err != nil {
			return nil, err
		}
		if monthResult.Report != "" {
			feedback = append(feedback, monthResult.Report)
		}
		result.GameOver = monthResult.GameOver
		result.Reason = monthResult.Reason
		result.Chatbot = monthResult.Chatbot
	}

	// 8. Terminal re-check (direct deltas can bankrupt before any month
	// boundary)
	if !result.GameOver {
		if over, reason := s.checkGameOver(sess); over {
			result.GameOver = true
			result.Reason = reason
		}
	}

	if result.GameOver {
		persona, err := s.finalize(ctx, sess, result.Reason)
		if err != nil {
			return nil, err
		}
		result.Persona = persona
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	result.Feedback = strings.Join(feedback, "\n")

	s.log.Info("Choice processed",
		slog.String("type", "engine"),
		slog.String("operation", "process_choice"),
		slog.String("session_id", fmt.Sprintf("%d", sess.ID)),
		slog.Int64("wealth", sess.Wealth),
		slog.Bool("game_over", result.GameOver))

	return result, nil
}

// ProcessSkip declines a card. The penalty is heavier for emergencies
// and needs, and investment skips only cost credit. The null-choice log
// row marks the card as seen.
func (s *Service) ProcessSkip(ctx context.Context, sessionID int64, userID string, cardID int64) (*SkipResult, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrNotFound
	}

	happinessDelta, creditDelta := -5, -5
	message := "You walked away from the situation."
	switch card.Category {
	case models.CategoryEmergency, models.CategoryNeeds:
		happinessDelta, creditDelta = -15, -20
		message = "Ignoring essentials has consequences."
	case models.CategoryInvestment:
		happinessDelta, creditDelta = 0, -10
		message = "Opportunity missed."
	}

	sess.ApplyHappiness(happinessDelta)
	sess.ApplyCredit(creditDelta)
	sess.AppendLog(fmt.Sprintf("Month %d: skipped %q (happiness %+d, credit %+d)",
		sess.CurrentMonth, card.Title, happinessDelta, creditDelta))

	if err := s.choiceLog.Create(ctx, &models.PlayerChoice{
		SessionID: sess.ID,
		CardID:    card.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to log skip: %w", err)
	}

	result := &SkipResult{Session: sess, Message: message}
	if over, reason := s.checkGameOver(sess); over {
		result.GameOver = true
		result.Reason = reason
		persona, err := s.finalize(ctx, sess, reason)
		if err != nil {
			return nil, err
		}
		result.Persona = persona
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return result, nil
}

// cancelExpenses flags all active expenses with the given name.
func (s *Service) cancelExpenses(ctx context.Context, sess *models.GameSession, name string) (int, error) {
	active, err := s.expenses.Active(ctx, sess.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load expenses: %w", err)
	}
	cancelled := 0
	for _, exp := range active {
		if exp.Name != name {
			continue
		}
		exp.IsCancelled = true
		exp.CancelledMonth = sess.CurrentMonth
		if err := s.expenses.Update(ctx, exp); err != nil {
			return cancelled, fmt.Errorf("failed to cancel expense: %w", err)
		}
		cancelled++
	}
	return cancelled, nil
}
