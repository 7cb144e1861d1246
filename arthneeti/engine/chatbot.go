package engine

import (
	"context"
	"fmt"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// Chatbot characters that interject after a month-end.
const (
	CharacterVasooli = "vasooli" // debt collector
	CharacterSundar  = "sundar"  // too-good-to-be-true schemer
	CharacterHarshad = "harshad" // pushy stockbroker
	CharacterJetta   = "jetta"   // cash-flow mentor
)

// ChatbotMessage is a proactive interjection. IsScam marks messages that
// expect an accept/decline answer through ProcessScamChoice.
type ChatbotMessage struct {
	Character string
	Message   string
	IsScam    bool
}

// evaluateChatbot picks at most one interjection for the month. The
// characters are checked in a fixed priority order: debt pressure first,
// then the scam hook, then the broker pitch, then the mentor.
func (s *Service) evaluateChatbot(sess *models.GameSession, expenses []*models.RecurringExpense, incomes []*models.IncomeSource) *ChatbotMessage {
	var expenseTotal, emiTotal, incomeTotal int64
	for _, exp := range expenses {
		expenseTotal += exp.Amount
		if exp.Category == models.ExpenseDebt {
			emiTotal += exp.Amount
		}
	}
	for _, src := range incomes {
		incomeTotal += src.Amount
	}

	netWorth := sess.Wealth + sess.PortfolioValue()
	debtStressed := sess.CreditScore < 600 ||
		(netWorth > 0 && float64(emiTotal)/float64(netWorth) > 0.5)

	switch {
	case debtStressed && emiTotal > 0:
		return &ChatbotMessage{
			Character: CharacterVasooli,
			Message:   fmt.Sprintf("Vasooli bhai here. ₹%d due this month. Don't make me call again.", emiTotal),
		}
	case sess.Wealth > 10000 && s.rng.Float64() < 0.10:
		return &ChatbotMessage{
			Character: CharacterSundar,
			Message:   "Sundar here! Double your money in 30 days, guaranteed. My cousin already tripled his. Are you in?",
			IsScam:    true,
		}
	case sess.Wealth > 50000 && len(sess.Portfolio) == 0:
		return &ChatbotMessage{
			Character: CharacterHarshad,
			Message:   fmt.Sprintf("Harshad from Dalal Street. ₹%d sitting idle in savings? The market is moving without you.", sess.Wealth),
		}
	case expenseTotal > incomeTotal:
		return &ChatbotMessage{
			Character: CharacterJetta,
			Message: fmt.Sprintf("Jetta here. You're spending ₹%d against ₹%d coming in. That gap eats savings fast. Want to trim something?",
				expenseTotal, incomeTotal),
		}
	}
	return nil
}

const (
	scamLossCap   = 20000
	scamLossFloor = 1000
)

// ProcessScamChoice resolves an accepted or declined scam pitch.
// Accepting costs a fifth of current wealth within fixed bounds and
// hurts happiness and literacy; declining is the teachable moment.
func (s *Service) ProcessScamChoice(ctx context.Context, sessionID int64, userID string, accepted bool) (*TurnResult, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{Session: sess}

	if !accepted {
		sess.FinancialLiteracy += 5
		sess.AppendLog(fmt.Sprintf("Month %d: declined a guaranteed-returns scheme", sess.CurrentMonth))
		result.Feedback = "You smelled the scam and walked away. Nothing guaranteed ever doubles in 30 days."
	} else {
		loss := sess.Wealth / 5
		if loss > scamLossCap {
			loss = scamLossCap
		}
		if loss < scamLossFloor {
			loss = scamLossFloor
		}
		sess.Wealth -= loss
		sess.ApplyHappiness(-15)
		sess.FinancialLiteracy -= 5
		if sess.FinancialLiteracy < 0 {
			sess.FinancialLiteracy = 0
		}
		sess.AppendLog(fmt.Sprintf("Month %d: lost ₹%d to a guaranteed-returns scheme", sess.CurrentMonth, loss))
		result.Feedback = fmt.Sprintf("Sundar vanished with your ₹%d. The 'cousin' was never real.", loss)

		if over, reason := s.checkGameOver(sess); over {
			result.GameOver = true
			result.Reason = reason
			persona, err := s.finalize(ctx, sess, reason)
			if err != nil {
				return nil, err
			}
			result.Persona = persona
		}
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return result, nil
}
