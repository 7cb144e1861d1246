package engine

import (
	"context"
	"fmt"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

// Loan kinds accepted by ProcessLoan.
const (
	LoanFamily     = "FAMILY"
	LoanInstantApp = "INSTANT_APP"
	LoanBank       = "BANK"
)

// ProcessLoan credits a fixed-size loan and attaches its ongoing cost.
// Family loans are small and guilt-priced, instant apps are predatory,
// bank loans are large and gated on the loans unlock plus credit score.
func (s *Service) ProcessLoan(ctx context.Context, sessionID int64, userID string, kind string) (*models.GameSession, string, error) {
	sess, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, "", err
	}
	refreshLevel(sess)

	if sess.Level < UnlockLoans {
		return nil, "", reject(CodeLocked, "loans unlock at level %d", UnlockLoans)
	}

	var message string
	switch kind {
	case LoanFamily:
		if sess.Wealth+s.cfg.FamilyLoanAmount > s.cfg.FamilyLoanCeiling {
			return nil, "", reject(CodeLoanRejected, "family won't lend when you already have ₹%d", sess.Wealth)
		}
		sess.Wealth += s.cfg.FamilyLoanAmount
		sess.ApplyHappiness(-5)
		message = fmt.Sprintf("Your family sent ₹%d. It stings a little to ask.", s.cfg.FamilyLoanAmount)
		sess.AppendLog(fmt.Sprintf("Month %d: borrowed ₹%d from family", sess.CurrentMonth, s.cfg.FamilyLoanAmount))

	case LoanInstantApp:
		limit := int64(sess.CreditScore) * s.cfg.InstantLoanCreditMult
		if s.cfg.InstantLoanAmount > limit {
			return nil, "", reject(CodeLoanRejected, "instant app limit is ₹%d at your credit score", limit)
		}
		sess.Wealth += s.cfg.InstantLoanAmount
		sess.ApplyCredit(-50)
		sess.ApplyHappiness(5)
		if err := s.expenses.Create(ctx, &models.RecurringExpense{
			SessionID:   sess.ID,
			Name:        highInterestLoanName,
			Amount:      s.cfg.InstantLoanEMI,
			Category:    models.ExpenseDebt,
			IsEssential: true,
			StartMonth:  sess.CurrentMonth,
		}); err != nil {
			return nil, "", fmt.Errorf("failed to attach loan EMI: %w", err)
		}
		message = fmt.Sprintf("₹%d credited in 30 seconds! EMI of ₹%d/month starts now. Read the fine print?",
			s.cfg.InstantLoanAmount, s.cfg.InstantLoanEMI)
		sess.AppendLog(fmt.Sprintf("Month %d: took a ₹%d instant app loan", sess.CurrentMonth, s.cfg.InstantLoanAmount))

	case LoanBank:
		if sess.CreditScore < s.cfg.BankLoanMinCredit {
			return nil, "", reject(CodeLoanRejected, "bank requires a credit score of %d, yours is %d",
				s.cfg.BankLoanMinCredit, sess.CreditScore)
		}
		sess.Wealth += s.cfg.BankLoanAmount
		if err := s.expenses.Create(ctx, &models.RecurringExpense{
			SessionID:   sess.ID,
			Name:        bankLoanName,
			Amount:      s.cfg.BankLoanEMI,
			Category:    models.ExpenseDebt,
			IsEssential: true,
			StartMonth:  sess.CurrentMonth,
		}); err != nil {
			return nil, "", fmt.Errorf("failed to attach loan EMI: %w", err)
		}
		message = fmt.Sprintf("Personal loan of ₹%d approved. EMI ₹%d/month.", s.cfg.BankLoanAmount, s.cfg.BankLoanEMI)
		sess.AppendLog(fmt.Sprintf("Month %d: bank personal loan of ₹%d approved", sess.CurrentMonth, s.cfg.BankLoanAmount))

	default:
		return nil, "", reject(CodeInvalidLoan, "unknown loan type %q", kind)
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, message, nil
}
