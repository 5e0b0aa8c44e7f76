package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "casafin/internal/errors"
	"casafin/internal/logger"
	"casafin/internal/models"
)

// settlementService implements the monthly surplus settlement engine:
// compute a budget's surplus, pay off outstanding debts oldest-first, and
// push whatever remains into savings.
type settlementService struct {
	db        *gorm.DB
	movements MovementServicer
	now       func() time.Time
}

// NewSettlementService creates a new SettlementServicer.
func NewSettlementService(db *gorm.DB, movements MovementServicer) SettlementServicer {
	return &settlementService{db: db, movements: movements, now: time.Now}
}

// budgetTotals holds the aggregates the engine works from.
type budgetTotals struct {
	contributions decimal.Decimal
	expenses      decimal.Decimal
	savings       decimal.Decimal
	paidDebt      decimal.Decimal
	unpaidDebt    decimal.Decimal
	unpaidDebts   []models.Debt
}

// surplus = contributions - expenses - savings - already-paid debts.
func (t *budgetTotals) surplus() decimal.Decimal {
	return t.contributions.Sub(t.expenses).Sub(t.savings).Sub(t.paidDebt)
}

// loadTotals aggregates a budget's amounts on the given handle. Sums are
// computed in decimal arithmetic over the loaded rows so no precision is
// lost in the database round trip; the unpaid debts come back ordered by
// creation time for FIFO payoff.
func (s *settlementService) loadTotals(tx *gorm.DB, budgetID uint) (*budgetTotals, error) {
	totals := &budgetTotals{
		contributions: decimal.Zero,
		expenses:      decimal.Zero,
		savings:       decimal.Zero,
		paidDebt:      decimal.Zero,
		unpaidDebt:    decimal.Zero,
	}

	var contributions []models.Contribution
	if err := tx.Where("budget_id = ?", budgetID).Find(&contributions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, c := range contributions {
		totals.contributions = totals.contributions.Add(c.Amount)
	}

	var expenses []models.Expense
	if err := tx.Where("budget_id = ?", budgetID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, e := range expenses {
		totals.expenses = totals.expenses.Add(e.Amount)
	}

	var savings []models.Saving
	if err := tx.Where("budget_id = ?", budgetID).Find(&savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, sv := range savings {
		totals.savings = totals.savings.Add(sv.Amount)
	}

	var debts []models.Debt
	if err := tx.Where("budget_id = ?", budgetID).Order("created_at ASC").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, d := range debts {
		if d.Paid {
			totals.paidDebt = totals.paidDebt.Add(d.Amount)
		} else {
			totals.unpaidDebt = totals.unpaidDebt.Add(d.Amount)
			totals.unpaidDebts = append(totals.unpaidDebts, d)
		}
	}

	return totals, nil
}

// lockBudget loads the budget and, on postgres, takes a row lock so
// concurrent surplus transfers against the same budget serialize instead of
// double-spending. The sqlite test driver does not accept FOR UPDATE.
func (s *settlementService) lockBudget(tx *gorm.DB, budgetID uint) (*models.Budget, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var budget models.Budget
	if err := q.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Summarize returns a budget's aggregate amounts and its current surplus.
func (s *settlementService) Summarize(budgetID uint) (*BudgetSummary, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals, err := s.loadTotals(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	return &BudgetSummary{
		BudgetID:           budget.ID,
		TargetAmount:       budget.TargetAmount,
		TotalContributions: totals.contributions,
		TotalExpenses:      totals.expenses,
		TotalSavings:       totals.savings,
		PaidDebtTotal:      totals.paidDebt,
		UnpaidDebtTotal:    totals.unpaidDebt,
		Surplus:            totals.surplus(),
	}, nil
}

// TransferSurplus redistributes a budget's surplus: unpaid debts are paid
// off oldest-first, each in full, until the debt pool is exhausted; the
// remainder becomes an automatic saving. The whole redistribution commits
// or rolls back as one transaction. With no positive surplus nothing is
// written and ErrNoSurplus is returned, which makes a repeat call after a
// successful transfer a harmless no-op.
func (s *settlementService) TransferSurplus(budgetID, actingUserID uint) (*SettlementResult, error) {
	var result *SettlementResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := s.lockBudget(tx, budgetID)
		if err != nil {
			return err
		}

		totals, err := s.loadTotals(tx, budgetID)
		if err != nil {
			return err
		}

		surplus := totals.surplus()
		if !surplus.IsPositive() {
			return apperrors.ErrNoSurplus
		}

		amountForDebts := decimal.Min(surplus, totals.unpaidDebt)
		amountForSavings := surplus.Sub(amountForDebts)

		result = &SettlementResult{
			Surplus:     surplus,
			PaidToDebts: amountForDebts,
			Saved:       amountForSavings,
			DebtPayoffs: []DebtPayoff{},
		}

		userID := actingUserID
		now := s.now()

		// FIFO payoff. amountForDebts was capped at the unpaid total, so
		// every debt reached before the pool runs out is paid in full;
		// debts beyond that point stay untouched.
		remaining := amountForDebts
		for i := range totals.unpaidDebts {
			if !remaining.IsPositive() {
				break
			}
			debt := &totals.unpaidDebts[i]

			paid := decimal.Min(debt.Amount, remaining)
			debt.Paid = true
			debt.PaidAt = &now
			if err := tx.Save(debt).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			if _, err := s.movements.Record(tx, budget.ID, models.MovementTypeDebt,
				paid, now, &userID,
				"automatic debt payment on surplus transfer",
				debt.ID, debt.OriginBillID); err != nil {
				return err
			}

			remaining = remaining.Sub(paid)
			result.DebtPayoffs = append(result.DebtPayoffs, DebtPayoff{DebtID: debt.ID, AmountPaid: paid})
		}

		if amountForSavings.IsPositive() {
			saving := &models.Saving{
				BudgetID: budget.ID,
				Amount:   amountForSavings,
				Reason:   "automatic saving from surplus",
				Note:     "automatic surplus transfer",
			}
			if err := tx.Create(saving).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			if _, err := s.movements.Record(tx, budget.ID, models.MovementTypeSaving,
				saving.Amount, now, &userID,
				"automatic saving from surplus",
				saving.ID, nil); err != nil {
				return err
			}

			result.SavingID = &saving.ID
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("surplus transferred",
		"budget_id", budgetID,
		"surplus", result.Surplus.String(),
		"paid_to_debts", result.PaidToDebts.String(),
		"saved", result.Saved.String(),
		"debts_paid", len(result.DebtPayoffs),
	)
	return result, nil
}

// CloseMonth settles a budget's surplus and wraps the outcome in a
// confirmation message. A month without surplus still closes; no closed
// state is persisted on the budget itself.
func (s *settlementService) CloseMonth(budgetID, actingUserID uint) (*CloseMonthResult, error) {
	settlement, err := s.TransferSurplus(budgetID, actingUserID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrNoSurplus.Code {
			return &CloseMonthResult{Message: "Month closed; there was no surplus to transfer"}, nil
		}
		return nil, err
	}

	return &CloseMonthResult{
		Message: fmt.Sprintf("Month closed; surplus of %s transferred (%s to debts, %s to savings)",
			settlement.Surplus.StringFixed(2), settlement.PaidToDebts.StringFixed(2), settlement.Saved.StringFixed(2)),
		Settlement: settlement,
	}, nil
}
