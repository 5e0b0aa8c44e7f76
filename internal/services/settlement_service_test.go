package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"casafin/internal/models"
	"casafin/internal/testutil"
)

func TestSummarize(t *testing.T) {
	t.Run("aggregates_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("500.00"))
		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("250.50"))
		testutil.CreateTestExpense(t, db, budget.ID, testutil.Amount("100.00"))
		testutil.CreateTestSaving(t, db, budget.ID, testutil.Amount("50.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("200.00"))

		summary, err := svc.Summarize(budget.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Amount("750.50"), summary.TotalContributions)
		testutil.AssertDecimalEqual(t, testutil.Amount("100.00"), summary.TotalExpenses)
		testutil.AssertDecimalEqual(t, testutil.Amount("50.00"), summary.TotalSavings)
		testutil.AssertDecimalEqual(t, testutil.Amount("200.00"), summary.UnpaidDebtTotal)
		testutil.AssertDecimalEqual(t, decimal.Zero, summary.PaidDebtTotal)
		// 750.50 - 100 - 50 - 0
		testutil.AssertDecimalEqual(t, testutil.Amount("600.50"), summary.Surplus)
	})

	t.Run("budget_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))

		_, err := svc.Summarize(99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("paid_debt_reduces_surplus", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("300.00"))
		debt := testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("120.00"))
		now := time.Now()
		debt.Paid = true
		debt.PaidAt = &now
		if err := db.Save(debt).Error; err != nil {
			t.Fatalf("failed to mark debt paid: %v", err)
		}

		summary, err := svc.Summarize(budget.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Amount("120.00"), summary.PaidDebtTotal)
		testutil.AssertDecimalEqual(t, testutil.Amount("180.00"), summary.Surplus)
	})
}

func TestTransferSurplus(t *testing.T) {
	t.Run("pays_debts_then_saves_remainder", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		// Surplus 400 against 350 of unpaid debt.
		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("500.00"))
		testutil.CreateTestExpense(t, db, budget.ID, testutil.Amount("100.00"))
		first := testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("200.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("150.00"))

		result, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Amount("400.00"), result.Surplus)
		testutil.AssertDecimalEqual(t, testutil.Amount("350.00"), result.PaidToDebts)
		testutil.AssertDecimalEqual(t, testutil.Amount("50.00"), result.Saved)

		if len(result.DebtPayoffs) != 2 {
			t.Fatalf("expected 2 debt payoffs, got %d", len(result.DebtPayoffs))
		}
		if result.DebtPayoffs[0].DebtID != first.ID {
			t.Errorf("expected oldest debt %d paid first, got %d", first.ID, result.DebtPayoffs[0].DebtID)
		}
		testutil.AssertDecimalEqual(t, testutil.Amount("200.00"), result.DebtPayoffs[0].AmountPaid)
		testutil.AssertDecimalEqual(t, testutil.Amount("150.00"), result.DebtPayoffs[1].AmountPaid)

		// Both debts are now settled.
		var debts []models.Debt
		if err := db.Where("budget_id = ?", budget.ID).Find(&debts).Error; err != nil {
			t.Fatalf("failed to load debts: %v", err)
		}
		for _, d := range debts {
			if !d.Paid {
				t.Errorf("expected debt %d to be paid", d.ID)
			}
			if d.PaidAt == nil {
				t.Errorf("expected debt %d to have paid_at set", d.ID)
			}
		}

		// The remainder became an automatic saving.
		if result.SavingID == nil {
			t.Fatal("expected a saving to be created")
		}
		var saving models.Saving
		if err := db.First(&saving, *result.SavingID).Error; err != nil {
			t.Fatalf("failed to load saving: %v", err)
		}
		testutil.AssertDecimalEqual(t, testutil.Amount("50.00"), saving.Amount)
		if saving.Reason != "automatic saving from surplus" {
			t.Errorf("unexpected saving reason: %s", saving.Reason)
		}

		// Two debt movements and one saving movement, summing to the surplus.
		var movements []models.Movement
		if err := db.Where("budget_id = ?", budget.ID).Find(&movements).Error; err != nil {
			t.Fatalf("failed to load movements: %v", err)
		}
		debtMovements, savingMovements := 0, 0
		total := decimal.Zero
		for _, m := range movements {
			total = total.Add(m.Amount)
			switch m.Type {
			case models.MovementTypeDebt:
				debtMovements++
			case models.MovementTypeSaving:
				savingMovements++
			}
		}
		if debtMovements != 2 || savingMovements != 1 {
			t.Errorf("expected 2 debt + 1 saving movements, got %d + %d", debtMovements, savingMovements)
		}
		testutil.AssertDecimalEqual(t, result.Surplus, total)
	})

	t.Run("no_surplus", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("100.00"))
		testutil.CreateTestExpense(t, db, budget.ID, testutil.Amount("100.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("50.00"))

		_, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertAppError(t, err, "NO_SURPLUS")

		// Nothing was written.
		var debt models.Debt
		if err := db.Where("budget_id = ?", budget.ID).First(&debt).Error; err != nil {
			t.Fatalf("failed to load debt: %v", err)
		}
		if debt.Paid {
			t.Error("expected debt to remain unpaid")
		}
		var movementCount int64
		if err := db.Model(&models.Movement{}).Where("budget_id = ?", budget.ID).Count(&movementCount).Error; err != nil {
			t.Fatalf("failed to count movements: %v", err)
		}
		if movementCount != 0 {
			t.Errorf("expected no movements, got %d", movementCount)
		}
	})

	t.Run("negative_surplus", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("50.00"))
		testutil.CreateTestExpense(t, db, budget.ID, testutil.Amount("80.00"))

		_, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertAppError(t, err, "NO_SURPLUS")
	})

	t.Run("budget_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))

		_, err := svc.TransferSurplus(99999, 1)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("all_to_savings_without_debts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("300.00"))

		result, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Amount("300.00"), result.Surplus)
		testutil.AssertDecimalEqual(t, decimal.Zero, result.PaidToDebts)
		testutil.AssertDecimalEqual(t, testutil.Amount("300.00"), result.Saved)
		if len(result.DebtPayoffs) != 0 {
			t.Errorf("expected no debt payoffs, got %d", len(result.DebtPayoffs))
		}
		if result.SavingID == nil {
			t.Fatal("expected a saving to be created")
		}
	})

	t.Run("surplus_covers_only_oldest_debts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		// Surplus 250, unpaid 150 + 300 = 450. The pool covers the first
		// debt fully and the remainder is absorbed by the second.
		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("250.00"))
		first := testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("150.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("300.00"))

		result, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Amount("250.00"), result.PaidToDebts)
		testutil.AssertDecimalEqual(t, decimal.Zero, result.Saved)
		if result.SavingID != nil {
			t.Error("expected no saving when nothing remains")
		}
		if len(result.DebtPayoffs) != 2 {
			t.Fatalf("expected 2 payoffs, got %d", len(result.DebtPayoffs))
		}
		if result.DebtPayoffs[0].DebtID != first.ID {
			t.Errorf("expected oldest debt %d first, got %d", first.ID, result.DebtPayoffs[0].DebtID)
		}
		testutil.AssertDecimalEqual(t, testutil.Amount("150.00"), result.DebtPayoffs[0].AmountPaid)
		testutil.AssertDecimalEqual(t, testutil.Amount("100.00"), result.DebtPayoffs[1].AmountPaid)
	})

	t.Run("contributions_unchanged_by_settlement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("500.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("200.00"))

		before, err := svc.Summarize(budget.ID)
		testutil.AssertNoError(t, err)

		result, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		after, err := svc.Summarize(budget.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, before.TotalContributions, after.TotalContributions)
		testutil.AssertDecimalEqual(t, before.PaidDebtTotal.Add(result.PaidToDebts), after.PaidDebtTotal)
		testutil.AssertDecimalEqual(t, before.TotalSavings.Add(result.Saved), after.TotalSavings)
		testutil.AssertDecimalEqual(t, decimal.Zero, after.Surplus)
	})

	t.Run("second_call_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("400.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("100.00"))

		_, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertAppError(t, err, "NO_SURPLUS")

		var movementCount int64
		if err := db.Model(&models.Movement{}).Where("budget_id = ?", budget.ID).Count(&movementCount).Error; err != nil {
			t.Fatalf("failed to count movements: %v", err)
		}
		if movementCount != 2 {
			t.Errorf("expected movements only from the first transfer, got %d", movementCount)
		}
	})

	t.Run("movements_share_the_settlement_timestamp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db)).(*settlementService)
		settledAt := time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)
		svc.now = func() time.Time { return settledAt }
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("400.00"))
		debt := testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("100.00"))

		_, err := svc.TransferSurplus(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		settled, err := NewDebtService(db, NewMovementService(db)).GetDebtByID(debt.ID)
		testutil.AssertNoError(t, err)
		if settled.PaidAt == nil || !settled.PaidAt.Equal(settledAt) {
			t.Errorf("expected paid_at %v, got %v", settledAt, settled.PaidAt)
		}

		var movements []models.Movement
		if err := db.Where("budget_id = ?", budget.ID).Find(&movements).Error; err != nil {
			t.Fatalf("failed to load movements: %v", err)
		}
		for _, m := range movements {
			if !m.Date.Equal(settledAt) {
				t.Errorf("expected movement %d dated %v, got %v", m.ID, settledAt, m.Date)
			}
		}
	})
}

func TestCloseMonth(t *testing.T) {
	t.Run("with_surplus", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("200.00"))

		result, err := svc.CloseMonth(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		if result.Settlement == nil {
			t.Fatal("expected a settlement result")
		}
		testutil.AssertDecimalEqual(t, testutil.Amount("200.00"), result.Settlement.Surplus)
		if result.Message == "" {
			t.Error("expected a confirmation message")
		}
	})

	t.Run("without_surplus", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		result, err := svc.CloseMonth(budget.ID, user.ID)
		testutil.AssertNoError(t, err)

		if result.Settlement != nil {
			t.Error("expected no settlement without surplus")
		}
		if result.Message == "" {
			t.Error("expected a confirmation message")
		}
	})

	t.Run("budget_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, NewMovementService(db))

		_, err := svc.CloseMonth(99999, 1)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
