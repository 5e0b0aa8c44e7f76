package services

import (
	"testing"
	"time"

	"casafin/internal/pagination"
	"casafin/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("normalizes_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, time.Date(2025, 6, 17, 14, 30, 0, 0, time.UTC), testutil.Amount("1200.00"))
		testutil.AssertNoError(t, err)

		want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		if !budget.Month.Equal(want) {
			t.Errorf("expected month %v, got %v", want, budget.Month)
		}
		if budget.FamilyID != user.GroupID {
			t.Errorf("expected family %s, got %s", user.GroupID, budget.FamilyID)
		}
	})

	t.Run("duplicate_month_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateBudget(user.ID, month, testutil.Amount("1000.00"))
		testutil.AssertNoError(t, err)

		// Same month through a different day of month.
		_, err = svc.CreateBudget(user.ID, month.AddDate(0, 0, 20), testutil.Amount("900.00"))
		testutil.AssertAppError(t, err, "BUDGET_EXISTS")
	})

	t.Run("same_month_different_family", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateBudget(user1.ID, month, testutil.Amount("1000.00"))
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user2.ID, month, testutil.Amount("800.00"))
		testutil.AssertNoError(t, err)
	})

	t.Run("negative_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, time.Now(), testutil.Amount("-10.00"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("creator_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))

		_, err := svc.CreateBudget(99999, time.Now(), testutil.Amount("100.00"))
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetFamilyBudgets(t *testing.T) {
	t.Run("newest_month_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		older := testutil.CreateTestBudget(t, db, user, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
		newer := testutil.CreateTestBudget(t, db, user, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetFamilyBudgets(user.GroupID, page)
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(result.Data))
		}
		if result.Data[0].ID != newer.ID || result.Data[1].ID != older.ID {
			t.Error("expected budgets ordered newest month first")
		}
	})

	t.Run("excludes_other_families", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user, time.Now())
		testutil.CreateTestBudget(t, db, stranger, time.Now())

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetFamilyBudgets(user.GroupID, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 budget for the family, got %d", result.TotalItems)
		}
	})
}

func TestGetBudgetByID(t *testing.T) {
	t.Run("preloads_collections", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestContribution(t, db, budget.ID, testutil.Amount("100.00"))
		testutil.CreateTestExpense(t, db, budget.ID, testutil.Amount("40.00"))
		testutil.CreateTestDebt(t, db, budget.ID, testutil.Amount("25.00"))
		testutil.CreateTestSaving(t, db, budget.ID, testutil.Amount("10.00"))

		loaded, err := svc.GetBudgetByID(budget.ID)
		testutil.AssertNoError(t, err)

		if len(loaded.Contributions) != 1 || len(loaded.Expenses) != 1 || len(loaded.Debts) != 1 || len(loaded.Savings) != 1 {
			t.Errorf("expected all collections preloaded, got %d/%d/%d/%d",
				len(loaded.Contributions), len(loaded.Expenses), len(loaded.Debts), len(loaded.Savings))
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewUserService(db))

		_, err := svc.GetBudgetByID(99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
