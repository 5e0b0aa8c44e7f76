package services

import (
	"testing"
	"time"

	"casafin/internal/models"
	"casafin/internal/pagination"
	"casafin/internal/testutil"
)

func TestCreateSaving(t *testing.T) {
	t.Run("creates_saving_with_movement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		saving, err := svc.CreateSaving(user.ID, budget.ID, testutil.Amount("120.00"), "vacation fund", "", nil)
		testutil.AssertNoError(t, err)

		if saving.ID == 0 {
			t.Fatal("expected non-zero saving ID")
		}

		var movement models.Movement
		if err := db.Where("budget_id = ? AND type = ?", budget.ID, models.MovementTypeSaving).First(&movement).Error; err != nil {
			t.Fatalf("expected a saving movement: %v", err)
		}
		testutil.AssertDecimalEqual(t, saving.Amount, movement.Amount)
		if movement.ReferenceID != saving.ID {
			t.Errorf("expected movement reference %d, got %d", saving.ID, movement.ReferenceID)
		}
		if movement.UserID == nil || *movement.UserID != user.ID {
			t.Errorf("expected acting user %d on movement, got %v", user.ID, movement.UserID)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		_, err := svc.CreateSaving(user.ID, budget.ID, testutil.Amount("0.00"), "", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("budget_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSaving(user.ID, 99999, testutil.Amount("10.00"), "", "", nil)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestGetBudgetSavings(t *testing.T) {
	t.Run("lists_savings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		testutil.CreateTestSaving(t, db, budget.ID, testutil.Amount("30.00"))
		testutil.CreateTestSaving(t, db, budget.ID, testutil.Amount("70.00"))

		result, err := svc.GetBudgetSavings(budget.ID, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 savings, got %d", result.TotalItems)
		}
	})
}
