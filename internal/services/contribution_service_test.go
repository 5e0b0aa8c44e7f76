package services

import (
	"strings"
	"testing"
	"time"

	"casafin/internal/models"
	"casafin/internal/testutil"
)

func TestCreateContribution(t *testing.T) {
	t.Run("by_registered_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewContributionService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		contribution, err := svc.CreateContribution(budget.ID, testutil.Amount("150.00"), &user.ID, "", "", "", nil)
		testutil.AssertNoError(t, err)

		if contribution.ID == 0 {
			t.Fatal("expected non-zero contribution ID")
		}
		if contribution.Kind != models.ContributionKindManual {
			t.Errorf("expected manual kind by default, got %s", contribution.Kind)
		}

		// One matching movement with the contributor in the description.
		var movement models.Movement
		if err := db.Where("budget_id = ? AND type = ?", budget.ID, models.MovementTypeContribution).First(&movement).Error; err != nil {
			t.Fatalf("expected a contribution movement: %v", err)
		}
		testutil.AssertDecimalEqual(t, contribution.Amount, movement.Amount)
		if movement.ReferenceID != contribution.ID {
			t.Errorf("expected movement reference %d, got %d", contribution.ID, movement.ReferenceID)
		}
		if !strings.Contains(movement.Description, user.Email) {
			t.Errorf("expected contributor in description, got %q", movement.Description)
		}
	})

	t.Run("by_named_contributor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewContributionService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		contribution, err := svc.CreateContribution(budget.ID, testutil.Amount("75.00"), nil, "Abuela", "", "monthly help", nil)
		testutil.AssertNoError(t, err)

		if contribution.ContributorName != "Abuela" {
			t.Errorf("expected contributor name kept, got %q", contribution.ContributorName)
		}
		if contribution.UserID != nil {
			t.Error("expected no user for a named contributor")
		}
	})

	t.Run("missing_contributor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewContributionService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		_, err := svc.CreateContribution(budget.ID, testutil.Amount("75.00"), nil, "", "", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewContributionService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		_, err := svc.CreateContribution(budget.ID, testutil.Amount("0.00"), &user.ID, "", "", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("budget_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewContributionService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateContribution(99999, testutil.Amount("75.00"), &user.ID, "", "", "", nil)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewContributionService(db, NewMovementService(db))
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user, time.Now())

		ghost := uint(99999)
		_, err := svc.CreateContribution(budget.ID, testutil.Amount("75.00"), &ghost, "", "", "", nil)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
