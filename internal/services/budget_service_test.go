package services

import (
	"testing"
	"time"

	"pennywise/internal/models"
	"pennywise/internal/pagination"
	"pennywise/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := budSvc.CreateBudget(user.ID, models.CategoryGroceries, 50000, "🛒")
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if budget.Spent != 0 || budget.ItemCount != 0 {
			t.Errorf("expected zeroed aggregate, got spent=%d items=%d", budget.Spent, budget.ItemCount)
		}
		if budget.Icon != "🛒" {
			t.Errorf("expected icon 🛒, got %s", budget.Icon)
		}
	})

	t.Run("seeds_from_existing_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryGroceries, 1500)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryGroceries, 2500)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryShopping, 9999)

		budget, err := budSvc.CreateBudget(user.ID, models.CategoryGroceries, 50000, "")
		testutil.AssertNoError(t, err)

		if budget.Spent != 4000 {
			t.Errorf("expected seeded spent 4000, got %d", budget.Spent)
		}
		if budget.ItemCount != 2 {
			t.Errorf("expected seeded item count 2, got %d", budget.ItemCount)
		}
	})

	t.Run("duplicate_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := budSvc.CreateBudget(user.ID, models.CategoryUtilities, 10000, "")
		testutil.AssertNoError(t, err)

		_, err = budSvc.CreateBudget(user.ID, models.CategoryUtilities, 20000, "")
		testutil.AssertAppError(t, err, "BUDGET_EXISTS")
	})

	t.Run("same_category_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := budSvc.CreateBudget(user1.ID, models.CategoryUtilities, 10000, "")
		testutil.AssertNoError(t, err)

		_, err = budSvc.CreateBudget(user2.ID, models.CategoryUtilities, 20000, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := budSvc.CreateBudget(user.ID, "yachts", 10000, "")
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})

	t.Run("negative_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := budSvc.CreateBudget(user.ID, models.CategoryOther, -1, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("metadata_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		expSvc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := budSvc.CreateBudget(user.ID, models.CategoryGroceries, 10000, "")
		testutil.AssertNoError(t, err)

		_, err = expSvc.RecordExpense(user.ID, models.CategoryGroceries, models.FrequencyMonthly, 2500, time.Now(), "")
		testutil.AssertNoError(t, err)

		limit := int64(99000)
		_, err = budSvc.UpdateBudget(user.ID, budget.ID, &limit, "🍞")
		testutil.AssertNoError(t, err)

		updated, err := budSvc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		if updated.LimitAmount != 99000 {
			t.Errorf("expected limit 99000, got %d", updated.LimitAmount)
		}
		if updated.Icon != "🍞" {
			t.Errorf("expected icon 🍞, got %s", updated.Icon)
		}
		// The derived aggregate must survive a metadata edit untouched.
		if updated.Spent != 2500 || updated.ItemCount != 1 {
			t.Errorf("expected spent=2500 items=1, got spent=%d items=%d", updated.Spent, updated.ItemCount)
		}
	})

	t.Run("negative_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryOther)

		limit := int64(-5)
		_, err := budSvc.UpdateBudget(user.ID, budget.ID, &limit, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		limit := int64(100)
		_, err := budSvc.UpdateBudget(user.ID, 99999, &limit, "")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("expenses_survive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		expSvc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryGroceries)
		expense := testutil.CreateTestExpense(t, db, user.ID, models.CategoryGroceries, 1000)

		err := budSvc.DeleteBudget(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		_, err = budSvc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		_, err = expSvc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("recreate_reseeds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryGroceries, 1000)

		budget, err := budSvc.CreateBudget(user.ID, models.CategoryGroceries, 10000, "")
		testutil.AssertNoError(t, err)

		err = budSvc.DeleteBudget(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		recreated, err := budSvc.CreateBudget(user.ID, models.CategoryGroceries, 20000, "")
		testutil.AssertNoError(t, err)

		if recreated.Spent != 1000 || recreated.ItemCount != 1 {
			t.Errorf("expected reseeded spent=1000 items=1, got spent=%d items=%d", recreated.Spent, recreated.ItemCount)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		budSvc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user1.ID, models.CategoryGroceries)

		err := budSvc.DeleteBudget(user2.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestGetUserBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	budSvc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestBudget(t, db, user.ID, models.CategoryShopping)
	testutil.CreateTestBudget(t, db, user.ID, models.CategoryGroceries)

	result, err := budSvc.GetUserBudgets(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Fatalf("expected 2 budgets, got %d", result.TotalItems)
	}
	if result.Data[0].Category != models.CategoryGroceries {
		t.Errorf("expected budgets ordered by category, got %s first", result.Data[0].Category)
	}
}
