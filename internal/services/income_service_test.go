package services

import (
	"testing"

	"pennywise/internal/pagination"
	"pennywise/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incSvc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		income, err := incSvc.CreateIncome(user.ID, "Salary", 500000, "JUL-2026")
		testutil.AssertNoError(t, err)

		if income.ID == 0 {
			t.Fatal("expected non-zero income ID")
		}
		if income.Amount != 500000 {
			t.Errorf("expected amount 500000, got %d", income.Amount)
		}
	})

	t.Run("missing_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incSvc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := incSvc.CreateIncome(user.ID, "", 100, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incSvc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := incSvc.CreateIncome(user.ID, "Salary", -100, "")
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestUpdateIncome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incSvc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestIncome(t, db, user.ID, 1000)

		updated, err := incSvc.UpdateIncome(user.ID, income.ID, "Freelance", 2000, "INV-42")
		testutil.AssertNoError(t, err)

		if updated.Source != "Freelance" || updated.Amount != 2000 {
			t.Errorf("expected Freelance/2000, got %s/%d", updated.Source, updated.Amount)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incSvc := NewIncomeService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestIncome(t, db, user1.ID, 1000)

		_, err := incSvc.UpdateIncome(user2.ID, income.ID, "Freelance", 2000, "")
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}

func TestDeleteIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	incSvc := NewIncomeService(db)
	user := testutil.CreateTestUser(t, db)
	income := testutil.CreateTestIncome(t, db, user.ID, 1000)

	err := incSvc.DeleteIncome(user.ID, income.ID)
	testutil.AssertNoError(t, err)

	_, err = incSvc.GetIncomeByID(user.ID, income.ID)
	testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
}

func TestGetUserIncomes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	incSvc := NewIncomeService(db)
	user1 := testutil.CreateTestUser(t, db)
	user2 := testutil.CreateTestUser(t, db)
	testutil.CreateTestIncome(t, db, user1.ID, 1000)
	testutil.CreateTestIncome(t, db, user1.ID, 2000)
	testutil.CreateTestIncome(t, db, user2.ID, 9000)

	result, err := incSvc.GetUserIncomes(user1.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 incomes, got %d", result.TotalItems)
	}
}
