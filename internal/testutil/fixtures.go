package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pennywise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates a monthly expense in the given category with the
// given amount (in cents), dated today.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category models.Category, amount int64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, userID, category, amount, time.Now().UTC())
}

// CreateTestExpenseOn creates a monthly expense dated on the given day.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, userID uint, category models.Category, amount int64, occurredAt time.Time) *models.Expense {
	t.Helper()

	day := occurredAt.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	expense := &models.Expense{
		UserID:     userID,
		Category:   category,
		Frequency:  models.FrequencyMonthly,
		Amount:     amount,
		OccurredAt: day,
		Note:       fmt.Sprintf("Test Expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a budget for the given category with a zeroed
// aggregate and a limit of $100.00.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, category models.Category) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		Category:    category,
		LimitAmount: 10000, // $100.00
		Icon:        "💰",
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestIncome creates an income record with the given amount (in cents).
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount int64) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID: userID,
		Source: fmt.Sprintf("Test Source %d", nextID()),
		Amount: amount,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
