package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// expenseService maintains the expense ledger and the per-category budget
// aggregates derived from it. Deltas are the unit of mutation: each ledger
// write applies a signed (amount, count) pair to the matching budget row in
// the same database transaction, so a crash can never commit one without the
// other. A blind recompute would cost a full ledger scan per write; a delta
// is a single row update.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// dateOnly truncates a timestamp to its calendar date in UTC. Expenses are
// attributed to days, not instants; normalizing at write time keeps the
// daily GROUP BY exact.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateExpenseInput(category models.Category, frequency models.Frequency, amount int64) error {
	if !category.Valid() {
		return apperrors.ErrInvalidCategory
	}
	if !frequency.Valid() {
		return apperrors.ErrInvalidFrequency
	}
	if amount < 0 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

// applyBudgetDelta adds (amountDelta, countDelta) to the budget matching
// (userID, category), if one exists. The increment happens inside the UPDATE
// statement itself, so concurrent deltas against the same budget serialize
// at the row and none are lost. No matching budget is not an error: the
// expense stays in the ledger and reporting reads the ledger directly.
func applyBudgetDelta(tx *gorm.DB, userID uint, category models.Category, amountDelta, countDelta int64) error {
	result := tx.Model(&models.Budget{}).
		Where("user_id = ? AND category = ?", userID, category).
		Updates(map[string]interface{}{
			"spent":      gorm.Expr("spent + ?", amountDelta),
			"item_count": gorm.Expr("item_count + ?", countDelta),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, result.Error)
	}
	return nil
}

// RecordExpense validates and persists a new expense, then credits the
// matching budget with (+amount, +1).
func (s *expenseService) RecordExpense(
	userID uint,
	category models.Category,
	frequency models.Frequency,
	amount int64,
	occurredAt time.Time,
	note string,
) (*models.Expense, error) {
	if err := validateExpenseInput(category, frequency, amount); err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	expense := &models.Expense{
		UserID:     userID,
		Category:   category,
		Frequency:  frequency,
		Amount:     amount,
		OccurredAt: dateOnly(occurredAt),
		Note:       note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		return applyBudgetDelta(tx, userID, category, amount, 1)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense replaces an expense's mutable fields and compensates the
// budget aggregates. A category move decrements the old budget and credits
// the new one; both halves commit together with the ledger write or not at
// all. Within one category the two deltas collapse to a single net amount.
func (s *expenseService) UpdateExpense(
	userID, expenseID uint,
	category models.Category,
	frequency models.Frequency,
	amount int64,
	occurredAt time.Time,
	note string,
) (*models.Expense, error) {
	if err := validateExpenseInput(category, frequency, amount); err != nil {
		return nil, err
	}

	var updated *models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}

		oldCategory := expense.Category
		oldAmount := expense.Amount

		expense.Category = category
		expense.Frequency = frequency
		expense.Amount = amount
		expense.OccurredAt = dateOnly(occurredAt)
		expense.Note = note

		if err := tx.Save(&expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}

		if oldCategory == category {
			if delta := amount - oldAmount; delta != 0 {
				if err := applyBudgetDelta(tx, userID, category, delta, 0); err != nil {
					return err
				}
			}
		} else {
			if err := applyBudgetDelta(tx, userID, oldCategory, -oldAmount, -1); err != nil {
				return err
			}
			if err := applyBudgetDelta(tx, userID, category, amount, 1); err != nil {
				return err
			}
		}

		updated = &expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExpense removes an expense from the ledger and debits the matching
// budget with (-amount, -1).
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}

		if err := applyBudgetDelta(tx, userID, expense.Category, -expense.Amount, -1); err != nil {
			return err
		}

		if err := tx.Delete(&expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		return nil
	})
}

// GetExpenseByID retrieves an expense by ID for a specific user.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &expense, nil
}

// GetUserExpenses retrieves a paginated, filtered list of the user's expenses.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("occurred_at ASC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Frequency != nil {
		q = q.Where("frequency = ?", *f.Frequency)
	}
	if f.FromDate != nil {
		q = q.Where("occurred_at >= ?", dateOnly(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("occurred_at <= ?", dateOnly(*f.ToDate))
	}
	return q
}
