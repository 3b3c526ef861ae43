package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// budgetService handles budget lifecycle and metadata. The derived
// Spent/ItemCount pair is written here only once, at creation, when it is
// seeded from the ledger; afterwards the expense service and the reconciler
// own it.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates the budget for a category. Seeding from existing
// expenses is mandatory: matching expenses may predate the budget, and
// starting from zero would leave the aggregate permanently stale.
func (s *budgetService) CreateBudget(userID uint, category models.Category, limitAmount int64, icon string) (*models.Budget, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if limitAmount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	budget := &models.Budget{
		UserID:      userID,
		Category:    category,
		LimitAmount: limitAmount,
	}
	if icon != "" {
		budget.Icon = icon
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Budget{}).
			Where("user_id = ? AND category = ?", userID, category).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		if count > 0 {
			return apperrors.ErrBudgetExists
		}

		var seed struct {
			Total int64
			Items int64
		}
		if err := tx.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS items").
			Where("user_id = ? AND category = ?", userID, category).
			Scan(&seed).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		budget.Spent = seed.Total
		budget.ItemCount = seed.Items

		if err := tx.Create(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// GetUserBudgets returns a paginated list of the user's budgets.
func (s *budgetService) GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &budget, nil
}

// UpdateBudget edits limit and icon. It never touches Spent or ItemCount.
func (s *budgetService) UpdateBudget(userID, budgetID uint, limitAmount *int64, icon string) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if limitAmount != nil {
		if *limitAmount < 0 {
			return nil, apperrors.ErrInvalidAmount
		}
		updates["limit_amount"] = *limitAmount
	}
	if icon != "" {
		updates["icon"] = icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
	}

	return budget, nil
}

// DeleteBudget removes the aggregate. Its expenses stay in the ledger and
// are re-seeded if a budget for the category is created again.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
