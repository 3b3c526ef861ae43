package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// incomeService handles income entries. Income never feeds a budget
// aggregate; it only appears in the dashboard summary.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records a new income entry.
func (s *incomeService) CreateIncome(userID uint, source string, amount int64, reference string) (*models.Income, error) {
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source is required")
	}
	if amount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	income := &models.Income{
		UserID:    userID,
		Source:    source,
		Amount:    amount,
		Reference: reference,
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return income, nil
}

// GetUserIncomes returns a paginated list of the user's income entries.
func (s *incomeService) GetUserIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves an income entry by ID for a specific user.
func (s *incomeService) GetIncomeByID(userID, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &income, nil
}

// UpdateIncome replaces an income entry's fields.
func (s *incomeService) UpdateIncome(userID, incomeID uint, source string, amount int64, reference string) (*models.Income, error) {
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source is required")
	}
	if amount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	income.Source = source
	income.Amount = amount
	income.Reference = reference
	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return income, nil
}

// DeleteIncome removes an income entry.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
