package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// reconcileService is the correctness backstop for the delta scheme: it
// recomputes a budget's aggregate from the raw ledger and overwrites the
// stored pair when they diverge. Safe to run repeatedly or on a schedule;
// with no intervening mutations a second pass always reports no correction.
type reconcileService struct {
	db      *gorm.DB
	reports ReportServicer
}

// NewReconcileService creates a new ReconcileServicer.
func NewReconcileService(db *gorm.DB, reports ReportServicer) ReconcileServicer {
	return &reconcileService{db: db, reports: reports}
}

// Reconcile recomputes one budget's Spent/ItemCount from the ledger and
// repairs it if the stored values drifted. The read and the overwrite share
// a transaction so a concurrent expense mutation cannot slip between them.
func (s *reconcileService) Reconcile(userID uint, category models.Category) (*ReconcileResult, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	var result *ReconcileResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.Where("user_id = ? AND category = ?", userID, category).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}

		spent, items, err := s.reports.LedgerTotals(tx, userID, category)
		if err != nil {
			return err
		}

		before := AggregateState{Spent: budget.Spent, Items: budget.ItemCount}
		after := AggregateState{Spent: spent, Items: items}
		corrected := before != after

		if corrected {
			if err := tx.Model(&budget).Updates(map[string]interface{}{
				"spent":      spent,
				"item_count": items,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
			}
			logger.Get().Warnw("repaired budget drift",
				"user_id", userID,
				"category", category,
				"spent_before", before.Spent,
				"spent_after", after.Spent,
				"items_before", before.Items,
				"items_after", after.Items,
			)
		}

		result = &ReconcileResult{
			Category:  category,
			Before:    before,
			After:     after,
			Corrected: corrected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReconcileAll reconciles every budget the user has and returns the
// corrections that were applied.
func (s *reconcileService) ReconcileAll(userID uint) ([]ReconcileResult, error) {
	var categories []models.Category
	if err := s.db.Model(&models.Budget{}).
		Where("user_id = ?", userID).
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	corrections := make([]ReconcileResult, 0)
	for _, category := range categories {
		result, err := s.Reconcile(userID, category)
		if err != nil {
			// The budget may have been deleted since the category list was
			// read; skip it and keep sweeping.
			if errors.Is(err, apperrors.ErrBudgetNotFound) {
				continue
			}
			return nil, err
		}
		if result.Corrected {
			corrections = append(corrections, *result)
		}
	}
	return corrections, nil
}

// Sweep reconciles all budgets of all users and returns how many corrections
// were applied. Run from the background ticker and the ops endpoint.
func (s *reconcileService) Sweep() (int, error) {
	var userIDs []uint
	if err := s.db.Model(&models.Budget{}).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	total := 0
	for _, userID := range userIDs {
		corrections, err := s.ReconcileAll(userID)
		if err != nil {
			return total, err
		}
		total += len(corrections)
	}

	if total > 0 {
		logger.Get().Infow("reconcile sweep applied corrections", "corrections", total, "users", len(userIDs))
	}
	return total, nil
}
