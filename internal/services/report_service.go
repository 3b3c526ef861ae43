package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// reportService derives calendar-bucketed and per-category read views
// directly from the expense ledger. It never reads the denormalized budget
// aggregates, so reporting stays correct even while an aggregate is stale.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// DailyTotals groups the user's expenses by calendar day and sums amounts,
// ascending by date. Only days with at least one matching expense produce a
// bucket; the presentation layer zero-fills its own display window.
func (s *reportService) DailyTotals(userID uint, frequency *models.Frequency, fromDate, toDate *time.Time) ([]DailyBucket, error) {
	q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if frequency != nil {
		q = q.Where("frequency = ?", *frequency)
	}
	if fromDate != nil {
		q = q.Where("occurred_at >= ?", dateOnly(*fromDate))
	}
	if toDate != nil {
		q = q.Where("occurred_at <= ?", dateOnly(*toDate))
	}

	var rows []struct {
		OccurredAt time.Time
		Total      int64
	}
	if err := q.Select("occurred_at, COALESCE(SUM(amount), 0) AS total").
		Group("occurred_at").
		Order("occurred_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	buckets := make([]DailyBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, DailyBucket{
			Date:  row.OccurredAt.UTC().Format("2006-01-02"),
			Total: row.Total,
		})
	}
	return buckets, nil
}

// CategoryTotals sums the ledger per taxonomy category. Every category is
// present in the result, zero-valued when it has no expenses. This is the
// ground truth the reconciler checks budget aggregates against.
func (s *reportService) CategoryTotals(userID uint) ([]CategoryTotal, error) {
	var rows []struct {
		Category models.Category
		Total    int64
		Items    int64
	}
	if err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS items").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	byCategory := make(map[models.Category]CategoryTotal, len(rows))
	for _, row := range rows {
		byCategory[row.Category] = CategoryTotal{Category: row.Category, Spent: row.Total, Items: row.Items}
	}

	totals := make([]CategoryTotal, 0, len(models.AllCategories()))
	for _, category := range models.AllCategories() {
		if total, ok := byCategory[category]; ok {
			totals = append(totals, total)
		} else {
			totals = append(totals, CategoryTotal{Category: category})
		}
	}
	return totals, nil
}

// GetSummary totals income against expenses for the dashboard.
func (s *reportService) GetSummary(userID uint) (*Summary, error) {
	var totalIncome int64
	if err := s.db.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&totalIncome).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	var totalExpense int64
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&totalExpense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	return &Summary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
	}, nil
}

// LedgerTotals computes (spent, items) for one category using the supplied
// database handle, so a caller holding a transaction sees a snapshot
// consistent with its own reads and writes.
func (s *reportService) LedgerTotals(tx *gorm.DB, userID uint, category models.Category) (int64, int64, error) {
	var row struct {
		Total int64
		Items int64
	}
	if err := tx.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS items").
		Where("user_id = ? AND category = ?", userID, category).
		Scan(&row).Error; err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return row.Total, row.Items, nil
}
