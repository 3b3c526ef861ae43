package services

import (
	"time"

	"gorm.io/gorm"

	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category  *models.Category
	Frequency *models.Frequency
	FromDate  *time.Time
	ToDate    *time.Time
}

// ExpenseServicer maintains the expense ledger and keeps budget aggregates in
// step with it. Every mutation applies a signed (amount, count) delta to the
// matching budget in the same database transaction as the ledger write.
type ExpenseServicer interface {
	RecordExpense(userID uint, category models.Category, frequency models.Frequency, amount int64, occurredAt time.Time, note string) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, category models.Category, frequency models.Frequency, amount int64, occurredAt time.Time, note string) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
}

// BudgetServicer defines the contract for budget-related business logic.
// Spent and ItemCount are owned by the expense service and the reconciler;
// budget updates here touch metadata only.
type BudgetServicer interface {
	CreateBudget(userID uint, category models.Category, limitAmount int64, icon string) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, limitAmount *int64, icon string) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID uint, source string, amount int64, reference string) (*models.Income, error)
	GetUserIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID uint) (*models.Income, error)
	UpdateIncome(userID, incomeID uint, source string, amount int64, reference string) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
}

// DailyBucket is one day's expense total. Buckets are derived on every
// request and never persisted; days without expenses produce no bucket.
type DailyBucket struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// CategoryTotal is the ledger-derived total for one taxonomy category,
// independent of the denormalized budget aggregate.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Spent    int64           `json:"spent"`
	Items    int64           `json:"items"`
}

// Summary aggregates income against expenses for the dashboard.
type Summary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Balance      int64 `json:"balance"`
}

// ReportServicer produces read-only aggregates straight from the ledger.
// All methods are idempotent and side-effect-free.
type ReportServicer interface {
	DailyTotals(userID uint, frequency *models.Frequency, fromDate, toDate *time.Time) ([]DailyBucket, error)
	CategoryTotals(userID uint) ([]CategoryTotal, error)
	GetSummary(userID uint) (*Summary, error)
	// LedgerTotals computes (spent, items) for one category within the given
	// database handle, so the reconciler can read a snapshot consistent with
	// its own transaction.
	LedgerTotals(tx *gorm.DB, userID uint, category models.Category) (int64, int64, error)
}

// AggregateState is a budget's derived pair at a point in time.
type AggregateState struct {
	Spent int64 `json:"spent"`
	Items int64 `json:"items"`
}

// ReconcileResult reports one reconciliation pass over a budget.
type ReconcileResult struct {
	Category  models.Category `json:"category"`
	Before    AggregateState  `json:"before"`
	After     AggregateState  `json:"after"`
	Corrected bool            `json:"corrected"`
}

// ReconcileServicer repairs drift between budgets and the expense ledger.
type ReconcileServicer interface {
	Reconcile(userID uint, category models.Category) (*ReconcileResult, error)
	ReconcileAll(userID uint) ([]ReconcileResult, error)
	Sweep() (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
