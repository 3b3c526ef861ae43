package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestExpenseFlow_RecordingCreditsBudget(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "expense@test.com", "password123")

	// Step 1: Create a groceries budget of $100
	budget := app.createBudget(t, token, "groceries", 10000)
	budgetID := budget["id"].(float64)
	if budget["spent"].(float64) != 0 || budget["item_count"].(float64) != 0 {
		t.Fatalf("expected fresh budget to start at zero, got spent=%v items=%v",
			budget["spent"], budget["item_count"])
	}

	// Step 2: Record two groceries expenses
	occurredAt := time.Now().UTC().Format(time.RFC3339)
	app.createExpense(t, token, "groceries", 2500, occurredAt)
	app.createExpense(t, token, "groceries", 1500, occurredAt)

	// Step 3: The budget aggregate reflects both in the same transaction
	budget = app.getBudget(t, token, budgetID)
	if budget["spent"].(float64) != 4000 {
		t.Errorf("expected 4000 spent, got %v", budget["spent"])
	}
	if budget["item_count"].(float64) != 2 {
		t.Errorf("expected 2 items, got %v", budget["item_count"])
	}

	// Step 4: An expense in another category leaves the budget alone
	app.createExpense(t, token, "utilities", 9900, occurredAt)
	budget = app.getBudget(t, token, budgetID)
	if budget["spent"].(float64) != 4000 {
		t.Errorf("expected groceries budget unchanged, got %v", budget["spent"])
	}
}

func TestExpenseFlow_CategoryMoveCompensatesBothBudgets(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "move@test.com", "password123")

	groceries := app.createBudget(t, token, "groceries", 10000)
	shopping := app.createBudget(t, token, "shopping", 20000)

	occurredAt := time.Now().UTC().Format(time.RFC3339)
	expense := app.createExpense(t, token, "groceries", 3000, occurredAt)
	expenseID := expense["id"].(float64)

	// Move the expense to shopping and raise the amount
	body := fmt.Sprintf(`{"category":"shopping","frequency":"Monthly","amount":4500,"occurred_at":%q}`, occurredAt)
	rec := app.request("PUT", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID), body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating expense, got %d: %s", rec.Code, rec.Body.String())
	}

	// Old budget drops to zero, new budget picks up the full amount
	g := app.getBudget(t, token, groceries["id"].(float64))
	if g["spent"].(float64) != 0 || g["item_count"].(float64) != 0 {
		t.Errorf("expected groceries budget emptied, got spent=%v items=%v", g["spent"], g["item_count"])
	}
	s := app.getBudget(t, token, shopping["id"].(float64))
	if s["spent"].(float64) != 4500 || s["item_count"].(float64) != 1 {
		t.Errorf("expected shopping budget at 4500/1, got spent=%v items=%v", s["spent"], s["item_count"])
	}
}

func TestExpenseFlow_DeleteDebitsBudget(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "delete@test.com", "password123")

	budget := app.createBudget(t, token, "entertainment", 5000)
	occurredAt := time.Now().UTC().Format(time.RFC3339)
	expense := app.createExpense(t, token, "entertainment", 1200, occurredAt)

	rec := app.request("DELETE", fmt.Sprintf("/api/v1/expenses/%.0f", expense["id"].(float64)), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting expense, got %d: %s", rec.Code, rec.Body.String())
	}

	b := app.getBudget(t, token, budget["id"].(float64))
	if b["spent"].(float64) != 0 || b["item_count"].(float64) != 0 {
		t.Errorf("expected budget debited back to zero, got spent=%v items=%v", b["spent"], b["item_count"])
	}

	// The expense is gone from the ledger
	rec = app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", expense["id"].(float64)), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestExpenseFlow_TenantIsolation(t *testing.T) {
	app := setupApp(t)
	tokenA, _, _ := app.registerUser(t, "alice@test.com", "password123")
	tokenB, _, _ := app.registerUser(t, "bob@test.com", "password123")

	occurredAt := time.Now().UTC().Format(time.RFC3339)
	expense := app.createExpense(t, tokenA, "other", 999, occurredAt)

	// Bob cannot read or delete Alice's expense
	rec := app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", expense["id"].(float64)), "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's expense, got %d", rec.Code)
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/expenses/%.0f", expense["id"].(float64)), "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting other user's expense, got %d", rec.Code)
	}

	// Alice still sees it
	rec = app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", expense["id"].(float64)), "", tokenA)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", rec.Code)
	}
}

func TestExpenseFlow_RejectsUnknownCategory(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "badcat@test.com", "password123")

	occurredAt := time.Now().UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"category":"yachts","frequency":"Monthly","amount":100,"occurred_at":%q}`, occurredAt)
	rec := app.request("POST", "/api/v1/expenses", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d: %s", rec.Code, rec.Body.String())
	}
}
