package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/models"
	"pennywise/internal/services"
)

// ReconcileHandler exposes on-demand drift repair for budget aggregates.
type ReconcileHandler struct {
	reconcileService services.ReconcileServicer
	auditService     services.AuditServicer
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconcileService services.ReconcileServicer, auditService services.AuditServicer) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService, auditService: auditService}
}

// ReconcileCategory recomputes one budget from the ledger.
// @Summary     Reconcile a category budget
// @Description Recompute spent/item_count from the ledger and repair drift
// @Tags        reconcile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Taxonomy category"
// @Success     200 {object} services.ReconcileResult "Reconciliation result"
// @Failure     400 {object} ErrorResponse "Invalid category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reconcile/{category} [post]
func (h *ReconcileHandler) ReconcileCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.reconcileService.Reconcile(userID, models.Category(c.Param("category")))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Corrected {
		h.auditService.Log(userID, "RECONCILE_BUDGET", "budget", 0, c.ClientIP(),
			map[string]interface{}{
				"category":     result.Category,
				"spent_before": result.Before.Spent,
				"spent_after":  result.After.Spent,
			})
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ReconcileAll recomputes every budget of the authenticated user.
// @Summary     Reconcile all budgets
// @Description Recompute all of the user's budgets and return corrections applied
// @Tags        reconcile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.ReconcileResult "Corrections applied"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reconcile [post]
func (h *ReconcileHandler) ReconcileAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	corrections, err := h.reconcileService.ReconcileAll(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if len(corrections) > 0 {
		h.auditService.Log(userID, "RECONCILE_ALL", "budget", 0, c.ClientIP(),
			map[string]interface{}{"corrections": len(corrections)})
	}

	c.JSON(http.StatusOK, gin.H{"corrections": corrections})
}

// Sweep reconciles every user's budgets. Guarded by the ops API key.
// @Summary     Reconcile sweep
// @Description Recompute every budget of every user; operational endpoint
// @Tags        ops
// @Accept      json
// @Produce     json
// @Success     200 {object} MessageResponse "Sweep finished"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ops/reconcile-sweep [post]
func (h *ReconcileHandler) Sweep(c *gin.Context) {
	corrections, err := h.reconcileService.Sweep()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"corrections": corrections})
}
