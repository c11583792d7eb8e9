package api

import (
	"net/http"
	"strconv"

	"coupon-budget-service/internal/domain/budget"
	reqdto "coupon-budget-service/internal/handler/dto/request"
	resdto "coupon-budget-service/internal/handler/dto/response"
	"coupon-budget-service/internal/handler/httperr"
	"coupon-budget-service/internal/handler/middleware"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	reservations  commands.ReservationService
	confirmations commands.ConfirmationService
	q             queries.BudgetQueries
}

func NewBudgetHandler(
	reservations commands.ReservationService,
	confirmations commands.ConfirmationService,
	q queries.BudgetQueries,
) *BudgetHandler {
	return &BudgetHandler{
		reservations:  reservations,
		confirmations: confirmations,
		q:             q,
	}
}

// @Summary Reserve budget
// @Description Reserve part of a coupon budget for a coupon user. Business outcomes return 200 with success=false.
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveRequest true "Reserve request"
// @Success 200 {object} resdto.ReserveResponse
// @Failure 400 {object} resdto.ReserveResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} resdto.ReserveResponse
// @Router /budgets/reservations [post]
func (h *BudgetHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.ReserveResponse{
			Status:    budget.StatusNone.String(),
			ErrorCode: budget.CodeInvalidArgument.String(),
			Message:   "Invalid request format",
		})
		return
	}

	result := h.reservations.Register(c.Request.Context(), req.ToCommand(middleware.GetRequestID(c)))
	middleware.SetOutcome(c, result.ErrorCode.String())
	c.JSON(statusForCode(result.ErrorCode), resdto.FromReserveResult(result))
}

// @Summary Confirm reservation
// @Description Confirm a reservation identified by the couponUserId it was made with
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmRequest true "Confirm request"
// @Success 200 {object} resdto.ConfirmResponse
// @Failure 400 {object} resdto.ConfirmResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} resdto.ConfirmResponse
// @Router /budgets/confirmations [post]
func (h *BudgetHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.ConfirmResponse{
			ErrorCode: budget.CodeInvalidArgument.String(),
			Message:   "Invalid request format",
		})
		return
	}

	result := h.confirmations.Confirm(c.Request.Context(), req.ToCommand(middleware.GetRequestID(c)))
	middleware.SetOutcome(c, result.ErrorCode.String())
	c.JSON(statusForCode(result.ErrorCode), resdto.FromConfirmResult(result))
}

// @Summary Get budget
// @Description Authoritative remaining amount of a budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 200 {object} resdto.BudgetResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	id, ok := budgetIDParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetBudget(c.Request.Context(), id)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBudgetView(view))
}

// @Summary Get usage
// @Description Latest usage row recorded for a coupon user
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param couponUserId path string true "Coupon user ID"
// @Success 200 {object} resdto.UsageResponse
// @Failure 404 {object} httperr.Response
// @Router /budgets/usages/{couponUserId} [get]
func (h *BudgetHandler) GetUsage(c *gin.Context) {
	view, err := h.q.GetUsage(c.Request.Context(), c.Param("couponUserId"))
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUsageView(view))
}

// @Summary List usages
// @Description Usage rows of a budget, newest first, keyset paginated
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.UsageListResponse
// @Failure 400 {object} httperr.Response
// @Router /budgets/{id}/usages [get]
func (h *BudgetHandler) ListUsages(c *gin.Context) {
	id, ok := budgetIDParam(c)
	if !ok {
		return
	}
	var query reqdto.ListUsagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var cursor *queries.Cursor
	if query.Cursor != "" {
		cursor = &queries.Cursor{After: query.Cursor}
	}
	items, next, err := h.q.ListUsages(c.Request.Context(), id, cursor, query.Limit)
	if err != nil {
		abortQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUsageList(items, next))
}

func budgetIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = budget.ErrInvalidBudgetID
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid budget id", nil)
		return 0, false
	}
	return id, true
}

func abortQueryError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, queries.ErrBudgetNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Budget not found", nil)
	case errs.Is(err, queries.ErrUsageNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Usage not found", nil)
	case errs.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// statusForCode maps result codes to HTTP status. Business outcomes stay 200.
func statusForCode(code budget.ErrorCode) int {
	switch code {
	case budget.CodeInvalidArgument:
		return http.StatusBadRequest
	case budget.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case budget.CodeInternal, budget.CodeRollbackFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
