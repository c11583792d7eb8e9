package response

import (
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/queries"
)

type ReserveResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message"`
}

func FromReserveResult(r commands.ReserveResult) *ReserveResponse {
	return &ReserveResponse{
		Success:   r.Success,
		Status:    r.Status.String(),
		ErrorCode: r.ErrorCode.String(),
		Message:   r.Message,
	}
}

type ConfirmResponse struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message"`
}

func FromConfirmResult(r commands.ConfirmResult) *ConfirmResponse {
	return &ConfirmResponse{
		Success:   r.Success,
		ErrorCode: r.ErrorCode.String(),
		Message:   r.Message,
	}
}

type BudgetResponse struct {
	ID        int64  `json:"id"`
	Remaining string `json:"remaining"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func FromBudgetView(v *queries.BudgetView) *BudgetResponse {
	return &BudgetResponse{
		ID:        v.ID,
		Remaining: v.Remaining.StringFixed(2),
		CreatedAt: v.CreatedAt.Unix(),
		UpdatedAt: v.UpdatedAt.Unix(),
	}
}

type UsageResponse struct {
	ID           string `json:"id"`
	CouponUserID string `json:"couponUserId"`
	BudgetID     int64  `json:"budgetId"`
	CouponID     int64  `json:"couponId"`
	UserID       int64  `json:"userId"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
	ReversedFrom string `json:"reversedFrom,omitempty"`
	UsageTime    int64  `json:"usageTime"`
	UpdatedAt    int64  `json:"updatedAt"`
}

func FromUsageView(v *queries.UsageView) *UsageResponse {
	res := &UsageResponse{
		ID:           v.ID.String(),
		CouponUserID: v.CouponUserID,
		BudgetID:     v.BudgetID,
		CouponID:     v.CouponID,
		UserID:       v.UserID,
		Amount:       v.Amount.StringFixed(2),
		Status:       v.Status,
		UsageTime:    v.UsageTime.Unix(),
		UpdatedAt:    v.UpdatedAt.Unix(),
	}
	if v.ReversedFrom != nil {
		res.ReversedFrom = *v.ReversedFrom
	}
	return res
}

type UsageListResponse struct {
	Items      []*UsageResponse `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

func FromUsageList(items []*queries.UsageView, next *queries.Cursor) *UsageListResponse {
	res := &UsageListResponse{Items: make([]*UsageResponse, len(items))}
	for i, it := range items {
		res.Items[i] = FromUsageView(it)
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}
