// Package budgetclient is a typed HTTP client for the coupon budget API.
package budgetclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	tokenPath         = "/api/auth/token"
	reservationsPath  = "/api/budgets/reservations"
	confirmationsPath = "/api/budgets/confirmations"
	budgetPath        = "/api/budgets/{id}"
	budgetUsagesPath  = "/api/budgets/{id}/usages"
	usagePath         = "/api/budgets/usages/{couponUserId}"

	headerServiceID = "X-Service-Id"
	headerClientKey = "X-Client-Key"
	headerRequestID = "X-Request-Id"
)

type ReserveRequest struct {
	RequestID    string          `json:"requestId,omitempty"`
	CouponUserID string          `json:"couponUserId"`
	UserID       int64           `json:"userId"`
	CouponID     int64           `json:"couponId"`
	BudgetID     int64           `json:"budgetId"`
	Amount       decimal.Decimal `json:"amount"`
}

type ReserveResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message"`
}

type ConfirmRequest struct {
	RequestID     string          `json:"requestId,omitempty"`
	UserID        int64           `json:"userId"`
	CouponID      int64           `json:"couponId"`
	OrderID       int64           `json:"orderId"`
	BudgetID      int64           `json:"budgetId"`
	ReservationID string          `json:"reservationId"`
	Amount        decimal.Decimal `json:"amount"`
}

type ConfirmResponse struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message"`
}

type Token struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ExpiresIn   int64    `json:"expiresIn"`
	ServiceID   string   `json:"serviceId"`
	Permissions []string `json:"permissions"`
}

type Budget struct {
	ID        int64           `json:"id"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

type Usage struct {
	ID           string          `json:"id"`
	CouponUserID string          `json:"couponUserId"`
	BudgetID     int64           `json:"budgetId"`
	CouponID     int64           `json:"couponId"`
	UserID       int64           `json:"userId"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	ReversedFrom string          `json:"reversedFrom,omitempty"`
	UsageTime    int64           `json:"usageTime"`
	UpdatedAt    int64           `json:"updatedAt"`
}

type UsagePage struct {
	Items      []Usage `json:"items"`
	NextCursor string  `json:"nextCursor,omitempty"`
}

// APIError is returned for responses that carry no ledger outcome
// (authentication, permission, lookup and transport-level failures).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("budget api: %d %s", e.StatusCode, e.Message)
}

// errorBody covers both the {"error":{"message"}} envelope and ledger outcomes.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (b *errorBody) message() string {
	if b.Error.Message != "" {
		return b.Error.Message
	}
	return b.Message
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithRetries retries transport errors and 503 responses with backoff.
func WithRetries(count int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(count).
			SetRetryWaitTime(100 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() == http.StatusServiceUnavailable
			})
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client is safe for concurrent use. Token stores the issued token for later calls.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5 * time.Second).
			SetHeader("Accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if token := c.bearer(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// Token exchanges service credentials for a bearer token.
func (c *Client) Token(ctx context.Context, serviceID, clientKey string) (*Token, error) {
	var out Token
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(headerServiceID, serviceID).
		SetHeader(headerClientKey, clientKey).
		SetResult(&out).
		SetError(&errorBody{}).
		Post(tokenPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}

	c.mu.Lock()
	c.token = out.AccessToken
	c.mu.Unlock()
	return &out, nil
}

// Reserve returns the ledger outcome for any response that carries one,
// including 400 and 503; err is set only when no outcome could be read.
func (c *Client) Reserve(ctx context.Context, in ReserveRequest) (*ReserveResponse, error) {
	var out ReserveResponse
	req := c.request(ctx).SetBody(in).SetResult(&out)
	if in.RequestID != "" {
		req.SetHeader(headerRequestID, in.RequestID)
	}
	resp, err := req.Post(reservationsPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		body := resp.Error().(*errorBody)
		if body.ErrorCode == "" {
			return nil, apiError(resp)
		}
		return &ReserveResponse{Status: body.Status, ErrorCode: body.ErrorCode, Message: body.Message}, nil
	}
	return &out, nil
}

// Confirm follows the same outcome rules as Reserve.
func (c *Client) Confirm(ctx context.Context, in ConfirmRequest) (*ConfirmResponse, error) {
	var out ConfirmResponse
	req := c.request(ctx).SetBody(in).SetResult(&out)
	if in.RequestID != "" {
		req.SetHeader(headerRequestID, in.RequestID)
	}
	resp, err := req.Post(confirmationsPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		body := resp.Error().(*errorBody)
		if body.ErrorCode == "" {
			return nil, apiError(resp)
		}
		return &ConfirmResponse{ErrorCode: body.ErrorCode, Message: body.Message}, nil
	}
	return &out, nil
}

func (c *Client) GetBudget(ctx context.Context, budgetID int64) (*Budget, error) {
	var out Budget
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(budgetID, 10)).
		SetResult(&out).
		Get(budgetPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func (c *Client) GetUsage(ctx context.Context, couponUserID string) (*Usage, error) {
	var out Usage
	resp, err := c.request(ctx).
		SetPathParam("couponUserId", couponUserID).
		SetResult(&out).
		Get(usagePath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// ListUsages returns one page; pass the previous NextCursor to continue.
func (c *Client) ListUsages(ctx context.Context, budgetID int64, cursor string, limit int) (*UsagePage, error) {
	var out UsagePage
	req := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(budgetID, 10)).
		SetResult(&out)
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	resp, err := req.Get(budgetUsagesPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &out, nil
}

func apiError(resp *resty.Response) *APIError {
	msg := resp.Status()
	if body, ok := resp.Error().(*errorBody); ok && body.message() != "" {
		msg = body.message()
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
