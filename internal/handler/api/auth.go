package api

import (
	"net/http"

	resdto "coupon-budget-service/internal/handler/dto/response"
	"coupon-budget-service/internal/handler/httperr"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	headerServiceID = "X-Service-Id"
	headerClientKey = "X-Client-Key"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
	}
}

// @Summary Issue service token
// @Description Exchange a trusted caller's service id and client key for a bearer token
// @Tags auth
// @Produce json
// @Param X-Service-Id header string true "Caller service id"
// @Param X-Client-Key header string true "Caller client key"
// @Success 200 {object} resdto.TokenResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	serviceID := c.GetHeader(headerServiceID)
	clientKey := c.GetHeader(headerClientKey)

	token, err := h.authCommands.IssueToken(c.Request.Context(), serviceID, clientKey)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid service credentials", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromIssuedToken(token))
}
