package response

import "coupon-budget-service/internal/usecase/commands"

type TokenResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ExpiresIn   int64    `json:"expiresIn"`
	ServiceID   string   `json:"serviceId"`
	Permissions []string `json:"permissions"`
}

func FromIssuedToken(t *commands.IssuedToken) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(t.ExpiresIn.Seconds()),
		ServiceID:   t.ServiceID,
		Permissions: t.Permissions,
	}
}
