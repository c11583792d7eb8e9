package usecase

import (
	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// ValidateToken drops unknown permissions instead of rejecting the token.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Principal{}, err
	}

	perms := make([]auth.Permission, 0, len(claims.Permissions))
	for _, raw := range claims.Permissions {
		p, perr := auth.ParsePermission(raw)
		if perr != nil {
			continue
		}
		perms = append(perms, p)
	}

	return auth.Principal{ServiceID: claims.ServiceID, Permissions: perms}, nil
}
