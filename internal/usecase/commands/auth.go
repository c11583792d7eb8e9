package commands

import (
	"context"
	"log/slog"
	"time"

	"coupon-budget-service/internal/domain/auth"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/pkg/secret"
)

var ErrTokenGeneration = errs.New("token generation failed")

type IssuedToken struct {
	AccessToken string
	ExpiresIn   time.Duration
	ServiceID   string
	Permissions []string
}

type AuthCommands interface {
	IssueToken(ctx context.Context, serviceID, clientKey string) (*IssuedToken, error)
}

type authCommandsImpl struct {
	registry CallerRegistry
	tokens   TokenIssuer
}

func NewAuthCommands(registry CallerRegistry, tokens TokenIssuer) AuthCommands {
	return &authCommandsImpl{
		registry: registry,
		tokens:   tokens,
	}
}

// IssueToken exchanges a trusted caller's client key for a service token.
// Unknown callers and wrong keys return the same error.
func (a *authCommandsImpl) IssueToken(ctx context.Context, serviceID, clientKey string) (*IssuedToken, error) {
	if serviceID == "" || clientKey == "" {
		return nil, errs.ErrInvalidCredentials
	}

	caller, ok := a.registry.Find(serviceID)
	if !ok {
		slog.WarnContext(ctx, "token requested by unknown caller", "service_id", serviceID)
		return nil, errs.Mark(errs.ErrUnknownCaller, errs.ErrInvalidCredentials)
	}
	if err := secret.Compare(caller.ClientKeyHash(), clientKey); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	perms := auth.PermissionStrings(caller.Permissions())
	token, err := a.tokens.GenerateToken(caller.ServiceID(), perms)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &IssuedToken{
		AccessToken: token,
		ExpiresIn:   a.tokens.TokenDuration(),
		ServiceID:   caller.ServiceID(),
		Permissions: perms,
	}, nil
}
