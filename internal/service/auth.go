package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/seatkit/webinar/internal/config"
	"github.com/seatkit/webinar/token"
)

var tracer = otel.Tracer("auth")

type AuthService struct {
	config config.Auth
}

func NewAuthService(config config.Auth) *AuthService {
	return &AuthService{
		config: config,
	}
}

type AuthResult struct {
	UserID string
}

// AuthToken validates a bearer token and resolves the requester id from
// its issuer claim.
func (s *AuthService) AuthToken(ctx context.Context, raw string) (*AuthResult, error) {
	_, span := tracer.Start(ctx, "Auth.Service.AuthToken")
	defer span.End()

	_, claims, err := token.Validate(raw, s.config.Secret)
	if err != nil {
		span.RecordError(errors.Wrap(err, "token validation failed"))
		return nil, err
	}

	if s.config.Audience != "" && claims.Audience != s.config.Audience {
		err := fmt.Errorf("token audience mismatch: expected %s, got %s", s.config.Audience, claims.Audience)
		span.RecordError(err)
		return nil, err
	}

	if claims.Subject != "webinar" {
		err := fmt.Errorf("invalid subject")
		span.RecordError(err)
		return nil, err
	}

	if claims.Issuer == "" {
		err := fmt.Errorf("missing issuer")
		span.RecordError(err)
		return nil, err
	}

	return &AuthResult{UserID: claims.Issuer}, nil
}
