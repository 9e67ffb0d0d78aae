package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/seatkit/webinar/internal/domain"
	"github.com/seatkit/webinar/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth       *service.AuthService
	tokenCache *cache.Cache
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth:       auth,
		tokenCache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

// IdentifyIdentity resolves the requester from the Authorization header
// and stores the user id on the request context. A missing or invalid
// token leaves the context untouched; route handlers decide whether an
// anonymous requester is acceptable.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, raw := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}

			if cached, found := s.tokenCache.Get(raw); found {
				ctx = context.WithValue(ctx, domain.RequesterIDCtxKey, cached.(string))
				goto skipCheckAuthorization
			}

			result, err := s.auth.AuthToken(ctx, raw)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: auth.AuthToken failed"))
				goto skipCheckAuthorization
			}

			s.tokenCache.Set(raw, result.UserID, cache.DefaultExpiration)
			ctx = context.WithValue(ctx, domain.RequesterIDCtxKey, result.UserID)
			span.SetAttributes(attribute.String("RequesterId", result.UserID))
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
