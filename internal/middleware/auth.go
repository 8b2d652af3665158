package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
)

const ActorKey = "actor"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
}

// bearerToken extracts the credential from "Bearer <t>" or "Token <t>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the request's actor. A missing or rejected token leaves
// the request anonymous; endpoints that need a user add RequireAuth.
func Authenticate(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := domain.Actor{}

			if token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); token != "" {
				resolved, err := authenticator.Authenticate(c.Request().Context(), token)
				if err != nil {
					log.Ctx(c.Request().Context()).Debug().Err(err).Str("component", "Authenticate").Msg("token rejected")
				} else {
					actor = resolved
				}
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !GetActor(c).IsAuthenticated() {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}
		return next(c)
	}
}

// GetActor returns the actor set by Authenticate, or an anonymous one.
func GetActor(c echo.Context) domain.Actor {
	actor, _ := c.Get(ActorKey).(domain.Actor)
	return actor
}
