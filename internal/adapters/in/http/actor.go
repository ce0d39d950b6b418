package http

import (
	"context"
	"errors"
	"net/http"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	ActorHeader = "X-Actor-ID"
	actorKey    = "actor"
)

// UserLookup resolves the caller identity. ports.UserRepository satisfies it.
type UserLookup interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// actorMiddleware resolves X-Actor-ID to an approved directory user.
// Unknown callers get 401, unapproved ones 403.
func actorMiddleware(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(ActorHeader)
			if raw == "" {
				return writeError(c, http.StatusUnauthorized, ActorHeader+" header is required")
			}
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return writeError(c, http.StatusUnauthorized, ActorHeader+" is not a valid UUID")
			}

			u, err := users.Get(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					return writeError(c, http.StatusUnauthorized, "unknown actor")
				}
				return err
			}

			actor, err := u.AsActor()
			if err != nil {
				return writeError(c, http.StatusForbidden, err.Error())
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := c.Get(actorKey).(user.Actor)
	if !ok {
		return user.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "actor is not resolved")
	}
	return actor, nil
}
