package handler

import (
	"context"
	"errors"
	"strings"

	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"

// Authn will NOT terminate unauthenticated requests; handlers that need an
// identity resolve it with ResolveValidUser.
func Authn(verifier interface {
	Validate(token string) (*models.UserFromAuth, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			user, err := verifier.Validate(token)
			if err != nil {
				// although it's a client error, we don't want to leak details
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidUser(ctx context.Context) (*models.UserFromAuth, error) {
	user, ok := ctx.Value(ctxKeyAuthUser).(*models.UserFromAuth)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	return user, nil
}

// middlewareAdmin terminates requests whose caller lacks the admin role.
func middlewareAdmin(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := ResolveValidUser(c.Request().Context())
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, err, -1)
				return nil
			}

			serviceAdmin, err := do.Invoke[*services.ServiceAdmin](container)
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(err, errorx.Service), -1)
				return nil
			}

			isAdmin, err := serviceAdmin.IsAdmin(c.Request().Context(), user.ID)
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(err, errorx.Service), -1)
				return nil
			}

			if !isAdmin {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("admin role required"), errorx.Authn), -1)
				return nil
			}

			return next(c)
		}
	}
}
