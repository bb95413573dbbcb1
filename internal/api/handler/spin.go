package handler

import (
	"errors"
	"net/http"

	"prizewheel/internal/interfaces"
	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSpin struct {
	container *do.Injector
}

type spinRequest struct {
	Tier models.Tier `json:"tier"`
}

type spinTokenRequest struct {
	Token string `json:"token"`
}

func (gr *groupSpin) Spin(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req spinRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	limiter, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := limiter.Allow(ctx, services.LimitKeyUserSpin(user.ID), redis_rate.PerMinute(services.SPIN_RATE_LIMIT_PER_MINUTE)); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceSpin, err := do.Invoke[*services.ServiceSpin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceSpin.Spin(ctx, user, req.Tier)
	if err != nil {
		var insufficient *services.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":    "insufficient balance",
				"required": insufficient.RequiredCents.Dollars(),
				"balance":  insufficient.BalanceCents.Dollars(),
			})
		}
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupSpin) SpinWithToken(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req spinTokenRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if req.Token == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("missing token"), errorx.Invalid))
	}

	serviceSpin, err := do.Invoke[*services.ServiceSpin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceSpin.SpinWithToken(ctx, user, req.Token)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
