package handler

import (
	"strconv"

	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAdmin struct {
	container *do.Injector
}

type fulfillRequest struct {
	SpinID    int    `json:"spin_id"`
	PrizeLink string `json:"prize_link"`
}

func (gr *groupAdmin) GetPendingPrizes(c echo.Context) error {
	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	spins, err := serviceAdmin.GetPendingPrizes(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, spins, nil)
}

func (gr *groupAdmin) Fulfill(c echo.Context) error {
	var req fulfillRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	spin, err := serviceAdmin.Fulfill(c.Request().Context(), req.SpinID, req.PrizeLink)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, spin, nil)
}

func (gr *groupAdmin) GetNotifications(c echo.Context) error {
	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	notifications, err := serviceAdmin.GetPendingNotifications(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, notifications, nil)
}

func (gr *groupAdmin) DismissNotification(c echo.Context) error {
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceAdmin.DismissNotification(c.Request().Context(), notificationID); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]any{"dismissed": true}, nil)
}

func (gr *groupAdmin) ValidateCatalog(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	problems, err := serviceCatalog.ValidateCatalog(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]any{"problems": problems}, nil)
}
