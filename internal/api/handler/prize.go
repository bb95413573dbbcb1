package handler

import (
	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupPrize struct {
	container *do.Injector
}

func (gr *groupPrize) List(c echo.Context) error {
	ctx := c.Request().Context()

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tier := models.Tier(c.QueryParam("tier"))
	if tier != "" {
		if !tier.Valid() {
			return httpx.RestAbort(c, nil, errorx.Wrap(services.ErrInvalidTier, errorx.Invalid))
		}

		prizes, err := serviceCatalog.GetActivePrizesForTier(ctx, tier)
		if err != nil {
			return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
		}
		return httpx.RestAbort(c, prizes, nil)
	}

	prizes, err := serviceCatalog.GetActivePrizes(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, prizes, nil)
}
