package handler

import (
	"net/http"

	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🎡")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.

		p := groupPrize{cfg.Container}
		routesAPIv1.GET("/prizes", p.List)

		s := groupSpin{cfg.Container}
		routesAPIv1.POST("/spin", s.Spin)
		routesAPIv1.POST("/spin/token", s.SpinWithToken)

		w := groupWallet{cfg.Container}
		routesAPIv1.GET("/wallet", w.GetWallet)
		routesAPIv1.POST("/wallet/verify-topup", w.VerifyTopup)

		routesAPIv1Admin := routesAPIv1.Group("/admin")
		{
			routesAPIv1Admin.Use(middlewareAdmin(cfg.Container))
			a := groupAdmin{cfg.Container}
			routesAPIv1Admin.GET("/prizes/pending", a.GetPendingPrizes)
			routesAPIv1Admin.POST("/prizes/fulfill", a.Fulfill)
			routesAPIv1Admin.GET("/prizes/validate", a.ValidateCatalog)
			routesAPIv1Admin.GET("/notifications", a.GetNotifications)
			routesAPIv1Admin.POST("/notifications/:id/dismiss", a.DismissNotification)
		}
	}

	return r, nil
}
