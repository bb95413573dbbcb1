package main

import (
	"database/sql"
	"os"

	"prizewheel/internal/pkg/caching"
	"prizewheel/internal/pkg/mailer"
	"prizewheel/internal/pkg/webhook"
	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

func NewContainer() (*do.Injector, error) {
	vs, err := env.EnvsRequired(
		"DB_DSN",
		"EMAIL_API_URL",
		"EMAIL_API_KEY",
		"EMAIL_SENDER",
		"WORKFLOW_WEBHOOK_URL",
	)
	if err != nil {
		return nil, err
	}

	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-db", func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (mailer.Mailer, error) {
		return mailer.NewAPIMailer(vs["EMAIL_API_URL"], vs["EMAIL_API_KEY"], vs["EMAIL_SENDER"]), nil
	})

	do.Provide(injector, func(i *do.Injector) (webhook.Notifier, error) {
		return webhook.NewHTTPNotifier(
			vs["WORKFLOW_WEBHOOK_URL"],
			os.Getenv("WORKFLOW_WEBHOOK_USER"),
			os.Getenv("WORKFLOW_WEBHOOK_PASSWORD"),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceDelivery, error) {
		return services.NewServiceDelivery(injector)
	})

	return injector, nil
}
