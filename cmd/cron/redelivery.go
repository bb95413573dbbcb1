package main

import (
	"context"
	"log"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const (
	redeliveryMinAge    = 5 * time.Minute
	redeliveryBatchSize = 100
)

type RedeliveryJob struct {
	container *do.Injector
	db        *bun.DB
	delivery  *services.ServiceDelivery
	config    *services.ServiceConfig
}

func NewRedeliveryJob(container *do.Injector) *RedeliveryJob {
	return &RedeliveryJob{
		container: container,
		db:        do.MustInvoke[*bun.DB](container),
		delivery:  do.MustInvoke[*services.ServiceDelivery](container),
		config:    do.MustInvoke[*services.ServiceConfig](container),
	}
}

func (j *RedeliveryJob) Start(cronRunner *cron.Cron) error {
	ctx := context.Background()
	timeline, err := j.config.GetStringConfig(ctx, services.CONFIG_CRONJOB_TIME_REDELIVERY, services.DEFAULT_CRONJOB_TIME_REDELIVERY)
	if err != nil {
		// unseeded config falls back to the default schedule
		log.Println("redelivery schedule config:", err)
		timeline = services.DEFAULT_CRONJOB_TIME_REDELIVERY
	}

	_, err = cronRunner.AddFunc(timeline, j.runScheduledTask)
	log.Println("Redelivery cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", timeline, err)
	return err
}

func (j *RedeliveryJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start redelivering pending prizes ...")

	spins, err := datastore.GetUndeliveredAutomaticSpins(ctx, j.db, redeliveryMinAge, redeliveryBatchSize)
	if err != nil {
		log.Println(err)
		return
	}

	if len(spins) == 0 {
		log.Println("No pending deliveries found")
		return
	}

	delivered := 0
	for i := range spins {
		if err := j.delivery.Redeliver(ctx, &spins[i]); err != nil {
			log.Println("redeliver spin", spins[i].ID, ":", err)
			continue
		}
		delivered++
	}

	log.Println("Redelivered", delivered, "of", len(spins), "pending prizes")
}
