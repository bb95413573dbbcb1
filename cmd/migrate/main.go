package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedPrizes(),
			commandMintTokens(),
			commandGrantAdmin(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePrize(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePrizeContent(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableWallet(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableWalletTransaction(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableSpin(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableSpinToken(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAdminNotification(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableDeliveryLog(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUserRole(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SPIN_COST_BASIC_CENTS, Value: "1500"},
				{Key: services.CONFIG_SPIN_COST_GOLD_CENTS, Value: "3000"},
				{Key: services.CONFIG_SPIN_COST_VIP_CENTS, Value: "5000"},
				{Key: services.CONFIG_DELIVERY_MAX_ATTEMPTS, Value: "3"},
				{Key: services.CONFIG_DELIVERY_RETRY_DELAY_SEC, Value: "2"},
				{Key: services.CONFIG_CRONJOB_TIME_REDELIVERY, Value: "@every 15m"},
			}

			for _, config := range configs {
				if err := datastore.InsertConfig(ctx, db, config); err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandSeedPrizes() *cli.Command {
	return &cli.Command{
		Name:        "seed-prizes",
		Description: "Insert a sample prize catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			prizes := []struct {
				prize   models.Prize
				content models.PrizeContent
			}{
				{
					prize: models.Prize{Name: "Discount Code", Emoji: "🎟️", Type: models.PrizeTypeAutomatic, Active: true, WeightBasic: 60, WeightGold: 40, WeightVIP: 20},
					content: models.PrizeContent{Kind: models.PrizeContentKindCode, Payload: "SPIN-10-OFF"},
				},
				{
					prize: models.Prize{Name: "Ebook Bundle", Emoji: "📚", Type: models.PrizeTypeAutomatic, Active: true, WeightBasic: 30, WeightGold: 35, WeightVIP: 30},
					content: models.PrizeContent{Kind: models.PrizeContentKindLink, Payload: "https://prizes.example.com/ebook-bundle"},
				},
				{
					prize: models.Prize{Name: "Mystery Box", Emoji: "🎁", Type: models.PrizeTypeManual, Active: true, WeightBasic: 10, WeightGold: 20, WeightVIP: 30},
					content: models.PrizeContent{Kind: models.PrizeContentKindMessage, Payload: "Ships within 7 days, admin attaches tracking link."},
				},
				{
					prize: models.Prize{Name: "VIP Dinner", Emoji: "🍽️", Type: models.PrizeTypeManual, Active: true, WeightBasic: 0, WeightGold: 5, WeightVIP: 20},
					content: models.PrizeContent{Kind: models.PrizeContentKindMessage, Payload: "Admin books the reservation and emails the details."},
				},
			}

			for _, entry := range prizes {
				prize := entry.prize
				if err := datastore.InsertPrize(ctx, db, &prize); err != nil {
					log.Println(err)
					continue
				}

				content := entry.content
				content.PrizeID = prize.ID
				if err := datastore.InsertPrizeContent(ctx, db, &content); err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

// mints prepaid single-use spin tokens, sold outside the wallet flow
func commandMintTokens() *cli.Command {
	return &cli.Command{
		Name:        "mint-tokens",
		Description: "Mint prepaid single-use spin tokens for a tier",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "tier",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "count",
				Value: 1,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			tier := models.Tier(c.String("tier"))
			if !tier.Valid() {
				return fmt.Errorf("invalid tier %q", c.String("tier"))
			}

			cost := defaultCostFor(tier)
			if config, err := datastore.GetConfigByKey(ctx, db, spinCostConfigKey(tier)); err == nil {
				if cents, err := strconv.Atoi(config.Value); err == nil {
					cost = models.Cents(cents)
				}
			}

			for i := 0; i < c.Int("count"); i++ {
				token := &models.SpinToken{
					Token:       uuid.NewString(),
					Tier:        tier,
					AmountCents: cost,
				}
				if err := datastore.InsertSpinToken(ctx, db, token); err != nil {
					return err
				}
				fmt.Println(token.Token)
			}

			return nil
		},
	}
}

func spinCostConfigKey(tier models.Tier) string {
	switch tier {
	case models.TierGold:
		return services.CONFIG_SPIN_COST_GOLD_CENTS
	case models.TierVIP:
		return services.CONFIG_SPIN_COST_VIP_CENTS
	}
	return services.CONFIG_SPIN_COST_BASIC_CENTS
}

func defaultCostFor(tier models.Tier) models.Cents {
	switch tier {
	case models.TierGold:
		return services.DEFAULT_SPIN_COST_GOLD_CENTS
	case models.TierVIP:
		return services.DEFAULT_SPIN_COST_VIP_CENTS
	}
	return services.DEFAULT_SPIN_COST_BASIC_CENTS
}

func commandGrantAdmin() *cli.Command {
	return &cli.Command{
		Name:        "grant-admin",
		Description: "Grant the admin role to a user id",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.InsertUserRole(ctx, db, &models.UserRole{
				UserID: c.String("user"),
				Role:   models.RoleAdmin,
			})
			if err != nil {
				return err
			}

			fmt.Println("Granted admin to", c.String("user"))

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
