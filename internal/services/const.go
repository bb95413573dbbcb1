package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUserSpinLock = errors.New("spin in progress")
var ErrInvalidTier = errors.New("invalid tier")
var ErrNoPrizesAvailable = errors.New("no prizes available")
var ErrTokenAlreadyUsed = errors.New("token already used")
var ErrPaymentNotCompleted = errors.New("payment not completed")

const (
	CONFIG_SPIN_COST_BASIC_CENTS = "SPIN_COST_BASIC_CENTS"
	CONFIG_SPIN_COST_GOLD_CENTS  = "SPIN_COST_GOLD_CENTS"
	CONFIG_SPIN_COST_VIP_CENTS   = "SPIN_COST_VIP_CENTS"

	CONFIG_DELIVERY_MAX_ATTEMPTS    = "DELIVERY_MAX_ATTEMPTS"
	CONFIG_DELIVERY_RETRY_DELAY_SEC = "DELIVERY_RETRY_DELAY_SEC"

	CONFIG_CRONJOB_TIME_REDELIVERY = "CRONJOB_TIME_REDELIVERY"

	DEFAULT_SPIN_COST_BASIC_CENTS = 1500
	DEFAULT_SPIN_COST_GOLD_CENTS  = 3000
	DEFAULT_SPIN_COST_VIP_CENTS   = 5000

	DEFAULT_DELIVERY_MAX_ATTEMPTS    = 3
	DEFAULT_DELIVERY_RETRY_DELAY_SEC = 2

	DEFAULT_CRONJOB_TIME_REDELIVERY = "@every 15m"

	SPIN_RATE_LIMIT_PER_MINUTE = 30

	WALLET_TRANSACTIONS_PAGE_LIMIT = 50

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
)

func LockKeyUserSpin(userID string) string {
	return fmt.Sprintf("lock:user-spin:%s", userID)
}

func LockKeyTopup(sessionID string) string {
	return fmt.Sprintf("lock:topup:%s", sessionID)
}

// db
func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyActivePrizes() string {
	return "prizes:active"
}

func DBKeyUserWonPrizes(userID string) string {
	return fmt.Sprintf("user:%s:won_prizes", userID)
}

func LimitKeyUserSpin(userID string) string {
	return fmt.Sprintf("limit:user-spin:%s", userID)
}
