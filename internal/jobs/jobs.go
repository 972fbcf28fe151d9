package jobs

import (
	"context"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/robfig/cron/v3"
)

type CartSweeper interface {
	DeleteExpiredAnonymous(ctx context.Context, cutoff time.Time) (int64, error)
}

type TokenRefresher interface {
	RefreshToken(ctx context.Context) error
}

// Start registers the periodic maintenance jobs and starts the scheduler:
// a nightly sweep of stale anonymous carts and a carrier auth token refresh
// every nine days. Neither touches in-flight order commits; the sweep skips
// carts referenced by an order.
func Start(carts CartSweeper, carrier TokenRefresher) (*cron.Cron, error) {
	log := logging.New("jobs")
	c := cron.New()

	if _, err := c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cutoff := time.Now().Add(-24 * time.Hour)
		n, err := carts.DeleteExpiredAnonymous(logging.WithCtx(ctx, log), cutoff)
		if err != nil {
			log.Error("cart sweep failed", "err", err)
			return
		}
		log.Info("cart sweep done", "deleted", n)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc("0 0 */9 * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := carrier.RefreshToken(logging.WithCtx(ctx, log)); err != nil {
			log.Error("carrier token refresh failed", "err", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
