package retry

import (
	"context"
	"time"
)

// Policy runs an operation a fixed number of times with a fixed delay between
// attempts. Sleep is swappable so tests don't wait on the wall clock.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       func(time.Duration)
}

func NewPolicy(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		Sleep:       time.Sleep,
	}
}

// Do returns the number of attempts made and the last error, nil once an
// attempt succeeds.
func (p Policy) Do(ctx context.Context, fn func() error) (int, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return attempt - 1, err
		}

		err = fn()
		if err == nil {
			return attempt, nil
		}

		if attempt < attempts {
			sleep(p.Delay)
		}
	}

	return attempts, err
}
