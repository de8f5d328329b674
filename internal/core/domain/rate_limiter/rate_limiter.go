package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	name     string
	duration time.Duration
}

var (
	Minute = Interval{name: "m", duration: time.Minute}
	Hour   = Interval{name: "h", duration: time.Hour}
)

func (i Interval) Duration() time.Duration {
	return i.duration
}

// Bucket names the fixed window the moment falls into.
func (i Interval) Bucket(now time.Time) string {
	return fmt.Sprintf("%s%d", i.name, now.Truncate(i.duration).Unix())
}

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
