package ratelimit

import (
	"context"

	"github.com/screenclash/screenclash/internal/config"
)

// UploadLimiter throttles screen time uploads per user. A nil limiter
// allows everything, so callers never need to branch on configuration.
type UploadLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewUploadLimiter(bucket *TokenBucket, cfg config.RateLimitConfig) *UploadLimiter {
	if bucket == nil || !cfg.Enabled {
		return nil
	}
	return &UploadLimiter{
		bucket: bucket,
		rate:   cfg.UploadRate,
		burst:  cfg.UploadBurst,
	}
}

func (l *UploadLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *UploadLimiter) Allow(ctx context.Context, userID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, "screenclash:upload:"+userID, l.rate, l.burst)
}
