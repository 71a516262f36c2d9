package memory

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var limiterTracer = otel.Tracer("memory.rate_limiter")

// RateLimiter 进程内滑动窗口限流器。
// 单实例部署下替代集中式限流，窗口数据只在本进程有效。
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string][]int64
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string][]int64)}
}

// Allow 检查是否允许请求（滑动窗口算法）
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	_, span := limiterTracer.Start(ctx, "ratelimit.Allow")
	span.SetAttributes(
		attribute.String("ratelimit.key", key),
		attribute.Int("ratelimit.limit", limit),
		attribute.Int64("ratelimit.window_ms", window.Milliseconds()),
	)
	defer span.End()

	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	// 移除窗口外的请求
	kept := l.windows[key][:0]
	for _, ts := range l.windows[key] {
		if ts > windowStart {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= limit {
		l.windows[key] = kept
		span.SetAttributes(attribute.Bool("ratelimit.allowed", false))
		return false, nil
	}

	l.windows[key] = append(kept, now)
	span.SetAttributes(attribute.Bool("ratelimit.allowed", true))
	return true, nil
}
