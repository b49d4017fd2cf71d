package nlp

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerEmbedder 在 Embedder 外层加熔断.
// 向量化服务挂掉时快速失败，让搜索尽快退回关键词模式，
// 而不是每个请求都等一次超时.
type BreakerEmbedder struct {
	inner Embedder
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerEmbedder 包装给定 Embedder.
func NewBreakerEmbedder(inner Embedder, name string) *BreakerEmbedder {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			const minRequests = 5

			if counts.Requests < minRequests {
				return false
			}

			failureRate := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRate >= 0.6
		},
	}

	return &BreakerEmbedder{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Embed 经熔断器转发到内层 Embedder.
func (b *BreakerEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.inner.Embed(ctx, text)
	})
	if err != nil {
		return nil, err
	}

	return out.([]float64), nil
}
