package llm

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedProvider 在 Provider 外层套本地令牌桶限流，
// 避免长会话的逐轮请求触发上游 429。
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimitedProvider 创建限流包装。rps 为每秒请求数，burst 为突发容量。
func NewRateLimitedProvider(inner Provider, rps float64, burst int) *RateLimitedProvider {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (p *RateLimitedProvider) Completion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &Error{
			Code:       ErrRateLimited,
			Message:    "local rate limiter: " + err.Error(),
			HTTPStatus: http.StatusTooManyRequests,
			Retryable:  false,
			Provider:   p.inner.Name(),
		}
	}
	return p.inner.Completion(ctx, req)
}

func (p *RateLimitedProvider) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	// 健康检查不占用配额
	return p.inner.HealthCheck(ctx)
}

func (p *RateLimitedProvider) Name() string { return p.inner.Name() }
