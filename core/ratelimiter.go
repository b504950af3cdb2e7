package core

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// GiteeRateLimiter Gitee API 限流器
// Gitee OpenAPI 按用户+IP维度限流，超限会直接返回 403
// 本地限制: 100次/分钟 且 5次/秒
type GiteeRateLimiter struct {
	perSecond *rate.Limiter // 5次/秒限制
	perMinute *rate.Limiter // 100次/分钟限制
}

// NewGiteeRateLimiter 创建 Gitee API 限流器
func NewGiteeRateLimiter() *GiteeRateLimiter {
	return &GiteeRateLimiter{
		// 5次/秒，burst设为5允许短时突发
		perSecond: rate.NewLimiter(rate.Limit(5), 5),

		// 100次/分钟 = 1.67次/秒，burst设为10允许初始突发
		perMinute: rate.NewLimiter(rate.Every(time.Minute/100), 10),
	}
}

// Wait 等待直到可以执行 Gitee API 请求
// 必须同时满足两个限流器的条件
func (l *GiteeRateLimiter) Wait(ctx context.Context) error {
	// 先检查秒级限流
	if err := l.perSecond.Wait(ctx); err != nil {
		return err
	}

	// 再检查分钟级限流
	return l.perMinute.Wait(ctx)
}

// WaitN 等待N个令牌
func (l *GiteeRateLimiter) WaitN(ctx context.Context, n int) error {
	if err := l.perSecond.WaitN(ctx, n); err != nil {
		return err
	}
	return l.perMinute.WaitN(ctx, n)
}

// Allow 检查是否可以立即执行（不等待）
func (l *GiteeRateLimiter) Allow() bool {
	return l.perSecond.Allow() && l.perMinute.Allow()
}

// AllowN 检查是否可以立即执行N次
func (l *GiteeRateLimiter) AllowN(n int) bool {
	return l.perSecond.AllowN(time.Now(), n) && l.perMinute.AllowN(time.Now(), n)
}
