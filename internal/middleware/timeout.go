package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
)

// TimeoutInterceptor bounds every call with d unless the caller already set
// a shorter deadline. d <= 0 disables it.
func TimeoutInterceptor(d time.Duration) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, req)
		}
	}
}
