package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OperatorIDKey is the context key for the authenticated operator ID.
	OperatorIDKey contextKey = "operator_id"
	// EmailKey is the context key for the authenticated operator's email.
	EmailKey contextKey = "email"
)

// GetOperatorID extracts the operator ID from the context.
// Returns empty string if not found.
func GetOperatorID(ctx context.Context) string {
	id, _ := ctx.Value(OperatorIDKey).(string)
	return id
}

// GetEmail extracts the operator email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// bearerToken returns the token of a "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth returns an interceptor that validates the operator's JWT and
// adds the operator ID and email to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, OperatorIDKey, claims.OperatorID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			return next(ctx, req)
		}
	}
}

// OptionalAuth validates a token when one is present but lets anonymous
// requests through. It backs deployments with AUTH_REQUIRED=false so logs
// still carry the operator when the dashboard sends one.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = context.WithValue(ctx, OperatorIDKey, claims.OperatorID)
					ctx = context.WithValue(ctx, EmailKey, claims.Email)
				}
			}
			return next(ctx, req)
		}
	}
}
