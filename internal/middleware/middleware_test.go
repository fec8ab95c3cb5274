package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/gymdesk/internal/auth"
	"github.com/mmynk/gymdesk/pkg/api"
)

// capture is a terminal UnaryFunc that remembers the context it was called with.
type capture struct {
	ctx context.Context
	err error
}

func (c *capture) call(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
	c.ctx = ctx
	if c.err != nil {
		return nil, c.err
	}
	return connect.NewResponse(&api.GetPaymentResponse{}), nil
}

func request(authorization string) connect.AnyRequest {
	req := connect.NewRequest(&api.GetPaymentRequest{PaymentId: "p1"})
	if authorization != "" {
		req.Header().Set("Authorization", authorization)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate("op-7", "desk@gym.test")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		ok     bool
	}{
		{"missing", "", false},
		{"not bearer", "Basic abc", false},
		{"bad token", "Bearer nope", false},
		{"valid", "Bearer " + token, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &capture{}
			_, err := RequireAuth(jwtManager)(next.call)(context.Background(), request(tt.header))
			if !tt.ok {
				if connect.CodeOf(err) != connect.CodeUnauthenticated {
					t.Fatalf("expected Unauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if GetOperatorID(next.ctx) != "op-7" || GetEmail(next.ctx) != "desk@gym.test" {
				t.Errorf("operator not in context")
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	next := &capture{}
	if _, err := OptionalAuth(jwtManager)(next.call)(context.Background(), request("")); err != nil {
		t.Fatalf("expected anonymous call to pass, got %v", err)
	}
	if GetOperatorID(next.ctx) != "" {
		t.Error("expected no operator")
	}

	token, err := jwtManager.Generate("op-7", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := OptionalAuth(jwtManager)(next.call)(context.Background(), request("Bearer "+token)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if GetOperatorID(next.ctx) != "op-7" {
		t.Error("expected operator in context")
	}
}

func TestTimeoutInterceptor(t *testing.T) {
	next := &capture{}
	if _, err := TimeoutInterceptor(time.Second)(next.call)(context.Background(), request("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline, ok := next.ctx.Deadline()
	if !ok || time.Until(deadline) > time.Second {
		t.Errorf("expected deadline within 1s, got %v (set=%v)", deadline, ok)
	}

	if _, err := TimeoutInterceptor(0)(next.call)(context.Background(), request("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := next.ctx.Deadline(); ok {
		t.Error("expected no deadline when disabled")
	}
}

type fakeObserver struct {
	codes []string
}

func (o *fakeObserver) ObserveRPC(_, code string, _ float64) { o.codes = append(o.codes, code) }

func TestMetricsAndLoggingInterceptors(t *testing.T) {
	obs := &fakeObserver{}
	chain := func(err error) connect.UnaryFunc {
		next := &capture{err: err}
		return MetricsInterceptor(obs)(LoggingInterceptor()(next.call))
	}

	if _, err := chain(nil)(context.Background(), request("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notFound := connect.NewError(connect.CodeNotFound, errors.New("payment not found: p1"))
	if _, err := chain(notFound)(context.Background(), request("")); !errors.Is(err, notFound) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	if _, err := chain(errors.New("boom"))(context.Background(), request("")); err == nil {
		t.Fatal("expected error")
	}

	want := []string{"ok", "not_found", "unknown"}
	if len(obs.codes) != len(want) {
		t.Fatalf("expected %d observations, got %v", len(want), obs.codes)
	}
	for i := range want {
		if obs.codes[i] != want[i] {
			t.Errorf("observation %d: expected %s, got %s", i, want[i], obs.codes[i])
		}
	}
}
