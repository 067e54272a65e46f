package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/folio/router"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

func TestBreaker_Opens(t *testing.T) {
	inner := &fakeRouter{err: errors.New("unavailable")}
	b := NewBreaker(inner, zerolog.Nop())
	req := router.NewRequest("", "q", nil)

	for i := 0; i < int(defaultMaxFailures); i++ {
		if _, err := b.Route(context.Background(), req); err == nil {
			t.Fatalf("Route() #%d error = nil, want an error", i)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.Route(context.Background(), req)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Route() error = %v, want ErrOpenState", err)
	}
	if inner.calls != int(defaultMaxFailures) {
		t.Errorf("inner router called %d times, want %d", inner.calls, defaultMaxFailures)
	}
}

func TestBreaker_Success(t *testing.T) {
	inner := &fakeRouter{out: router.Outcome{Text: "hello"}}
	b := NewBreaker(inner, zerolog.Nop())

	for i := 0; i < 5; i++ {
		got, err := b.Route(context.Background(), router.NewRequest("", "q", nil))
		if err != nil || got.Text != "hello" {
			t.Errorf("Route() = %+v, %v, want hello", got, err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	inner := &fakeRouter{err: context.Canceled}
	b := NewBreaker(inner, zerolog.Nop())

	for i := 0; i < 5; i++ {
		b.Route(context.Background(), router.NewRequest("", "q", nil))
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestAsk_BreakerFallback(t *testing.T) {
	inner := &fakeRouter{err: errors.New("unavailable")}
	a := newAgent(WithAutomated(NewBreaker(inner, zerolog.Nop()), ""))

	for i := 0; i < 5; i++ {
		got := a.Ask(context.Background(), "list my accounts", nil)
		if got.Response == "" || got.Confidence != 0.9 {
			t.Errorf("Ask() #%d = %q, %v", i, got.Response, got.Confidence)
		}
	}
	if inner.calls != int(defaultMaxFailures) {
		t.Errorf("inner router called %d times, want %d", inner.calls, defaultMaxFailures)
	}
}
