package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newIdempotentChain(t *testing.T, ttl time.Duration, next http.Handler) http.Handler {
	t.Helper()
	store := NewIdempotencyStore(ttl)
	t.Cleanup(store.Stop)
	return Idempotency(store)(next)
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	calls := 0
	chain := newIdempotentChain(t, time.Minute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"booked":true}}`))
			return
		}
		// A real retry would hit the window it already booked.
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Room is not available for the requested time window"}`))
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	chain.ServeHTTP(first, req)

	retry := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	chain.ServeHTTP(retry, req)

	if calls != 1 {
		t.Errorf("expected the handler to run once, ran %d times", calls)
	}
	if retry.Code != http.StatusCreated {
		t.Errorf("expected the retry to replay 201, got %d", retry.Code)
	}
	if retry.Body.String() != first.Body.String() {
		t.Errorf("expected the retry to replay the original body, got %q", retry.Body.String())
	}
}

func TestIdempotency_DoesNotStoreFailures(t *testing.T) {
	calls := 0
	chain := newIdempotentChain(t, time.Minute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	for _, want := range []int{http.StatusConflict, http.StatusCreated} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		chain.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("expected %d, got %d", want, rec.Code)
		}
	}

	if calls != 2 {
		t.Errorf("a failed request must be retried for real, handler ran %d times", calls)
	}
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	calls := 0
	chain := newIdempotentChain(t, time.Minute, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		chain.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Errorf("requests without a key must not be deduplicated, handler ran %d times", calls)
	}
}

func TestIdempotency_ExpiredEntryIsDropped(t *testing.T) {
	calls := 0
	chain := newIdempotentChain(t, time.Nanosecond, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		chain.ServeHTTP(rec, req)
		time.Sleep(time.Millisecond)
	}

	if calls != 2 {
		t.Errorf("an expired entry must not be replayed, handler ran %d times", calls)
	}
}
