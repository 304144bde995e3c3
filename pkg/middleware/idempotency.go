package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// storedResponse is a replayable copy of a successful response.
type storedResponse struct {
	statusCode int
	header     http.Header
	body       []byte
	storedAt   time.Time
}

// IdempotencyStore keeps successful responses keyed by the caller-supplied
// idempotency key. A client retrying a booking POST that already succeeded
// gets its original 201 replayed instead of a 409 for the window it took.
type IdempotencyStore struct {
	mu     sync.RWMutex
	byKey  map[string]*storedResponse
	ttl    time.Duration
	stopCh chan struct{}
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	s := &IdempotencyStore{
		byKey:  make(map[string]*storedResponse),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

func (s *IdempotencyStore) get(key string) (*storedResponse, bool) {
	s.mu.RLock()
	resp, ok := s.byKey[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Since(resp.storedAt) > s.ttl {
		s.mu.Lock()
		delete(s.byKey, key)
		s.mu.Unlock()
		return nil, false
	}
	return resp, true
}

func (s *IdempotencyStore) put(key string, resp *storedResponse) {
	s.mu.Lock()
	resp.storedAt = time.Now()
	s.byKey[key] = resp
	s.mu.Unlock()
}

func (s *IdempotencyStore) evictLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, resp := range s.byKey {
				if time.Since(resp.storedAt) > s.ttl {
					delete(s.byKey, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

// Stop ends the eviction goroutine.
func (s *IdempotencyStore) Stop() {
	close(s.stopCh)
}

// captureWriter tees the response so a successful outcome can be stored.
type captureWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Only 2xx responses are stored; a failed request may be retried for real.
// Requests without the header pass through untouched.
func Idempotency(store *IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if resp, ok := store.get(key); ok {
				for name, values := range resp.header {
					for _, v := range values {
						w.Header().Add(name, v)
					}
				}
				w.WriteHeader(resp.statusCode)
				_, _ = w.Write(resp.body)
				return
			}

			cw := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.statusCode >= 200 && cw.statusCode < 300 {
				store.put(key, &storedResponse{
					statusCode: cw.statusCode,
					header:     w.Header().Clone(),
					body:       cw.body.Bytes(),
				})
			}
		})
	}
}
