package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // how long replayable results are kept (default 24h)
	Cleanup time.Duration // sweep interval for expired entries (default 1h)
}

// IdempotencyStore caches responses keyed by Idempotency-Key so a retried
// registration or submission does not claim a second seat or file a
// duplicate proposal.
type IdempotencyStore struct {
	mu       sync.RWMutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	stopChan chan struct{}
}

type idempotencyEntry struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	inFlight  bool
	done      chan struct{}
}

// NewIdempotencyStore creates a store and starts its cleanup sweeper.
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	store := &IdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		stopChan: make(chan struct{}),
	}

	go store.sweep(cfg.Cleanup)

	return store
}

// Stop stops the cleanup sweeper
func (s *IdempotencyStore) Stop() {
	close(s.stopChan)
}

func (s *IdempotencyStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		// Never evict an in-flight entry; its waiter holds the done channel.
		if entry.expiresAt.Before(now) && !entry.inFlight {
			delete(s.entries, key)
		}
	}
}

// generateKey fingerprints the request. The caller identity is part of the
// key so two attendees reusing the same Idempotency-Key value never collide,
// and the method/path/body are part of it so the same key sent with a
// different request is treated as a fresh one.
func generateKey(userID, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte(idempotencyKey))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// idempotencyResponseWriter tees the response into a buffer for replay
type idempotencyResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *idempotencyResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// replay writes a previously captured response.
func (e *idempotencyEntry) replay(w http.ResponseWriter) {
	for k, vals := range e.headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

// Idempotency returns middleware that deduplicates POST and PATCH requests
// carrying an Idempotency-Key header. The first request runs normally and
// its response is cached; retries with the same key get the cached response
// back, and a retry arriving while the first is still running waits for it
// instead of executing the handler a second time.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get("Idempotency-Key")
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID := GetUserID(r.Context())
			if userID == "" {
				// Unauthenticated callers are keyed by remote address
				userID = r.RemoteAddr
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := generateKey(userID, idempotencyKey, r.Method, r.URL.Path, body)

			store.mu.Lock()
			entry, exists := store.entries[key]

			if exists {
				if entry.inFlight {
					// First attempt still running; wait for its result
					store.mu.Unlock()
					<-entry.done

					store.mu.RLock()
					entry = store.entries[key]
					store.mu.RUnlock()

					if entry != nil && !entry.inFlight {
						entry.replay(w)
						return
					}
				} else if entry.expiresAt.After(time.Now()) {
					store.mu.Unlock()
					entry.replay(w)
					return
				}
			}

			// Claim the key before running the handler so concurrent
			// retries see the in-flight entry.
			entry = &idempotencyEntry{
				inFlight: true,
				done:     make(chan struct{}),
			}
			store.entries[key] = entry
			store.mu.Unlock()

			irw := &idempotencyResponseWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(irw, r)

			store.mu.Lock()
			entry.status = irw.status
			entry.headers = irw.Header().Clone()
			entry.body = irw.body.Bytes()
			entry.expiresAt = time.Now().Add(store.ttl)
			entry.inFlight = false
			close(entry.done)
			store.mu.Unlock()
		})
	}
}
