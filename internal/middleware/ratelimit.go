package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionLimiter caps how many waste submissions a user may create per
// window, backed by Redis: one counter per user, incremented per request,
// expiring with the window. The TTL is set only on the first increment.
type SubmissionLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewSubmissionLimiter creates a per-user submission limiter.
func NewSubmissionLimiter(client *redis.Client, prefix string, limit int64, window time.Duration) *SubmissionLimiter {
	return &SubmissionLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Limit rejects requests once the authenticated user's counter passes the
// cap, replying 429 with the seconds until the window resets. With no Redis
// client configured the limiter is a pass-through.
func (l *SubmissionLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.client == nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := GetUserFromContext(r.Context())
		if !ok {
			http.Error(w, "User context not found", http.StatusUnauthorized)
			return
		}

		key := fmt.Sprintf("%s:%s", l.prefix, claims.UserID)
		count, err := l.client.Incr(r.Context(), key).Result()
		if err != nil {
			http.Error(w, "Rate limiter unavailable", http.StatusInternalServerError)
			return
		}
		if count == 1 {
			if err := l.client.Expire(r.Context(), key, l.window).Err(); err != nil {
				http.Error(w, "Rate limiter unavailable", http.StatusInternalServerError)
				return
			}
		}

		if count > l.limit {
			retryAfter, _ := l.client.TTL(r.Context(), key).Result()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
