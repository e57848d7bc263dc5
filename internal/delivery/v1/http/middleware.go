package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/DRSN-tech/catalog-engine/pkg/ratelimit"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID проставляет идентификатор запроса, если клиент его не прислал.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// RateLimit ограничивает частоту запросов по скользящему окну и отдает
// состояние лимита в заголовках X-RateLimit-*.
func RateLimit(limiter *ratelimit.Limiter, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ratelimit.DefaultIdentity

			allowed := limiter.Allow(identity)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Max()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(identity)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(limiter.ResetTime(identity).Unix(), 10))

			if !allowed {
				log.Warnf("rate limit exceeded for %s %s", r.Method, r.URL.Path)
				WriteError(w, e.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
