package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"tutorbook/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metrics records request count and latency per method, route and status.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		metrics.IncInFlight()
		defer metrics.DecInFlight()

		next.ServeHTTP(rec, r)

		metrics.RecordHTTPRequest(
			strings.ToUpper(r.Method),
			canonicalPath(r.URL.Path),
			strconv.Itoa(rec.statusCode),
			time.Since(start),
		)
	})
}

// canonicalPath replaces ObjectID segments with ":id" so label cardinality
// stays bounded.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		if primitive.IsValidObjectID(p) {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
