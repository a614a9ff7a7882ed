package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/angelmondragon/rflink-backend/api/responses"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
)

const requestIDHeader = responses.RequestIDHeader

// inboundRequestID bounds what a storefront may forward as its own id.
var inboundRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID reuses a well-formed X-Request-Id from the storefront so a cart
// action can be traced across both services, and mints a UUID otherwise.
// The id is echoed on the response, stored in ctx and added to log entries.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			forwarded := reqID != ""
			if !inboundRequestID.MatchString(reqID) {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := withRequestID(r.Context(), reqID)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
				if forwarded && reqID != r.Header.Get(requestIDHeader) {
					logg.Debug(ctx, "request id replaced")
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
