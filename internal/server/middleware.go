package server

import (
	"context"
	"net/http"
)

type contextKey string

const ownerIDKey contextKey = "owner_id"

// OwnerIDHeader carries the cart owner identity: a signed-in user id or a
// client-held guest token. The server treats both the same way.
const OwnerIDHeader = "X-Owner-ID"

// OwnerMiddleware rejects requests without an owner identity. It guards the
// cart, checkout and order routes; the catalog stays anonymous.
func OwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(OwnerIDHeader)
		if ownerID == "" {
			respondError(w, http.StatusUnauthorized, "missing_owner", "X-Owner-ID header is required")
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerFromContext(ctx context.Context) string {
	if ownerID, ok := ctx.Value(ownerIDKey).(string); ok {
		return ownerID
	}
	return ""
}
