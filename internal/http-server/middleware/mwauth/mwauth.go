// Package mwauth extracts the viewer identity from the request. The real
// identity check lives in an upstream collaborator; this middleware only
// translates its result into a models.Viewer so handlers never parse
// credentials themselves. Requests without a usable identity proceed as
// anonymous — individual handlers decide whether that is acceptable.
package mwauth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"eventHub/internal/models"
)

type ctxKey struct{}

const bearerPrefix = "Bearer "

func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			viewer := viewerFromHeader(r.Header.Get("Authorization"))

			ctx := context.WithValue(r.Context(), ctxKey{}, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// Viewer returns the viewer stored by the middleware, or an anonymous
// viewer when the middleware did not run.
func Viewer(ctx context.Context) models.Viewer {
	if v, ok := ctx.Value(ctxKey{}).(models.Viewer); ok {
		return v
	}
	return models.Anonymous()
}

func viewerFromHeader(header string) models.Viewer {
	if !strings.HasPrefix(header, bearerPrefix) {
		return models.Anonymous()
	}

	token := strings.TrimPrefix(header, bearerPrefix)

	// Token format: "user:<id>", issued by the auth service.
	id, ok := strings.CutPrefix(token, "user:")
	if !ok {
		return models.Anonymous()
	}

	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || userID <= 0 {
		return models.Anonymous()
	}

	return models.User(userID)
}
