// Package auth turns a verified bearer token into a request identity.
//
// VerifyBearer runs globally: requests without an Authorization header
// pass through anonymous, requests with a bad token are rejected, and
// requests with a good token carry an Identity in context from then on.
// RequireSignedIn guards the routes that need a caller.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/identity"
)

// Identity is what a verified bearer token resolves to. StytchID is
// always set; UserID is nil until the caller has created a local
// account via the user feature.
type Identity struct {
	StytchID string
	UserID   *primitive.ObjectID
}

// UserResolver maps a provider identity to a local account ID.
// Implemented by userstore.Fetcher.
type UserResolver interface {
	Resolve(ctx context.Context, stytchID string) *primitive.ObjectID
}

type ctxKey string

const identityKey ctxKey = "identity"

// Current returns the request identity and a found flag.
func Current(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

func withIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// WithTestIdentity returns a copy of r carrying the given identity.
// For handler tests only.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return withIdentity(r, id)
}

// VerifyBearer returns middleware that authenticates the Authorization
// header when present. Missing header: continue anonymous. Present but
// invalid: 401. Present and valid: Identity injected into context, with
// UserID resolved (possibly nil) through the resolver.
func VerifyBearer(v identity.Verifier, resolver UserResolver, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				httpjson.Unauthorized(w, "malformed authorization header")
				return
			}

			stytchID, err := v.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) {
					httpjson.Unauthorized(w, "invalid or expired session")
					return
				}
				httpjson.Internal(w, log, "could not verify session", err)
				return
			}

			id := &Identity{
				StytchID: stytchID,
				UserID:   resolver.Resolve(r.Context(), stytchID),
			}
			next.ServeHTTP(w, withIdentity(r, id))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireSignedIn rejects requests that did not present a valid token.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Current(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		httpjson.Unauthorized(w, "authentication required")
	})
}

// RequireAccount rejects requests whose identity has no local account
// yet. Routes that operate on user-owned data sit behind this.
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := Current(r)
		if !ok {
			httpjson.Unauthorized(w, "authentication required")
			return
		}
		if id.UserID == nil {
			httpjson.NotFound(w, "no account exists for this identity")
			return
		}
		next.ServeHTTP(w, r)
	})
}
