package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"parceltrack/internal/adapters/out/authbridge"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

const identityContextKey = "parceltrack.identity"

// BearerAuth verifies the Authorization header on every request and stores
// the verified identity in the request context. Requests without a valid
// token never reach a handler.
func BearerAuth(verifier *authbridge.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return writeErrorStatus(ctx, http.StatusUnauthorized, "authentication required")
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				return writeErrorStatus(ctx, http.StatusUnauthorized, "authentication required")
			}

			ctx.Set(identityContextKey, identity)
			return next(ctx)
		}
	}
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// callerIdentity returns the verified identity the middleware attached, and
// the caller derived from its metadata. The role comes from the token's
// metadata with the same defaulting as profile creation, so a caller's role
// is consistent between access decisions and their stored profile.
func callerIdentity(ctx echo.Context) (authbridge.Identity, user.Caller, error) {
	identity, ok := ctx.Get(identityContextKey).(authbridge.Identity)
	if !ok {
		return authbridge.Identity{}, user.Caller{}, errs.NewUnauthenticatedError("no verified identity on request")
	}

	profile, err := user.ProfileFromMetadata(identity.UserID, identity.Metadata, identity.AccountCreatedAt)
	if err != nil {
		return authbridge.Identity{}, user.Caller{}, err
	}

	return identity, profile.Caller(), nil
}
