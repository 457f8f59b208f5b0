// Package authbridge connects the service to its external identity provider.
//
// Two concerns live here: verifying the bearer tokens the provider issues
// (HMAC-signed JWTs carrying identity metadata) and bridging phone-number
// identities onto the provider's email-only account model. Credential
// verification and session issuance stay with the provider; this package
// only consumes what the provider already signed.
package authbridge

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Identity is the verified content of a bearer token: who the caller is and
// the profile metadata the provider attached to the account.
type Identity struct {
	UserID           kernel.UUID
	Metadata         user.Metadata
	AccountCreatedAt time.Time
}

type metadataClaims struct {
	FullName      string `json:"full_name,omitempty"`
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
}

type tokenClaims struct {
	jwt.RegisteredClaims

	UserMetadata metadataClaims `json:"user_metadata,omitempty"`
}

// TokenVerifier validates provider-issued JWTs and extracts the identity
// they carry.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for tokens signed with the given
// shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token. Any defect (bad signature,
// expired, malformed subject) is reported as an authentication failure; the
// caller must not learn which check failed.
func (v *TokenVerifier) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, errs.NewUnauthenticatedError("missing bearer token")
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewUnauthenticatedError("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errs.NewUnauthenticatedErrorWithCause("invalid bearer token", err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Identity{}, errs.NewUnauthenticatedErrorWithCause("token subject is not a user id", err)
	}

	identity := Identity{
		UserID: userID,
		Metadata: user.Metadata{
			FullName:      claims.UserMetadata.FullName,
			Name:          claims.UserMetadata.Name,
			Phone:         claims.UserMetadata.Phone,
			Role:          claims.UserMetadata.Role,
			VehicleNumber: claims.UserMetadata.VehicleNumber,
			CompanyName:   claims.UserMetadata.CompanyName,
		},
	}
	if claims.IssuedAt != nil {
		identity.AccountCreatedAt = claims.IssuedAt.Time
	}
	return identity, nil
}

// IssueToken signs a token for the given identity. Production tokens come
// from the provider; this exists for local development and tests.
func (v *TokenVerifier) IssueToken(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserMetadata: metadataClaims{
			FullName:      identity.Metadata.FullName,
			Name:          identity.Metadata.Name,
			Phone:         identity.Metadata.Phone,
			Role:          identity.Metadata.Role,
			VehicleNumber: identity.Metadata.VehicleNumber,
			CompanyName:   identity.Metadata.CompanyName,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", errs.NewUnauthenticatedErrorWithCause("sign token", err)
	}
	return signed, nil
}
