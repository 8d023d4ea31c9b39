package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Kind discriminates access from refresh tokens. The two kinds are signed
// with distinct secrets, so a leaked access secret cannot forge refresh
// tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry. Callers react differently: an expired access token is a
	// "please refresh", an invalid one is an outright rejection.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the single claim shape shared by both token kinds. Refresh
// tokens carry only the user id; access tokens also embed email and full
// name so handlers can render without a lookup.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Kind     Kind   `json:"kind"`
	jwtlib.RegisteredClaims
}

// Issuer mints and verifies HMAC-signed access and refresh tokens.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *Issuer) IssueAccess(userID int64, email, fullName string) (string, error) {
	return i.sign(Claims{
		UserID:   userID,
		Email:    email,
		FullName: fullName,
		Kind:     KindAccess,
	}, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(userID int64) (string, error) {
	return i.sign(Claims{
		UserID: userID,
		Kind:   KindRefresh,
	}, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) sign(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify parses raw against the secret for kind. Expiry is reported as
// ErrTokenExpired; any other failure (bad signature, malformed token,
// kind mismatch) as ErrTokenInvalid.
func (i *Issuer) Verify(raw string, kind Kind) (*Claims, error) {
	secret := i.accessSecret
	if kind == KindRefresh {
		secret = i.refreshSecret
	}

	claims := &Claims{}
	t, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !t.Valid || claims.Kind != kind {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
