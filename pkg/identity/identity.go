// Package identity abstracts the external identity provider behind a single
// verification operation. The concrete strategy is chosen once at wiring time;
// the auth layer never inspects the environment to pick one.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the decoded identity assertions returned by a Verifier: the
// provider subject id, expiry, an optional role custom-claim, and an optional
// internal user id claim written back after registration.
type Claims struct {
	UID   string
	MDBID string
	Role  string
	Exp   int64
	Raw   map[string]interface{}
}

// Expired reports whether the claims' expiry has passed.
func (c *Claims) Expired(now time.Time) bool {
	return c.Exp != 0 && c.Exp*1000 <= now.UnixMilli()
}

// Verifier validates a bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// JWTVerifier validates HMAC-signed tokens carrying uid/sub, exp and the
// optional role and mdbid custom claims.
type JWTVerifier struct {
	secret string
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{Raw: map[string]interface{}(mapClaims)}

	if uid, ok := mapClaims["uid"].(string); ok && uid != "" {
		claims.UID = uid
	} else if sub, ok := mapClaims["sub"].(string); ok {
		claims.UID = sub
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.Exp = exp.Unix()
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if mdbid, ok := mapClaims["mdbid"].(string); ok {
		claims.MDBID = mdbid
	}

	return claims, nil
}

// StubVerifier accepts any non-empty token and fabricates claims around it.
// Local development only.
type StubVerifier struct {
	Role string
	TTL  time.Duration
}

func NewStubVerifier(role string, ttl time.Duration) *StubVerifier {
	return &StubVerifier{Role: role, TTL: ttl}
}

func (v *StubVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	return &Claims{
		UID:  "stub-" + token,
		Role: v.Role,
		Exp:  time.Now().Add(v.TTL).Unix(),
		Raw:  map[string]interface{}{"stub": true},
	}, nil
}
