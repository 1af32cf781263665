package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenGenerator signs HS256 tokens with a single shared secret and a
// role-dependent TTL. The secret comes from validated config; there is no
// built-in fallback.
type JWTTokenGenerator struct {
	Secret        []byte
	SuperadminTTL time.Duration
	AdminTTL      time.Duration
	EmployeeTTL   time.Duration
}

func NewJWTTokenGenerator(secret string, superadminTTL, adminTTL, employeeTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:        []byte(secret),
		SuperadminTTL: superadminTTL,
		AdminTTL:      adminTTL,
		EmployeeTTL:   employeeTTL,
	}
}

func (j *JWTTokenGenerator) ttlFor(role Role) time.Duration {
	switch role {
	case RoleSuperadmin:
		return j.SuperadminTTL
	case RoleAdmin:
		return j.AdminTTL
	default:
		return j.EmployeeTTL
	}
}

// Issue mints a signed token for the principal. The returned expiry is the
// same instant embedded in the claims so the session ledger row matches the
// token exactly.
func (j *JWTTokenGenerator) Issue(p Principal) (string, time.Time, error) {
	if err := p.Validate(); err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(j.ttlFor(p.Role))

	claims := &Claims{
		PrincipalID: p.ID,
		Role:        p.Role,
		CompanyID:   p.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%s:%d", p.Role, p.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Validate checks signature and embedded expiry only. Revocation is the
// request gate's job against the session ledger and blacklist.
func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
