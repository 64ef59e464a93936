package jwt

import (
	"fmt"
	"time"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtService interface {
	NewToken(user domain.User) (string, time.Time, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

// Claims is the session payload. Subject holds the user uuid.
type Claims struct {
	Email domain.Email `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey []byte, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: secretKey, ttl: ttl, now: time.Now}
}

func (j *Jwt) NewToken(user domain.User) (string, time.Time, error) {
	issuedAt := j.now()
	expiresAt := issuedAt.Add(j.ttl)
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", time.Time{}, fmt.Errorf("can't create token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// DecodeToken accepts only unexpired HS256 tokens whose subject is a uuid.
func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(jwtStr, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return nil, errors.Unauthorized("Invalid access token")
	}
	if !token.Valid {
		return nil, errors.Unauthorized("Invalid access token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, errors.Unauthorized("Invalid access token")
	}
	return claims, nil
}
