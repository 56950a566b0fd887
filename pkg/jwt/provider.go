package jwt

import (
	"errors"
	"strconv"
	"time"

	"movieclub/user"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an access token.
type Claims struct {
	LoginID string    `json:"login_id"`
	Role    user.Role `json:"role"`
	gojwt.RegisteredClaims
}

type JWTProvider struct {
	Secret    string
	AccessTTL time.Duration
	now       func() time.Time
}

func NewJWTProvider(secret string, accessTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:    secret,
		AccessTTL: accessTTL,
		now:       time.Now,
	}
}

func (p *JWTProvider) GenerateAccessToken(u user.User) (string, error) {
	now := p.now()
	claims := Claims{
		LoginID: u.LoginID,
		Role:    u.Role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(p.AccessTTL)),
		},
	}

	t := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

func (p *JWTProvider) ParseAccessToken(accessToken string) (*Claims, error) {
	claims := new(Claims)
	token, err := gojwt.ParseWithClaims(accessToken, claims, func(t *gojwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.LoginID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
