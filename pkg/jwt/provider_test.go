package jwt_test

import (
	"testing"
	"time"

	"movieclub/pkg/jwt"
	"movieclub/user"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTProvider_RoundTrip(t *testing.T) {
	p := jwt.NewJWTProvider("secret", time.Hour)

	token, err := p.GenerateAccessToken(user.User{ID: 7, LoginID: "adm-001", Role: user.RoleAdmin})
	require.NoError(t, err)

	claims, err := p.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "adm-001", claims.LoginID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTProvider_Rejects(t *testing.T) {
	p := jwt.NewJWTProvider("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewJWTProvider("other", time.Hour)
		token, err := other.GenerateAccessToken(user.User{LoginID: "adm-001", Role: user.RoleAdmin})
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)
		assert.Equal(t, jwt.ErrInvalidToken, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := jwt.NewJWTProvider("secret", -time.Minute)
		token, err := expired.GenerateAccessToken(user.User{LoginID: "adm-001", Role: user.RoleAdmin})
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)
		assert.Equal(t, jwt.ErrInvalidToken, err)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		claims := jwt.Claims{LoginID: "adm-001", Role: user.RoleAdmin}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)
		assert.Equal(t, jwt.ErrInvalidToken, err)
	})

	t.Run("missing role", func(t *testing.T) {
		token, err := p.GenerateAccessToken(user.User{LoginID: "emp-042"})
		require.NoError(t, err)

		_, err = p.ParseAccessToken(token)
		assert.Equal(t, jwt.ErrInvalidToken, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.ParseAccessToken("not.a.token")
		assert.Equal(t, jwt.ErrInvalidToken, err)
	})
}
