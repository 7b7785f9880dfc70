package identity

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "both names", user: User{Username: "ana", GivenName: "Ana", FamilyName: "Ruiz"}, want: "Ana Ruiz"},
		{name: "given only", user: User{Username: "ana", GivenName: "Ana"}, want: "Ana"},
		{name: "family only", user: User{Username: "ana", FamilyName: " Ruiz "}, want: "Ruiz"},
		{name: "blank names", user: User{Username: "ana", GivenName: "  "}, want: "ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.FullName())
		})
	}
}

func TestNotExist(t *testing.T) {
	u := NotExist()
	assert.False(t, u.Exists())
	assert.Equal(t, NotExistUsername, u.FullName())
	assert.True(t, u.Employee)
}

func TestFromClaims(t *testing.T) {
	u, err := FromClaims(jwt.MapClaims{
		"email":              "ana@example.com",
		"preferred_username": "ana",
		"given_name":         "Ana",
		"family_name":        "Ruiz",
		"zoneinfo":           "America/Mexico_City",
		"company":            "LegoSoft",
		"administrator":      true,
		"employee":           "true",
	})
	require.NoError(t, err)

	assert.Equal(t, User{
		Email:         "ana@example.com",
		Username:      "ana",
		GivenName:     "Ana",
		FamilyName:    "Ruiz",
		Company:       "LegoSoft",
		ZoneInfo:      "America/Mexico_City",
		Administrator: true,
		Employee:      true,
	}, u)
	assert.True(t, u.Exists())
}

func TestFromClaims_MissingUsername(t *testing.T) {
	_, err := FromClaims(jwt.MapClaims{"email": "ana@example.com"})
	assert.ErrorIs(t, err, ErrMissingUsername)
}

func TestParseUnverified(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"preferred_username": "ben",
		"given_name":         "Ben",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	u, err := ParseUnverified(signed)
	require.NoError(t, err)
	assert.Equal(t, "ben", u.Username)
	assert.Equal(t, "Ben", u.FullName())

	_, err = ParseUnverified("not-a-token")
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, NotExist(), FromContext(ctx))

	ana := User{Username: "ana"}
	assert.Equal(t, ana, FromContext(NewContext(ctx, ana)))
}
