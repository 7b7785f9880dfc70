// Package identity describes the signed-in user on whose behalf a store is
// queried.
//
// Users are built from OIDC ID token claims and travel in the request context,
// where audit recorders pick them up.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// NotExistUsername is the username of the placeholder returned by NotExist.
const NotExistUsername = "not exist"

// Claim names read by FromClaims.
const (
	ClaimEmail         = "email"
	ClaimUsername      = "preferred_username"
	ClaimGivenName     = "given_name"
	ClaimFamilyName    = "family_name"
	ClaimZoneInfo      = "zoneinfo"
	ClaimCompany       = "company"
	ClaimAdministrator = "administrator"
	ClaimEmployee      = "employee"
)

// ErrMissingUsername is returned when the claims carry no username.
var ErrMissingUsername = errors.New("identity: missing preferred_username claim")

// User is an authenticated user.
type User struct {
	Email         string `json:"email"`
	Username      string `json:"username"`
	GivenName     string `json:"givenName"`
	FamilyName    string `json:"familyName"`
	Company       string `json:"company,omitempty"`
	ZoneInfo      string `json:"zoneInfo"`
	Administrator bool   `json:"administrator"`
	Employee      bool   `json:"employee"`
}

// NotExist returns the placeholder user for sessions without a known user.
func NotExist() User {
	return User{Username: NotExistUsername, Employee: true}
}

// Exists reports whether u is a real user rather than the NotExist placeholder.
func (u User) Exists() bool {
	return u.Username != "" && u.Username != NotExistUsername
}

// FullName joins the given and family names. It falls back to the username
// when both are blank.
func (u User) FullName() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(u.GivenName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(u.FamilyName); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return u.Username
	}
	return strings.Join(parts, " ")
}

// FromClaims builds a user from ID token claims.
func FromClaims(claims jwt.MapClaims) (User, error) {
	u := User{
		Email:         stringClaim(claims, ClaimEmail),
		Username:      stringClaim(claims, ClaimUsername),
		GivenName:     stringClaim(claims, ClaimGivenName),
		FamilyName:    stringClaim(claims, ClaimFamilyName),
		ZoneInfo:      stringClaim(claims, ClaimZoneInfo),
		Company:       stringClaim(claims, ClaimCompany),
		Administrator: boolClaim(claims, ClaimAdministrator),
		Employee:      boolClaim(claims, ClaimEmployee),
	}
	if u.Username == "" {
		return User{}, ErrMissingUsername
	}
	return u, nil
}

// ParseUnverified reads the user from an ID token without checking its
// signature. Use it only for tokens that were already verified upstream,
// for example by an authenticating proxy.
func ParseUnverified(token string) (User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return User{}, err
	}
	return FromClaims(claims)
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}

func boolClaim(claims jwt.MapClaims, name string) bool {
	switch v := claims[name].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying u.
func NewContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the user carried by ctx, or NotExist.
func FromContext(ctx context.Context) User {
	if u, ok := ctx.Value(contextKey{}).(User); ok {
		return u
	}
	return NotExist()
}
