package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued by the server. The subject carries the
// user id; username and admin flag travel as private claims so the auth
// middleware never needs a database lookup.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Token wraps a JWT together with its compact form and decoded identity.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation.
	SignedString string `json:"-"`

	// Identity is decoded from the claims after a successful parse.
	Identity Identity `json:"-"`
}

// IdentityFromClaims converts parsed claims into an [Identity].
func IdentityFromClaims(c *Claims) (Identity, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return Identity{}, fmt.Errorf("error extracting subject from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("error converting subject %q to user id: %w", sub, err)
	}

	return Identity{UserID: userID, Username: c.Username, IsAdmin: c.IsAdmin}, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
