// Package cryptox implements the credential encoding used by the marketplace
// API: the password is sent as a hex SHA-512 digest and the pair
// "email:digest" is base64 encoded into a Basic auth token.
//
// This is an encoding, not a protection of the stored credential.
package cryptox

import (
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tcgexchange/internal/common"
)

// Credentials is the decoded content of a session token. Password holds the
// hex digest, never the plaintext.
type Credentials struct {
	Email    string
	Password string
}

// PasswordDigest returns hex(SHA-512(password)) in lower case.
func PasswordDigest(password []byte) string {
	sum := sha512.Sum512(password)
	return hex.EncodeToString(sum[:])
}

// EncodeCredentials builds the token base64(email ":" digest).
func EncodeCredentials(email, digest string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + digest))
}

// DecodeCredentials splits a token produced by EncodeCredentials. The email
// ends at the first colon.
func DecodeCredentials(token string) (Credentials, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	email, digest, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Credentials{}, common.ErrInvalidToken
	}
	return Credentials{Email: email, Password: digest}, nil
}
