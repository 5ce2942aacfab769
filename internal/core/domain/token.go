package domain

import "errors"

var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenSignature = errors.New("token signature invalid")

// TokenPair is the credential set returned by a successful login. Access and
// refresh tokens share the same shape and differ only in lifetime.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
