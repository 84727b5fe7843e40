package helper

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// GenerateAccessToken mints a signed, stateless token bound to the user's
// email. The token carries no server-side state and stays valid until expiry.
func GenerateAccessToken(email string, key *rsa.PrivateKey, expirationInSeconds int) (string, error) {
	currentTime := time.Now()
	tokenExpiration := currentTime.Add(time.Duration(expirationInSeconds) * time.Second)

	token := jwt.New()

	err := token.Set(jwt.SubjectKey, email)
	if err != nil {
		return "", err
	}

	err = token.Set(jwt.IssuedAtKey, currentTime.Unix())
	if err != nil {
		return "", err
	}

	err = token.Set(jwt.ExpirationKey, tokenExpiration.Unix())
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

// ValidateAccessToken verifies signature and expiry and returns the email the
// token was issued for. It deliberately does not consult any user state, the
// active flag is checked fresh per request by the authentication middleware.
func ValidateAccessToken(tokenString string, key *rsa.PublicKey) (string, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.RS256, key),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", err
	}

	email := token.Subject()
	if email == "" {
		return "", errors.New("subject not found in claims")
	}

	return email, nil
}
