package token

import (
	"crypto/rsa"
	"fmt"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/token/helper"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(privateKey *rsa.PrivateKey, accessTokenExpirationSeconds int) *tokenService {
	return &tokenService{
		privateKey:                   privateKey,
		accessTokenExpirationSeconds: accessTokenExpirationSeconds,
	}
}

// Tokens domain object defining user tokens
// swagger:model
type Tokens struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   uint   `json:"expiresIn"`
}

type tokenService struct {
	privateKey                   *rsa.PrivateKey
	accessTokenExpirationSeconds int
}

func (t tokenService) IssueToken(user *model.User) (*Tokens, error) {
	accessToken, err := helper.GenerateAccessToken(user.Email, t.privateKey, t.accessTokenExpirationSeconds)
	if err != nil {
		return nil, fmt.Errorf("error generating accessToken for user %d: %v", user.ID, err)
	}

	return &Tokens{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   uint(t.accessTokenExpirationSeconds),
	}, nil
}

// VerifyToken returns the email of the identity the token was minted for.
// Bad signature, malformed payload and expiry all map to the same
// unauthorized error so callers can't distinguish why a token was rejected.
func (t tokenService) VerifyToken(tokenString string) (string, error) {
	email, err := helper.ValidateAccessToken(tokenString, &t.privateKey.PublicKey)
	if err != nil {
		return "", errdef.NewUnauthorized("token not valid")
	}
	return email, nil
}
