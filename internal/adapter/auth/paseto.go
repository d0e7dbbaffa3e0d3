package auth

import (
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/mehtaam/shopstack/internal/adapter/config"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
)

const tokenLifetime = 72 * time.Hour

type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

// New builds the token service. An empty configured key means a fresh
// random key per process, so tokens do not survive restarts.
func New(conf *config.Token) (port.TokenService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if conf != nil && conf.SymmetricKey != "" {
		k, err := paseto.V4SymmetricKeyFromHex(conf.SymmetricKey)
		if err != nil {
			return nil, err
		}
		key = k
	} else {
		key = paseto.NewV4SymmetricKey()
	}

	s := PasetoToken{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(user *domain.User) (string, error) {
	token := paseto.NewToken()
	token.SetIssuedAt(time.Now())
	token.SetExpiration(time.Now().Add(tokenLifetime))

	payload := port.TokenPayload{UserID: user.ID}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
