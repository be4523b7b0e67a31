package github

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mbrinkhoff/pontos/errors"
	"github.com/mbrinkhoff/pontos/httpclient"
)

const (
	appTokenLifetime = 9 * time.Minute
	// GitHub rejects tokens issued in the future; allow for clock drift.
	appClockSkew = 60 * time.Second
)

// AppAuth mints RS256 JSON Web Tokens that authenticate as a GitHub App.
type AppAuth struct {
	appID string
	key   *rsa.PrivateKey
	now   func() time.Time
}

// NewAppAuth creates app credentials from a PEM encoded RSA private key.
func NewAppAuth(appID string, privateKeyPEM []byte) (*AppAuth, error) {
	if appID == "" {
		return nil, errors.MissingField("app_id")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, errors.InvalidFormat("app_private_key", "PEM encoded RSA private key").WithCause(err)
	}
	return &AppAuth{appID: appID, key: key, now: time.Now}, nil
}

// LoadAppAuth reads the private key from a file.
func LoadAppAuth(appID, keyFile string) (*AppAuth, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, errors.InvalidInput("app_private_key_file", fmt.Sprintf("cannot read %s", keyFile)).WithCause(err)
	}
	return NewAppAuth(appID, data)
}

// Token returns a freshly signed app token.
func (a *AppAuth) Token() (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-appClockSkew)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appTokenLifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("github: sign app token: %w", err)
	}
	return signed, nil
}

// authConfig returns request auth that sends a new app token per request.
func (a *AppAuth) authConfig() *httpclient.AuthConfig {
	return httpclient.CustomAuth(func(req *http.Request) error {
		token, err := a.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	})
}
