package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/minatbaca/minatbaca-server/internal/auth"
	"github.com/minatbaca/minatbaca-server/internal/config"
	"github.com/minatbaca/minatbaca-server/internal/logger"
	"github.com/minatbaca/minatbaca-server/internal/validation"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads or generates the token encryption key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex, err := auth.LoadOrGenerateKey(cfg.Auth.KeyPath)
	if err != nil {
		return "", err
	}

	// Keep config in sync for anything reading the key from there.
	cfg.Auth.AccessTokenKey, err = hex.DecodeString(keyHex)
	if err != nil {
		return "", err
	}

	log.Info("Authentication key loaded",
		"key_path", cfg.Auth.KeyPath,
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration)
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
