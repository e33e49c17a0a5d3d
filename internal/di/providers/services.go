package providers

import (
	"github.com/samber/do/v2"

	"github.com/minatbaca/minatbaca-server/internal/auth"
	"github.com/minatbaca/minatbaca-server/internal/logger"
	"github.com/minatbaca/minatbaca-server/internal/service"
	"github.com/minatbaca/minatbaca-server/internal/validation"
)

// ProvideProfileService provides the reading profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	publisher := service.NewSSEPublisher(sseHandle.Manager)
	return service.NewProfileService(storeHandle.Profiles, publisher, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	profileService := do.MustInvoke[*service.ProfileService](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Users, profileService, tokenService, validator, log.Logger), nil
}
