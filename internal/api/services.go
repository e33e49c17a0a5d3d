package api

import (
	"github.com/minatbaca/minatbaca-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Auth    *service.AuthService
	Profile *service.ProfileService
}
