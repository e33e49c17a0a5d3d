package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	"github.com/minatbaca/minatbaca-server/internal/service"
)

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID        string `json:"id" doc:"User ID"`
	Username  string `json:"username" doc:"Username"`
	CreatedAt string `json:"created_at" doc:"Account creation time"`
}

// AuthResponse carries the access token issued after register or login.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token" doc:"PASETO access token"`
	ExpiresIn   int64        `json:"expires_in" doc:"Token lifetime in seconds"`
}

type RegisterInput struct {
	Body struct {
		Username string `json:"username" doc:"Username, 3-64 alphanumeric characters"`
		Password string `json:"password" doc:"Password, at least 8 characters"`
	}
}

type AuthOutput struct {
	Body AuthResponse
}

type LoginInput struct {
	Body struct {
		Username string `json:"username" doc:"Username"`
		Password string `json:"password" doc:"Password"`
	}
}

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register a new account",
		Description: "Creates a user account with an empty reading profile and returns an access token.",
		Tags:        []string{"Authentication"},
		Middlewares: huma.Middlewares{s.rateLimitOperation},
	}, func(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
		result, err := s.services.Auth.Register(ctx, service.RegisterRequest{
			Username: input.Body.Username,
			Password: input.Body.Password,
		})
		if err != nil {
			return nil, err
		}
		return &AuthOutput{Body: toAuthResponse(result)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and returns an access token.",
		Tags:        []string{"Authentication"},
		Middlewares: huma.Middlewares{s.rateLimitOperation},
	}, func(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
		result, err := s.services.Auth.Login(ctx, service.LoginRequest{
			Username: input.Body.Username,
			Password: input.Body.Password,
		})
		if err != nil {
			return nil, err
		}
		return &AuthOutput{Body: toAuthResponse(result)}, nil
	})
}

func toAuthResponse(result *service.AuthResponse) AuthResponse {
	return AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	}
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
