package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type ComponentHealth struct {
	Status  string `json:"status" enum:"ok,degraded,down" doc:"Component status"`
	Latency string `json:"latency,omitempty" doc:"Check duration"`
	Message string `json:"message,omitempty" doc:"Detail when not ok"`
}

type HealthResponse struct {
	Status     string                     `json:"status" enum:"ok,degraded,down" doc:"Overall status"`
	Components map[string]ComponentHealth `json:"components"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		components := map[string]ComponentHealth{
			"events": s.checkEvents(),
		}

		status := "ok"
		for _, c := range components {
			if c.Status != "ok" {
				status = "degraded"
				break
			}
		}

		return &HealthOutput{Body: HealthResponse{
			Status:     status,
			Components: components,
		}}, nil
	})
}

func (s *Server) checkEvents() ComponentHealth {
	start := time.Now()
	count := s.sseManager.ClientCount()
	return ComponentHealth{
		Status:  "ok",
		Latency: time.Since(start).String(),
		Message: fmt.Sprintf("%d connected clients", count),
	}
}
