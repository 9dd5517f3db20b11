package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/ledintent/internal/api/models"
)

// registerLEDRoutes registers LED backend endpoints.
func (s *Server) registerLEDRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-led-status",
		Method:      http.MethodGet,
		Path:        "/api/leds/status",
		Summary:     "Get LED Status",
		Description: "Query the LED backend for its current state. The backend response is relayed unchanged.",
		Tags:        []string{"leds"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, func(ctx context.Context, _ *struct{}) (*models.LEDStatusResponse, error) {
		resp, err := s.service.Status(ctx)
		if err != nil {
			return nil, intentError(err)
		}
		return &models.LEDStatusResponse{Body: resp}, nil
	})
}
