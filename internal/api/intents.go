package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/ledintent/internal/api/models"
	"github.com/smazurov/ledintent/internal/intent"
	"github.com/smazurov/ledintent/internal/pattern"
)

// registerIntentRoutes registers intent handling and capability endpoints.
func (s *Server) registerIntentRoutes() {
	handle := func(ctx context.Context, input *models.IntentRequest) (*models.IntentResultResponse, error) {
		result, err := s.service.Handle(ctx, input.Body.Intent, input.Body.Parameters)
		if err != nil {
			return nil, intentError(err)
		}
		return &models.IntentResultResponse{
			Body: models.IntentResultData{
				Result:  result.Response,
				Intent:  string(result.Intent),
				Action:  string(result.Kind),
				Pattern: result.Pattern.String(),
			},
		}, nil
	}

	// Unprefixed path used by existing clients.
	huma.Register(s.api, huma.Operation{
		OperationID: "handle-intent-legacy",
		Method:      http.MethodPost,
		Path:        "/intent",
		Summary:     "Handle Intent",
		Description: "Resolve an intent and forward it to the LED backend. Same as POST /api/intents.",
		Tags:        []string{"intents"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, handle)

	huma.Register(s.api, huma.Operation{
		OperationID: "handle-intent",
		Method:      http.MethodPost,
		Path:        "/api/intents",
		Summary:     "Handle Intent",
		Description: "Resolve an intent into a 4-LED pattern (or a status query) and forward it to the LED backend. The backend response is relayed in `result`.",
		Tags:        []string{"intents"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, handle)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolve-intent",
		Method:      http.MethodPost,
		Path:        "/api/intents/resolve",
		Summary:     "Resolve Intent",
		Description: "Resolve an intent without contacting the LED backend",
		Tags:        []string{"intents"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.IntentRequest) (*models.ResolutionResponse, error) {
		action, err := intent.Resolve(input.Body.Intent, input.Body.Parameters)
		if err != nil {
			return nil, intentError(err)
		}
		return &models.ResolutionResponse{
			Body: models.ResolutionData{
				Intent:  string(action.Intent),
				Action:  string(action.Kind),
				Pattern: action.Pattern.String(),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-intents",
		Method:      http.MethodGet,
		Path:        "/api/intents",
		Summary:     "List Intents",
		Description: "List supported intents with the color and mood tables",
		Tags:        []string{"intents"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.CapabilitiesResponse, error) {
		names := intent.Names()
		intents := make([]string, len(names))
		for i, n := range names {
			intents[i] = string(n)
		}
		return &models.CapabilitiesResponse{
			Body: models.CapabilitiesData{
				Intents: intents,
				Colors:  tableStrings(intent.Colors()),
				Moods:   tableStrings(intent.Moods()),
			},
		}, nil
	})
}

// intentError maps every intent failure to 400 with the reason as detail.
func intentError(err error) error {
	var ie *intent.Error
	if errors.As(err, &ie) {
		return huma.Error400BadRequest(ie.Message, err)
	}
	return huma.Error400BadRequest(err.Error())
}

func tableStrings(table map[string]pattern.Pattern) map[string]string {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v.String()
	}
	return out
}
