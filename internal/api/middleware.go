package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// APIEnvelope wraps every response body in a common structure so clients
// can branch on success without inspecting status codes.
type APIEnvelope struct {
	Version string `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps outgoing bodies in an APIEnvelope. Error
// models produced by the error handler carry their code and details
// through to the envelope.
func EnvelopeTransformer(ctx huma.Context, status string, v any) (any, error) {
	if v == nil {
		return v, nil
	}
	if _, ok := v.(*APIEnvelope); ok {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		return &APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		}, nil
	}
	if humaErr, ok := v.(huma.StatusError); ok {
		return &APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   humaErr.Error(),
			Code:    statusToCode(humaErr.GetStatus()),
		}, nil
	}

	return &APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
