// Package models holds the request and response bodies of the HTTP API.
package models

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
	Backend string `json:"backend" example:"ok" enum:"ok,unreachable" doc:"LED backend reachability"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2024-12-15 14:30" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"a1b2c3d4" doc:"Unique build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}

// IntentRequestData is the body accepted by the intent endpoints.
// Unknown parameter keys are ignored.
type IntentRequestData struct {
	_          struct{}       `json:"-" additionalProperties:"true"`
	Intent     string         `json:"intent,omitempty" example:"setmood" doc:"Intent name (case-insensitive): turnonled, turnoffled, setpattern, powerdown, getstatus, setmood"`
	Parameters map[string]any `json:"parameters,omitempty" doc:"Intent parameters: color, mood or pattern"`
}

type IntentRequest struct {
	Body IntentRequestData
}

// IntentResultData carries the backend response verbatim in Result.
type IntentResultData struct {
	Result  any    `json:"result" doc:"Backend JSON response, relayed unchanged"`
	Intent  string `json:"intent" example:"setmood" doc:"Normalized intent name"`
	Action  string `json:"action" enum:"apply,status" example:"apply" doc:"What the backend was asked to do"`
	Pattern string `json:"pattern,omitempty" example:"0001" doc:"Pattern sent to the backend (apply only)"`
}

type IntentResultResponse struct {
	Body IntentResultData
}

// ResolutionData is a resolved intent that has not been sent anywhere.
type ResolutionData struct {
	Intent  string `json:"intent" example:"turnonled" doc:"Normalized intent name"`
	Action  string `json:"action" enum:"apply,status" example:"apply" doc:"Resolved action"`
	Pattern string `json:"pattern,omitempty" example:"1000" doc:"Resolved pattern (apply only)"`
}

type ResolutionResponse struct {
	Body ResolutionData
}

// CapabilitiesData lists everything the resolver understands.
type CapabilitiesData struct {
	Intents []string          `json:"intents" doc:"Supported intent names"`
	Colors  map[string]string `json:"colors" doc:"Color name to pattern"`
	Moods   map[string]string `json:"moods" doc:"Mood name to pattern"`
}

type CapabilitiesResponse struct {
	Body CapabilitiesData
}

// LEDStatusResponse relays the backend status document.
type LEDStatusResponse struct {
	Body any
}
