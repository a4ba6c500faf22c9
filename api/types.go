package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler pageHandler
	blogHandler blogHandler
	seoHandler  seoHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"post not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"slug"`
	Details string `json:"details,omitempty" example:"no post \"rice\" in locale \"en\""`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
}
