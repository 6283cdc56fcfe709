package http

// APIResponse represents standard API response.
type APIResponse struct {
	Status  int         `json:"status" example:"201"`
	Message string      `json:"message" example:"Created"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"decision"`
	Message string                 `json:"message,omitempty" example:"decision is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
