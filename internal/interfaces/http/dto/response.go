package dto

// ErrorResponse is the error body returned by every endpoint. UserMessage is
// the stable, client-facing message; DeveloperMessage carries extra detail
// when one exists.
type ErrorResponse struct {
	Status           int    `json:"status"`
	ErrorCode        string `json:"errorCode,omitempty"`
	UserMessage      string `json:"userMessage,omitempty"`
	DeveloperMessage string `json:"developerMessage,omitempty"`
}

// NewErrorResponse creates an error response for a domain error code
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Status:      GetHTTPStatus(code),
		ErrorCode:   code,
		UserMessage: message,
	}
}
