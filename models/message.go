package models

// Envelopes shared by every JSON response of the API.

type MessageResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

type ValidationResponse struct {
	StatusCode int               `json:"status_code"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors"`
}

type DataResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func NewMessageResponse(statusCode int, message string) MessageResponse {
	return MessageResponse{StatusCode: statusCode, Message: message}
}

func NewValidationResponse(statusCode int, errors map[string]string) ValidationResponse {
	return ValidationResponse{
		StatusCode: statusCode,
		Message:    "Validation failed",
		Errors:     errors,
	}
}

func NewDataResponse(statusCode int, message string, data any) DataResponse {
	return DataResponse{StatusCode: statusCode, Message: message, Data: data}
}
