package dto

// ErrorObject mirrors the OpenAI error payload shape.
type ErrorObject struct {
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Param   interface{} `json:"param"`
	Code    interface{} `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorObject `json:"error"`
}

func NewErrorResponse(message, errType string, param, code interface{}) ErrorResponse {
	return ErrorResponse{
		Error: ErrorObject{
			Message: message,
			Type:    errType,
			Param:   param,
			Code:    code,
		},
	}
}

// DemoEnvelope is the {code, message, data} wrapper the demo endpoints use
// instead of the OpenAI error object.
type DemoEnvelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Details interface{} `json:"details,omitempty"`
}
