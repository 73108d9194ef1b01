package controllers

import (
	"encoding/json"
	"errors"

	"github.com/lizhe2004/xunjie-tts-open-api/domain"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/gin_interface/dto"
)

// mappedError is the transport-agnostic view of a pipeline failure; both the
// OpenAI endpoint and the demo endpoints render it into their own envelopes.
type mappedError struct {
	Status  int
	Message string
	Type    string
	Param   interface{}
	Code    interface{}
	Details interface{}
}

// mapPipelineError classifies a synthesis failure: vendor rejections keep the
// vendor's own payload for diagnosability, vendor silence maps to 504, and
// everything else is an internal error.
func mapPipelineError(err error) mappedError {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		var param interface{}
		if validationErr.Param != "" {
			param = validationErr.Param
		}

		var code interface{}
		if validationErr.Code != "" {
			code = validationErr.Code
		}

		return mappedError{
			Status:  400,
			Message: validationErr.Message,
			Type:    "invalid_request_error",
			Param:   param,
			Code:    code,
		}
	}

	var unreachableErr *domain.VendorUnreachableError
	if errors.As(err, &unreachableErr) {
		return mappedError{
			Status:  504,
			Message: "No response from TTS service",
			Type:    "timeout_error",
			Code:    "service_unavailable",
		}
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Status != 0 {
		message := upstreamErr.Message
		if message == "" {
			message = "Error processing TTS request"
		}

		return mappedError{
			Status:  upstreamErr.Status,
			Message: message,
			Type:    "api_error",
			Code:    upstreamErr.Status,
			Details: rawDetails(upstreamErr.Body),
		}
	}

	return mappedError{
		Status:  500,
		Message: err.Error(),
		Type:    "server_error",
	}
}

// rawDetails keeps the vendor's body as JSON when it parses, raw text when it
// does not.
func rawDetails(body string) interface{} {
	if body == "" {
		return nil
	}

	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}

	return body
}

func (m mappedError) ToErrorResponse() dto.ErrorResponse {
	res := dto.NewErrorResponse(m.Message, m.Type, m.Param, m.Code)
	res.Error.Details = m.Details

	return res
}

func (m mappedError) ToDemoEnvelope() dto.DemoEnvelope {
	return dto.DemoEnvelope{
		Code:    m.Status,
		Message: m.Message,
		Data:    nil,
		Details: m.Details,
	}
}
