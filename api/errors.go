package api

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the envelope the API returns with a failing status.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param,omitempty"`
	// Code is normalised to a string; the API sends both strings and numbers.
	Code string `json:"-"`
}

func (e *ErrorDetails) UnmarshalJSON(b []byte) error {
	var aux struct {
		Message string          `json:"message"`
		Type    string          `json:"type"`
		Param   *string         `json:"param"`
		Code    json.RawMessage `json:"code"`
	}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	e.Message = aux.Message
	e.Type = aux.Type
	e.Param = aux.Param
	e.Code = ""

	if len(aux.Code) == 0 || string(aux.Code) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(aux.Code, &s); err == nil {
		e.Code = s
		return nil
	}

	var n int64
	if err := json.Unmarshal(aux.Code, &n); err == nil {
		e.Code = fmt.Sprintf("%d", n)
		return nil
	}

	e.Code = string(aux.Code)
	return nil
}

// ParseErrorResponse reports whether body is a vendor error envelope with a
// message.
func ParseErrorResponse(body []byte) (ErrorResponse, bool) {
	var envelope struct {
		Error *ErrorDetails `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ErrorResponse{}, false
	}
	if envelope.Error == nil || envelope.Error.Message == "" {
		return ErrorResponse{}, false
	}
	return ErrorResponse{Error: *envelope.Error}, true
}
