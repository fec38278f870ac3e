package render

import (
	"encoding/json"
	"io"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(data)
}

func JSONSuccess(w io.Writer, data any) error {
	return WriteJSON(w, APIResponse{
		Success: true,
		Data:    data,
	})
}

func JSONError(w io.Writer, err error) error {
	return WriteJSON(w, APIResponse{
		Success: false,
		Error:   errorResponse(err),
	})
}

func errorResponse(err error) *ErrorResponse {

	if appErr, ok := errors.IsAppError(err); ok {
		resp := &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			resp.Details = []string{appErr.Detail}
		}

		return resp
	}

	return &ErrorResponse{
		Code:    errors.ErrCodeInternal,
		Message: "An unexpected error occurred",
		Details: []string{err.Error()},
	}
}
