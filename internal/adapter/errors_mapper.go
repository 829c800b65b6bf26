package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-resty/resty/v2"
)

// errorBody is the superset of error shapes the server and proxies in
// front of it return.
type errorBody struct {
	models.ErrorResponse
	Message string `json:"message"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	status := resp.StatusCode()
	apiErr := &APIError{Status: status, kind: sentinelFor(status)}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Fields = body.Fields
		apiErr.RetryAfter = body.RetryAfter
		apiErr.Message = strings.TrimSpace(body.Error)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body.Message)
		}
	}

	if apiErr.RetryAfter == 0 {
		apiErr.RetryAfter, _ = strconv.Atoi(resp.Header().Get("Retry-After"))
	}
	if apiErr.Message == "" {
		apiErr.Message = fallbackMessage(status)
	}

	return apiErr
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	}
	if status >= http.StatusInternalServerError {
		return ErrInternalServerError
	}
	return ErrUnexpectedStatus
}

func fallbackMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case http.StatusForbidden:
		return "You do not have permission to do that."
	case http.StatusNotFound:
		return "The requested record no longer exists."
	case http.StatusTooManyRequests:
		return "Too many attempts. Please wait and try again."
	}
	if status >= http.StatusInternalServerError {
		return "The server failed to process the request. Please try again later."
	}
	return fmt.Sprintf("Request failed with status %d.", status)
}
