// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorCode is the machine-readable error class returned in every error
// body.
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "ValidationFailed"
	CodeUnauthenticated  ErrorCode = "Unauthenticated"
	CodeInvalidToken     ErrorCode = "InvalidToken"
	CodeForbidden        ErrorCode = "Forbidden"
	CodeNotFound         ErrorCode = "NotFound"
	CodeConflict         ErrorCode = "Conflict"
	CodeTooManyRequests  ErrorCode = "TooManyRequests"
	CodeInternal         ErrorCode = "Internal"
)

// FieldError describes one violated field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error      string       `json:"error"`
	Code       ErrorCode    `json:"code"`
	Fields     []FieldError `json:"fields,omitempty"`
	RetryAfter int          `json:"retryAfter,omitempty"`
}
