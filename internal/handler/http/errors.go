package http

import "errors"

var (
	ErrEmptyAuthorizationHeader = errors.New("authorization header is missing")

	ErrAdminRequired = errors.New("admin access required")

	ErrInvalidJSON = errors.New("request body is not valid JSON")
	ErrInvalidID   = errors.New("id must be a positive integer")
	ErrBadQuery    = errors.New("invalid query parameter")
	ErrBodyTooBig  = errors.New("request body is too large")
	ErrInvalidGzip = errors.New("request body is not valid gzip")

	ErrNotMultipart = errors.New("request body must be multipart/form-data")

	ErrTooManyRequests = errors.New("too many attempts, try again later")
)
