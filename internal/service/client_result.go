package service

import (
	"context"
	"errors"

	"github.com/Comraich/sortr-sub001/internal/adapter"
	"github.com/Comraich/sortr-sub001/models"
)

const msgSessionExpired = "Your session has expired. Please sign in again."

// failure converts an adapter error into the failed form of a Result. The
// caller decides what a 401 means.
func failure[T any](err error) models.Result[T] {
	res := models.Result[T]{Message: adapter.Message(err)}

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) {
		res.Status = apiErr.Status
		res.Fields = apiErr.Fields
	}
	return res
}

// sessionOutcome wraps an authenticated call: a 401 expires session.
func sessionOutcome[T any](ctx context.Context, session ClientSession, data T, err error) models.Result[T] {
	if err == nil {
		return models.Ok(data)
	}

	res := failure[T](err)
	if errors.Is(err, adapter.ErrUnauthorized) {
		session.Expire(ctx)
		res.SessionExpired = true
		res.Message = msgSessionExpired
	}
	return res
}
