// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
)

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler. It
// answers 405 with an Allow header listing the methods the path does
// support, in the same JSON error shape as every other failure.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := make([]string, 0, len(routeMethods))
		for _, method := range routeMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		writeErrorResponse(w, http.StatusMethodNotAllowed, models.ErrorResponse{
			Error: fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path),
			Code:  models.CodeNotFound,
		})
	}
}

// notFoundHandler answers unknown routes with a JSON body.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusNotFound, models.ErrorResponse{
		Error: fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		Code:  models.CodeNotFound,
	})
}
