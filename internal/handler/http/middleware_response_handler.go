// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
)

// responseWriter decorates [http.ResponseWriter] to record the status code
// and body size. With capture set it also keeps a copy of the body, which
// the activity observer reads after the handler returns. Writes always go
// through to the client.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int

	capture bool
	body    bytes.Buffer
}

// WriteHeader forwards the first call only.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	if w.capture {
		w.body.Write(b[:n])
	}
	return n, err
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) success() bool {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	return status >= 200 && status < 300
}
