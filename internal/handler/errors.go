// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned when the configuration enables neither
// the REST API nor the gRPC health endpoint.
var errNoHandlersAreCreated = errors.New("no transport enabled: set an HTTP or gRPC address")
