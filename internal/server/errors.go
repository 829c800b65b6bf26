// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means neither SERVER_ADDRESS nor SERVER_GRPC_ADDRESS
// produced a listener.
var errNoServersAreCreated = errors.New("no listen address configured: nothing to serve")
