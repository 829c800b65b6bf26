// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request bodies and import rows against their
// `validate` struct tags. A failed check yields a [ValidationError] listing
// every rejected field by its JSON name, which the HTTP layer renders as a
// 400 ValidationFailed body.
package validators

import "context"

// Validator validates a struct. When fields are given only those are
// checked, which PATCH handlers use for partial bodies.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
