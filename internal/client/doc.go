// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the terminal client runtime.
//
// It restores or establishes a session, hands control to the terminal UI and
// returns to the sign-in screens after a logout or an expired session. The
// read cache janitor runs for the whole process lifetime.
package client
