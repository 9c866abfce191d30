// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound account requests before they reach the
// credential store.
//
// A [Validator] accepts any supported request model and an optional list of
// field names. When fields are given only those are checked, which lets the
// same model be validated differently by registration and by updates.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
