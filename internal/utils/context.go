// Package utils provides general-purpose helpers shared by the server
// packages: typed context keys, bearer token minting and parsing, password
// and reset token hashing, JSON response writing and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so string keys set by other
// packages can never collide with ours.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key the auth middleware stores the authenticated
// account id under.
//
//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, int64(42))
var AccountIDCtxKey = contextKey("accountID")

// GetAccountIDFromContext returns the authenticated account id. ok is false
// when the value is missing or has an unexpected type.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}
