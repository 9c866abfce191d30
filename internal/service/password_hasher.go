// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/workers"
)

// PasswordHasher runs bcrypt on the bounded worker pool.
type PasswordHasher struct {
	pool *workers.Pool
	cost int

	// dummyHash is compared against when the account does not exist, so an
	// unknown email costs as much as a wrong password.
	dummyHash string
}

func NewPasswordHasher(pool *workers.Pool, cost int) (*PasswordHasher, error) {
	dummyHash, err := utils.HashPassword("go-accounts dummy password", cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy password hash: %w", err)
	}

	return &PasswordHasher{pool: pool, cost: cost, dummyHash: dummyHash}, nil
}

func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	var hash string
	err := h.pool.Do(ctx, func() error {
		var err error
		hash, err = utils.HashPassword(password, h.cost)
		return err
	})

	return hash, err
}

// Compare returns utils.ErrPasswordMismatch on a wrong password.
func (h *PasswordHasher) Compare(ctx context.Context, hash, password string) error {
	return h.pool.Do(ctx, func() error {
		return utils.ComparePassword(hash, password)
	})
}

// CompareDummy burns one comparison and always reports a mismatch.
func (h *PasswordHasher) CompareDummy(ctx context.Context, password string) error {
	if err := h.Compare(ctx, h.dummyHash, password); err != nil {
		return err
	}

	return utils.ErrPasswordMismatch
}
