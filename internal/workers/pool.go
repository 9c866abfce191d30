// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs CPU heavy jobs on a bounded number of slots.
package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many CPU heavy jobs (bcrypt hashing) run at once.
// Callers beyond the limit wait for a free slot or for ctx to end.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool with size slots. A non-positive size means one.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return p.size
}

// Do runs fn once a slot is free. It returns ctx.Err() if ctx ends first,
// otherwise whatever fn returns.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("error waiting for a worker slot: %w", err)
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("error waiting for a worker slot: %w", err)
	}
	defer p.sem.Release(1)

	return fn()
}
