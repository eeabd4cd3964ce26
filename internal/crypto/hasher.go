// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// ErrPasswordTooLong is returned by Hash for secrets bcrypt cannot represent.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// bcryptHasher implements [PasswordHasher] with bcrypt. Hashing runs on
// separate goroutines, at most `workers` at a time, so request handlers only
// block on the result channel and give up as soon as their context ends.
type bcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher returns a [PasswordHasher] using the given bcrypt cost.
// cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// bcrypt.DefaultCost; workers <= 0 means runtime.NumCPU().
func NewBcryptHasher(cost, workers int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &bcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(workers)),
	}
}

func (h *bcryptHasher) Hash(ctx context.Context, secret string) (string, error) {
	type result struct {
		hash []byte
		err  error
	}

	res, err := offload(ctx, h.sem, func() result {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
		return result{hash: hash, err: err}
	})
	if err != nil {
		return "", err
	}
	if res.err != nil {
		return "", fmt.Errorf("error hashing password: %w", res.err)
	}

	return string(res.hash), nil
}

func (h *bcryptHasher) Verify(ctx context.Context, secret, credential string) (bool, error) {
	// bcrypt rejects anything shorter than a full hash before doing any work,
	// no need to occupy a worker for it.
	if _, err := bcrypt.Cost([]byte(credential)); err != nil {
		return false, nil
	}

	return offload(ctx, h.sem, func() bool {
		err := bcrypt.CompareHashAndPassword([]byte(credential), []byte(secret))
		return err == nil
	})
}

// offload runs fn on its own goroutine once a semaphore slot is free and
// waits for the result or for ctx to end. The slot is released by the worker
// goroutine, so an abandoned computation still counts against the limit
// until it finishes.
func offload[T any](ctx context.Context, sem *semaphore.Weighted, fn func() T) (T, error) {
	var zero T

	if err := sem.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("waiting for hash worker: %w", err)
	}

	done := make(chan T, 1)
	go func() {
		defer sem.Release(1)
		done <- fn()
	}()

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return zero, errors.Join(errors.New("hash computation abandoned"), ctx.Err())
	}
}
