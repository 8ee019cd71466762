package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCounterMissing = errors.New("sequence_counter_missing")
	ErrUnknownKind    = errors.New("unknown_sequence_kind")
)

type Service interface {
	// NextInTx allocates the next number for (kind, scope) inside the
	// caller's transaction. The counter row seeds from the highest sequence
	// found in legacy numbered records on first use.
	NextInTx(ctx context.Context, tx *gorm.DB, kind, scope, template string) (string, error)

	// Peek previews the next number from a scan of existing records without
	// touching the counter. Concurrent allocations can invalidate the
	// preview; only NextInTx is race-free.
	Peek(ctx context.Context, kind, scope, template string) (string, error)
}

type Repository interface {
	// Increment bumps the counter and returns the new value, or
	// ErrCounterMissing when no row exists for (kind, scope).
	Increment(ctx context.Context, tx *gorm.DB, kind, scope string) (int64, error)

	// Seed creates the counter row at the given value, ignoring a
	// concurrent create of the same row.
	Seed(ctx context.Context, tx *gorm.DB, kind, scope string, value int64) error

	// MaxExisting scans the numbered records of the scope for the highest
	// allocated sequence.
	MaxExisting(ctx context.Context, db *gorm.DB, kind, scope string) (int64, error)
}
