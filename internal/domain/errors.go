package domain

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	// ErrSlotTaken signals that the commit-time re-check found a collision
	// created after the advisory conflict check. Retryable by the caller.
	ErrSlotTaken = errors.New("time slot was taken by a concurrent booking")
)
