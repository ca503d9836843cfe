// Package sentinel holds sentinel errors for infrastructure facts. Stores and
// gateway clients return these (optionally wrapped) so services can translate
// them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store or upstream system
// - ErrConflict: optimistic-concurrency or uniqueness conflict
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: upstream temporarily unavailable, retries exhausted
package sentinel

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
