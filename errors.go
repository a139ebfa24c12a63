package gocuckoo

import "errors"

var (
	// ErrCapacityExceedsItemLimit is returned when a filter is requested for
	// more than ItemLimit items.
	ErrCapacityExceedsItemLimit = errors.New("capacity exceeds item limit")

	// ErrOutOfSpace is returned by inserts once the eviction budget is
	// exhausted or the overflow slot is already taken. The filter stays
	// usable for lookups and deletes.
	ErrOutOfSpace = errors.New("filter out of space")

	// ErrItemDoesNotExist is returned when deleting an item that is in
	// neither candidate bucket nor the overflow slot.
	ErrItemDoesNotExist = errors.New("item does not exist")

	// ErrItemAlreadyExists is returned by uniqueness checked inserts.
	ErrItemAlreadyExists = errors.New("item already exists")
)
