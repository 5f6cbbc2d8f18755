package service

import "errors"

var (
	// ErrNotMember is returned when the caller is not a member of the group
	// they are acting on.
	ErrNotMember = errors.New("not a member of this group")

	// ErrNotAdmin is returned when a group mutation requires the admin role.
	ErrNotAdmin = errors.New("only a group admin can do this")

	// ErrNotCreator is returned when a transaction mutation is attempted by
	// someone other than its creator.
	ErrNotCreator = errors.New("only the creator can modify this transaction")

	// ErrAlreadyMember is returned when an invite targets someone who is
	// already in the group.
	ErrAlreadyMember = errors.New("already a member of this group")

	// ErrInvalidInput is returned for requests that fail domain validation.
	// Callers wrap it with a specific reason.
	ErrInvalidInput = errors.New("invalid input")
)
