// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitkaro/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the services depend on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Populates ID and timestamps when
	// they are unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns ErrNotFound when the
	// user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByPhone retrieves a user by phone number. Used to match
	// contact-book invites to existing accounts.
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)

	// UpdateUserProfile updates the mutable profile fields (display
	// name, phone number) of an existing user.
	UpdateUserProfile(ctx context.Context, user *models.User) error

	// CreateGroup persists a group together with its initial member map.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group including its full member map.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser retrieves every group the user is a member of,
	// newest first.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// UpdateGroup updates a group's name and description.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group, its memberships and its transactions.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers inserts memberships, ignoring members that are
	// already present.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Membership) error

	// CreateTransaction persists a new transaction and its share mapping.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// UpdateTransaction replaces the mutable fields (amount, description,
	// category, shares) of an existing transaction.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, txID string) error

	// ListGroupTransactions retrieves all transactions for a group,
	// ordered by recency (newest first).
	ListGroupTransactions(ctx context.Context, groupID string) ([]*models.Transaction, error)

	// Close releases any resources held by the store.
	Close() error
}
