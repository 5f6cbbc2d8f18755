package auth

import (
	"context"

	"github.com/splitkaro/backend/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler layer code.
type Authenticator interface {
	// Register creates a new user account. The credential format depends on
	// the implementation (e.g., password, OAuth token, etc.). phoneNumber is
	// optional and, when present, links the account to pending group
	// memberships created by phone invites.
	Register(ctx context.Context, email, displayName, phoneNumber, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements. For passwords: check length, complexity, etc.
	ValidateCredential(credential string) error
}
