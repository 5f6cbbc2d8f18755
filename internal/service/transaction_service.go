package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitkaro/backend/internal/ledger"
	"github.com/splitkaro/backend/internal/metrics"
	"github.com/splitkaro/backend/internal/models"
	"github.com/splitkaro/backend/internal/storage"
)

// TransactionInput carries the caller-editable fields of a transaction.
type TransactionInput struct {
	Type        models.TransactionType
	Amount      float64
	Description string
	Category    string
	Shares      map[string]float64
	FromUserID  string
	ToUserID    string
}

// TransactionService records and maintains group transactions.
type TransactionService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store storage.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{store: store, logger: logger}
}

// Create records a new transaction in the group. The caller must be a
// member; expense shares and settlement endpoints must reference members.
func (s *TransactionService) Create(ctx context.Context, userID, groupID string, input TransactionInput) (*models.Transaction, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, ErrNotMember
	}

	txn := &models.Transaction{
		GroupID:     groupID,
		Type:        input.Type,
		CreatedBy:   userID,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Shares:      input.Shares,
		FromUserID:  input.FromUserID,
		ToUserID:    input.ToUserID,
	}
	if err := s.validate(txn, group); err != nil {
		return nil, err
	}

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	metrics.RecordTransaction(string(txn.Type))
	s.logger.InfoContext(ctx, "transaction recorded",
		"transaction_id", txn.ID,
		"group_id", groupID,
		"type", txn.Type,
		"amount", txn.Amount,
	)
	return txn, nil
}

func (s *TransactionService) validate(txn *models.Transaction, group *models.Group) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	switch txn.Type {
	case models.TypeExpense:
		if txn.Category == "" {
			txn.Category = "General"
		}
		txn.FromUserID = ""
		txn.ToUserID = ""
		for memberID := range txn.Shares {
			if !group.IsMember(memberID) {
				return fmt.Errorf("%w: share for non-member %q", ErrInvalidInput, memberID)
			}
		}
		if err := ledger.ValidateShares(txn); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

	case models.TypeSettlement:
		if txn.FromUserID == "" {
			txn.FromUserID = txn.CreatedBy
		}
		if txn.ToUserID == "" {
			return fmt.Errorf("%w: settlement requires a recipient", ErrInvalidInput)
		}
		if txn.FromUserID == txn.ToUserID {
			return fmt.Errorf("%w: settlement endpoints must differ", ErrInvalidInput)
		}
		if !group.IsMember(txn.FromUserID) || !group.IsMember(txn.ToUserID) {
			return fmt.Errorf("%w: settlement endpoints must be group members", ErrInvalidInput)
		}
		txn.Shares = nil
		txn.Category = ""

	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, txn.Type)
	}

	return nil
}

// Update modifies a transaction's editable fields. Creator only.
func (s *TransactionService) Update(ctx context.Context, userID, txnID string, input TransactionInput) (*models.Transaction, error) {
	txn, err := s.store.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if txn.CreatedBy != userID {
		return nil, ErrNotCreator
	}

	group, err := s.store.GetGroup(ctx, txn.GroupID)
	if err != nil {
		return nil, err
	}

	txn.Amount = input.Amount
	txn.Description = input.Description
	txn.Category = input.Category
	txn.Shares = input.Shares
	if err := s.validate(txn, group); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// Delete removes a transaction. Creator only.
func (s *TransactionService) Delete(ctx context.Context, userID, txnID string) error {
	txn, err := s.store.GetTransaction(ctx, txnID)
	if err != nil {
		return err
	}
	if txn.CreatedBy != userID {
		return ErrNotCreator
	}

	if err := s.store.DeleteTransaction(ctx, txnID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "transaction deleted", "transaction_id", txnID, "deleted_by", userID)
	return nil
}

// List returns a group's transactions, newest first. Members only.
func (s *TransactionService) List(ctx context.Context, userID, groupID string) ([]*models.Transaction, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, ErrNotMember
	}
	return s.store.ListGroupTransactions(ctx, groupID)
}
