package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitkaro/backend/internal/models"
	"github.com/splitkaro/backend/internal/storage"
)

// CreateTransaction persists a new transaction and its share mapping.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}
	if txn.UpdatedAt == 0 {
		txn.UpdatedAt = txn.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, group_id, type, created_by, amount, description, category, from_user_id, to_user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.GroupID, txn.Type, txn.CreatedBy, txn.Amount, txn.Description, txn.Category,
		nullable(txn.FromUserID), nullable(txn.ToUserID), txn.CreatedAt, txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := replaceShares(ctx, tx, txn.ID, txn.Shares); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func replaceShares(ctx context.Context, tx *sql.Tx, txnID string, shares map[string]float64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_shares WHERE transaction_id = ?", txnID); err != nil {
		return fmt.Errorf("failed to clear shares: %w", err)
	}
	for memberID, amount := range shares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO transaction_shares (transaction_id, member_id, amount) VALUES (?, ?, ?)",
			txnID, memberID, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

// GetTransaction retrieves a transaction by ID, including its shares.
func (s *SQLiteStore) GetTransaction(ctx context.Context, txnID string) (*models.Transaction, error) {
	txn := &models.Transaction{}
	var fromUser, toUser sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, type, created_by, amount, description, category, from_user_id, to_user_id, created_at, updated_at
		 FROM transactions WHERE id = ?`,
		txnID,
	).Scan(&txn.ID, &txn.GroupID, &txn.Type, &txn.CreatedBy, &txn.Amount, &txn.Description, &txn.Category,
		&fromUser, &toUser, &txn.CreatedAt, &txn.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	txn.FromUserID = fromUser.String
	txn.ToUserID = toUser.String

	shares, err := s.transactionShares(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	txn.Shares = shares

	return txn, nil
}

func (s *SQLiteStore) transactionShares(ctx context.Context, txnID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, amount FROM transaction_shares WHERE transaction_id = ?",
		txnID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares map[string]float64
	for rows.Next() {
		var memberID string
		var amount float64
		if err := rows.Scan(&memberID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		if shares == nil {
			shares = make(map[string]float64)
		}
		shares[memberID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	txn.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE transactions SET amount = ?, description = ?, category = ?, updated_at = ? WHERE id = ?",
		txn.Amount, txn.Description, txn.Category, txn.UpdatedAt, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if err := replaceShares(ctx, tx, txn.ID, txn.Shares); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteTransaction removes a transaction; shares cascade.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, txnID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", txnID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListGroupTransactions retrieves all of a group's transactions, newest
// first.
func (s *SQLiteStore) ListGroupTransactions(ctx context.Context, groupID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, type, created_by, amount, description, category, from_user_id, to_user_id, created_at, updated_at
		 FROM transactions WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn := &models.Transaction{}
		var fromUser, toUser sql.NullString

		if err := rows.Scan(&txn.ID, &txn.GroupID, &txn.Type, &txn.CreatedBy, &txn.Amount, &txn.Description,
			&txn.Category, &fromUser, &toUser, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.FromUserID = fromUser.String
		txn.ToUserID = toUser.String

		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	for _, txn := range txns {
		shares, err := s.transactionShares(ctx, txn.ID)
		if err != nil {
			return nil, err
		}
		txn.Shares = shares
	}

	return txns, nil
}
