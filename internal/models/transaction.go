package models

// TransactionType discriminates expenses from settlements.
type TransactionType string

const (
	// TypeExpense is money spent by one member on behalf of the group.
	TypeExpense TransactionType = "expense"

	// TypeSettlement is a repayment between two members. Settlements
	// never count toward the group's total expense figure.
	TypeSettlement TransactionType = "settlement"
)

// Transaction represents a single expense or settlement recorded in a group.
// A transaction belongs to exactly one group and is created by exactly one
// user; only the creator may update or delete it.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// GroupID is the group this transaction belongs to.
	GroupID string `json:"groupId"`

	// Type is expense or settlement.
	Type TransactionType `json:"type"`

	// CreatedBy is the member ID of the creator. For expenses this is
	// the payer.
	CreatedBy string `json:"createdBy"`

	// Amount is the transaction amount. Non-negative, currency-agnostic.
	Amount float64 `json:"amount"`

	// Description is a short human-readable note (e.g., "Groceries").
	Description string `json:"description"`

	// Category is a free-form label (e.g., "General", "Food").
	Category string `json:"category"`

	// Shares optionally maps member ID to that member's share of an
	// unevenly split expense. When present, the shares must sum to
	// Amount within rounding tolerance.
	Shares map[string]float64 `json:"shares,omitempty"`

	// FromUserID and ToUserID record who repaid whom. Settlements only.
	FromUserID string `json:"fromUserId,omitempty"`
	ToUserID   string `json:"toUserId,omitempty"`

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64 `json:"updatedAt"`
}

// IsExpense reports whether the transaction is an expense record.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}
