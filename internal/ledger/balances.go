package ledger

import (
	"fmt"
	"math"
	"sort"

	"github.com/splitkaro/backend/internal/models"
)

// MemberBalance is the share-aware accounting figure for one member.
type MemberBalance struct {
	MemberID   string  `json:"memberId"`
	NetBalance float64 `json:"netBalance"` // positive = owed money, negative = owes money
	TotalPaid  float64 `json:"totalPaid"`
	TotalOwed  float64 `json:"totalOwed"`
}

// DebtEdge is a single suggested repayment from one member to another.
type DebtEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// ValidateShares checks that a transaction's per-participant share
// mapping, when present, sums to the transaction amount within rounding
// tolerance. Transactions without shares always pass.
func ValidateShares(tx *models.Transaction) error {
	if len(tx.Shares) == 0 {
		return nil
	}
	var sum float64
	for _, share := range tx.Shares {
		if share < 0 {
			return fmt.Errorf("share amounts must be non-negative")
		}
		sum += share
	}
	if math.Abs(sum-tx.Amount) > epsilon {
		return fmt.Errorf("shares sum to %.2f, want %.2f", sum, tx.Amount)
	}
	return nil
}

type balanceAccumulator struct {
	order    []string
	balances map[string]*MemberBalance
}

func (a *balanceAccumulator) get(memberID string) *MemberBalance {
	if bal, ok := a.balances[memberID]; ok {
		return bal
	}
	bal := &MemberBalance{MemberID: memberID}
	a.balances[memberID] = bal
	a.order = append(a.order, memberID)
	return bal
}

// sortedKeys gives map iteration a fixed order so the output is
// deterministic for identical inputs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ComputeNetBalances computes the true accounting balance per member:
// amount paid in minus the member's own owed share. This is the
// share-aware counterpart to ComputeMemberContributions' gross figure.
//
// For each expense the payer is credited with the full amount. The owed
// side comes from the transaction's share mapping when present; expenses
// without shares are split equally across the member directory. Each
// settlement moves credit from its payer to its receiver.
//
// Malformed records follow the same defaults as the gross computation: a
// broken amount contributes 0 and never aborts processing.
func ComputeNetBalances(members map[string]models.Membership, transactions []models.Transaction) []MemberBalance {
	acc := &balanceAccumulator{balances: make(map[string]*MemberBalance)}
	memberIDs := sortedKeys(members)

	for i := range transactions {
		tx := &transactions[i]
		amount := usableAmount(tx.Amount)

		if tx.Type == models.TypeSettlement {
			from := tx.FromUserID
			if from == "" {
				from = tx.CreatedBy
			}
			if from == "" || tx.ToUserID == "" {
				continue
			}
			acc.get(from).TotalPaid += amount
			acc.get(tx.ToUserID).TotalOwed += amount
			continue
		}

		if !tx.IsExpense() || tx.CreatedBy == "" {
			continue
		}
		acc.get(tx.CreatedBy).TotalPaid += amount

		if len(tx.Shares) > 0 {
			for _, memberID := range sortedKeys(tx.Shares) {
				acc.get(memberID).TotalOwed += usableAmount(tx.Shares[memberID])
			}
			continue
		}
		if len(memberIDs) == 0 {
			// No directory to split across; the payer keeps the debt.
			acc.get(tx.CreatedBy).TotalOwed += amount
			continue
		}
		perMember := amount / float64(len(memberIDs))
		for _, memberID := range memberIDs {
			acc.get(memberID).TotalOwed += perMember
		}
	}

	out := make([]MemberBalance, 0, len(acc.order))
	for _, memberID := range acc.order {
		bal := acc.balances[memberID]
		bal.NetBalance = bal.TotalPaid - bal.TotalOwed
		out = append(out, *bal)
	}
	return out
}

// SimplifyDebts turns net balances into a small set of suggested
// repayments by greedily matching debtors against creditors. Edges below
// the rounding tolerance are dropped.
func SimplifyDebts(balances []MemberBalance) []DebtEdge {
	var debtors, creditors []MemberBalance
	for _, bal := range balances {
		switch {
		case bal.NetBalance < -epsilon:
			debtors = append(debtors, bal)
		case bal.NetBalance > epsilon:
			creditors = append(creditors, bal)
		}
	}

	owed := make(map[string]float64, len(debtors))
	due := make(map[string]float64, len(creditors))
	for _, d := range debtors {
		owed[d.MemberID] = -d.NetBalance
	}
	for _, c := range creditors {
		due[c.MemberID] = c.NetBalance
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].MemberID
		creditor := creditors[j].MemberID

		amount := owed[debtor]
		if due[creditor] < amount {
			amount = due[creditor]
		}
		if amount > epsilon {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		owed[debtor] -= amount
		due[creditor] -= amount
		if owed[debtor] < epsilon {
			i++
		}
		if due[creditor] < epsilon {
			j++
		}
	}
	return edges
}
