package ledger

import (
	"math"
	"testing"

	"github.com/splitkaro/backend/internal/models"
)

func TestValidateShares(t *testing.T) {
	tests := []struct {
		name    string
		tx      models.Transaction
		wantErr bool
	}{
		{
			name: "no shares always valid",
			tx:   models.Transaction{Type: models.TypeExpense, Amount: 50},
		},
		{
			name: "shares sum to amount",
			tx: models.Transaction{
				Type:   models.TypeExpense,
				Amount: 90,
				Shares: map[string]float64{"A": 30, "B": 30, "C": 30},
			},
		},
		{
			name: "rounding tolerance accepted",
			tx: models.Transaction{
				Type:   models.TypeExpense,
				Amount: 10,
				Shares: map[string]float64{"A": 3.33, "B": 3.33, "C": 3.34},
			},
		},
		{
			name: "shares undershoot amount",
			tx: models.Transaction{
				Type:   models.TypeExpense,
				Amount: 90,
				Shares: map[string]float64{"A": 30, "B": 30},
			},
			wantErr: true,
		},
		{
			name: "negative share rejected",
			tx: models.Transaction{
				Type:   models.TypeExpense,
				Amount: 10,
				Shares: map[string]float64{"A": 20, "B": -10},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShares(&tt.tx)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShares() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func memberDirectory(ids ...string) map[string]models.Membership {
	members := make(map[string]models.Membership, len(ids))
	for _, id := range ids {
		members[id] = models.Membership{MemberID: id, Role: models.RoleMember}
	}
	return members
}

func findBalance(t *testing.T, balances []MemberBalance, memberID string) MemberBalance {
	t.Helper()
	for _, bal := range balances {
		if bal.MemberID == memberID {
			return bal
		}
	}
	t.Fatalf("no balance for member %s", memberID)
	return MemberBalance{}
}

func TestComputeNetBalancesEqualSplit(t *testing.T) {
	members := memberDirectory("A", "B", "C")
	transactions := []models.Transaction{
		expense("A", 90), // no shares: split 30/30/30
	}

	balances := ComputeNetBalances(members, transactions)

	a := findBalance(t, balances, "A")
	if math.Abs(a.TotalPaid-90) > 0.01 || math.Abs(a.TotalOwed-30) > 0.01 || math.Abs(a.NetBalance-60) > 0.01 {
		t.Errorf("A balance = %+v, want paid 90 owed 30 net 60", a)
	}
	b := findBalance(t, balances, "B")
	if math.Abs(b.NetBalance+30) > 0.01 {
		t.Errorf("B net = %v, want -30", b.NetBalance)
	}
}

func TestComputeNetBalancesWithShares(t *testing.T) {
	members := memberDirectory("A", "B", "C")
	tx := expense("A", 60)
	tx.Shares = map[string]float64{"A": 10, "B": 20, "C": 30}

	balances := ComputeNetBalances(members, []models.Transaction{tx})

	a := findBalance(t, balances, "A")
	if math.Abs(a.NetBalance-50) > 0.01 {
		t.Errorf("A net = %v, want 50 (paid 60, owes own share 10)", a.NetBalance)
	}
	c := findBalance(t, balances, "C")
	if math.Abs(c.NetBalance+30) > 0.01 {
		t.Errorf("C net = %v, want -30", c.NetBalance)
	}
}

func TestComputeNetBalancesSettlementShiftsCredit(t *testing.T) {
	members := memberDirectory("A", "B")
	transactions := []models.Transaction{
		expense("A", 40), // A +20, B -20
		settlement("B", "A", 20),
	}

	balances := ComputeNetBalances(members, transactions)

	a := findBalance(t, balances, "A")
	if math.Abs(a.NetBalance) > 0.01 {
		t.Errorf("A net = %v, want 0 after settlement", a.NetBalance)
	}
	b := findBalance(t, balances, "B")
	if math.Abs(b.NetBalance) > 0.01 {
		t.Errorf("B net = %v, want 0 after settlement", b.NetBalance)
	}
}

func TestComputeNetBalancesDeterministic(t *testing.T) {
	members := memberDirectory("A", "B", "C")
	tx := expense("A", 30)
	transactions := []models.Transaction{tx}

	first := ComputeNetBalances(members, transactions)
	second := ComputeNetBalances(members, transactions)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSimplifyDebts(t *testing.T) {
	balances := []MemberBalance{
		{MemberID: "A", NetBalance: 60},
		{MemberID: "B", NetBalance: -30},
		{MemberID: "C", NetBalance: -30},
	}

	edges := SimplifyDebts(balances)

	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d: %+v", len(edges), edges)
	}
	for _, edge := range edges {
		if edge.To != "A" {
			t.Errorf("edge %+v should point at the only creditor", edge)
		}
		if math.Abs(edge.Amount-30) > 0.01 {
			t.Errorf("edge amount = %v, want 30", edge.Amount)
		}
	}
}

func TestSimplifyDebtsAllSettled(t *testing.T) {
	balances := []MemberBalance{
		{MemberID: "A", NetBalance: 0},
		{MemberID: "B", NetBalance: 0.001},
	}
	if edges := SimplifyDebts(balances); len(edges) != 0 {
		t.Errorf("expected no edges for settled group, got %+v", edges)
	}
}
