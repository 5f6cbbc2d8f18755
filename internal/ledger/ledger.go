// Package ledger computes group balances from membership and transaction
// snapshots.
//
// Every function here is pure: no I/O, no shared state, no mutation of
// inputs. Callers re-invoke the engine with the full current transaction
// set whenever the store changes; recomputing the same snapshot yields the
// same result, so the engine is safe to call concurrently and repeatedly.
//
// The engine never fails on a single malformed record. A transaction with
// a missing or unusable amount contributes 0, and a creator absent from
// the member directory renders as "Unknown". Partial results beat a blank
// overview screen.
package ledger

import (
	"math"

	"github.com/splitkaro/backend/internal/models"
)

// epsilon absorbs floating point noise when comparing amounts to zero.
const epsilon = 0.01

// UnknownMemberLabel is the display fallback for creators that have no
// entry in the supplied member directory.
const UnknownMemberLabel = "Unknown"

// Standing classifies a member's displayed amount relative to a viewer.
type Standing string

const (
	// StandingSettled means the amount is zero (within tolerance).
	StandingSettled Standing = "settled"

	// StandingOwesYou means the amount favors the viewer.
	StandingOwesYou Standing = "owes_you"

	// StandingYouOwe means the amount favors the other member.
	StandingYouOwe Standing = "you_owe"
)

// Contributions is an insertion-ordered mapping from member ID to that
// member's gross paid-in amount. Order is first appearance across the
// processed transactions, which is what the chart rendering expects.
type Contributions struct {
	order   []string
	amounts map[string]float64
}

// NewContributions returns an empty contributions mapping.
func NewContributions() *Contributions {
	return &Contributions{amounts: make(map[string]float64)}
}

func (c *Contributions) add(memberID string, amount float64) {
	if _, seen := c.amounts[memberID]; !seen {
		c.order = append(c.order, memberID)
	}
	c.amounts[memberID] += amount
}

// Amount returns the accumulated amount for a member and whether the
// member appears in the mapping at all.
func (c *Contributions) Amount(memberID string) (float64, bool) {
	amount, ok := c.amounts[memberID]
	return amount, ok
}

// Members returns member IDs in first-appearance order.
func (c *Contributions) Members() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of members in the mapping.
func (c *Contributions) Len() int {
	return len(c.order)
}

// ChartSeries holds parallel label/value sequences for a bar chart.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Result is the full output of one ledger computation over a group
// snapshot.
type Result struct {
	// TotalExpense is the sum of all expense amounts. Settlements are
	// repayments, not new spend, and are excluded.
	TotalExpense float64

	// Contributions is the gross paid-in amount per member, in first
	// appearance order.
	Contributions *Contributions

	// Chart is the contributions rendered as chart label/value pairs.
	Chart ChartSeries
}

// usableAmount guards against records with a broken amount field. Such a
// record contributes 0 instead of poisoning the whole computation.
func usableAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}

// ComputeGroupTotals sums the expense amounts across a group's
// transactions. Settlement records are excluded. An empty list yields 0.
func ComputeGroupTotals(transactions []models.Transaction) float64 {
	var total float64
	for i := range transactions {
		if !transactions[i].IsExpense() {
			continue
		}
		total += usableAmount(transactions[i].Amount)
	}
	return total
}

// ComputeMemberContributions aggregates the gross amount each member paid
// in, keyed by transaction creator, in first-appearance order.
//
// This is deliberately a gross paid-in figure, not a net balance: the
// member's own share of the expense is NOT subtracted, and any
// per-participant share mapping on the transaction is ignored. That is
// the figure the group overview has always displayed ("X spent: ..."),
// so it stays as-is. ComputeNetBalances exposes the share-aware
// accounting figure separately.
//
// Members without any expense-type record are absent from the result.
func ComputeMemberContributions(transactions []models.Transaction) *Contributions {
	contribs := NewContributions()
	for i := range transactions {
		tx := &transactions[i]
		if !tx.IsExpense() || tx.CreatedBy == "" {
			continue
		}
		contribs.add(tx.CreatedBy, usableAmount(tx.Amount))
	}
	return contribs
}

// Classify labels a member's displayed amount from the viewing user's
// perspective. A positive amount means the group owes that member.
//
// The viewer is an explicit parameter: the engine never reads ambient
// session state.
func Classify(amount float64, viewerID, memberID string) Standing {
	if math.Abs(amount) < epsilon {
		return StandingSettled
	}
	viewerIsOwed := (amount > 0) == (memberID == viewerID)
	if viewerIsOwed {
		return StandingOwesYou
	}
	return StandingYouOwe
}

// BuildChartSeries renders contributions as parallel label/value slices
// suitable for a bar chart. Labels come from the member directory's
// display names, falling back to "Unknown" for absent or unnamed members.
// Order follows the contributions mapping; no sorting is applied.
func BuildChartSeries(contribs *Contributions, members map[string]models.Membership) ChartSeries {
	series := ChartSeries{
		Labels: make([]string, 0, contribs.Len()),
		Values: make([]float64, 0, contribs.Len()),
	}
	for _, memberID := range contribs.Members() {
		label := UnknownMemberLabel
		if m, ok := members[memberID]; ok && m.DisplayName != "" {
			label = m.DisplayName
		}
		amount, _ := contribs.Amount(memberID)
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, amount)
	}
	return series
}

// Summarize runs the full ledger computation for one group snapshot:
// total expense, per-member gross contributions, and the chart series.
func Summarize(members map[string]models.Membership, transactions []models.Transaction) Result {
	contribs := ComputeMemberContributions(transactions)
	return Result{
		TotalExpense:  ComputeGroupTotals(transactions),
		Contributions: contribs,
		Chart:         BuildChartSeries(contribs, members),
	}
}
