package service

import (
	"context"
	"log/slog"

	"github.com/splitkaro/backend/internal/ledger"
	"github.com/splitkaro/backend/internal/metrics"
	"github.com/splitkaro/backend/internal/models"
	"github.com/splitkaro/backend/internal/storage"
)

// MemberSummary is one member's row in the group overview, classified from
// the viewing user's perspective.
type MemberSummary struct {
	MemberID    string          `json:"memberId"`
	DisplayName string          `json:"displayName"`
	Amount      float64         `json:"amount"`
	Standing    ledger.Standing `json:"standing"`
}

// GroupOverview is the complete ledger view of one group.
type GroupOverview struct {
	GroupID      string                 `json:"groupId"`
	GroupName    string                 `json:"groupName"`
	TotalExpense float64                `json:"totalExpense"`
	Members      []MemberSummary        `json:"members"`
	Chart        ledger.ChartSeries     `json:"chart"`
	NetBalances  []ledger.MemberBalance `json:"netBalances"`
	SettleUp     []ledger.DebtEdge      `json:"settleUp"`
}

// OverviewService builds ledger summaries over a group's stored
// transactions.
type OverviewService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewOverviewService creates a new OverviewService.
func NewOverviewService(store storage.Store, logger *slog.Logger) *OverviewService {
	return &OverviewService{store: store, logger: logger}
}

// GetGroupOverview computes the group's ledger summary for the viewing
// member: total spend, per-member gross contributions with standing labels,
// chart series, net balances and suggested settle-up transfers.
func (s *OverviewService) GetGroupOverview(ctx context.Context, viewerID, groupID string) (*GroupOverview, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(viewerID) {
		return nil, ErrNotMember
	}

	stored, err := s.store.ListGroupTransactions(ctx, groupID)
	if err != nil {
		return nil, err
	}
	transactions := make([]models.Transaction, len(stored))
	for i, txn := range stored {
		transactions[i] = *txn
	}

	result := ledger.Summarize(group.Members, transactions)

	summaries := make([]MemberSummary, 0, result.Contributions.Len())
	for _, memberID := range result.Contributions.Members() {
		amount, _ := result.Contributions.Amount(memberID)
		displayName := ledger.UnknownMemberLabel
		if m, ok := group.Members[memberID]; ok && m.DisplayName != "" {
			displayName = m.DisplayName
		}
		summaries = append(summaries, MemberSummary{
			MemberID:    memberID,
			DisplayName: displayName,
			Amount:      amount,
			Standing:    ledger.Classify(amount, viewerID, memberID),
		})
	}

	balances := ledger.ComputeNetBalances(group.Members, transactions)
	overview := &GroupOverview{
		GroupID:      group.ID,
		GroupName:    group.Name,
		TotalExpense: result.TotalExpense,
		Members:      summaries,
		Chart:        result.Chart,
		NetBalances:  balances,
		SettleUp:     ledger.SimplifyDebts(balances),
	}

	metrics.RecordOverviewComputation()
	s.logger.DebugContext(ctx, "overview computed",
		"groupId", groupID,
		"viewer_id", viewerID,
		"transactions", len(transactions),
	)
	return overview, nil
}
