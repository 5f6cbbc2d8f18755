package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// Invite describes an invitation to join a group, addressed to a phone
// number that has no registered account yet.
type Invite struct {
	PhoneNumber string
	GroupName   string
	InviterName string
	JoinLink    string
}

// Notifier delivers out-of-band messages to people who are not app users
// yet. Implementations may send SMS, email, or nothing at all.
type Notifier interface {
	SendInvite(ctx context.Context, invite Invite) error
}

// LogNotifier writes invites to the structured log instead of delivering
// them. It is the default in development, where no SMS gateway is wired up.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendInvite(ctx context.Context, invite Invite) error {
	if invite.PhoneNumber == "" {
		return fmt.Errorf("invite has no phone number")
	}

	n.logger.InfoContext(ctx, "invite sent",
		"phone_number", invite.PhoneNumber,
		"group_name", invite.GroupName,
		"inviter", invite.InviterName,
		"join_link", invite.JoinLink,
	)
	return nil
}
