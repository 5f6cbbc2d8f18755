package models

// MemberRole is the role a member holds inside a group.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// Membership records one member's place in a group.
//
// For registered users MemberID is the user's ID. For people invited from
// the phone contact book before they register, MemberID is their phone
// number and DisplayName is the contact-name snapshot taken at invite time.
type Membership struct {
	// MemberID is the membership key, unique within the group.
	MemberID string `json:"memberId"`

	// DisplayName is the name shown for this member. For registered
	// users it is a snapshot of their display name at join time.
	DisplayName string `json:"displayName"`

	// PhoneNumber is the member's phone number, when known.
	PhoneNumber string `json:"phoneNumber,omitempty"`

	// Role is admin or member. A group always has at least one admin
	// (the creator).
	Role MemberRole `json:"role"`

	// JoinedAt is the Unix timestamp when the member joined.
	JoinedAt int64 `json:"joinedAt"`
}

// Group represents a named collection of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates").
	Name string `json:"name"`

	// Description is an optional free-form description.
	Description string `json:"description,omitempty"`

	// CreatedBy is the user ID of the group creator. The creator is
	// always seeded as an admin member.
	CreatedBy string `json:"createdBy"`

	// Members maps member ID to membership info.
	Members map[string]Membership `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last group change.
	UpdatedAt int64 `json:"updatedAt"`
}

// IsMember reports whether the given ID belongs to the group.
func (g *Group) IsMember(memberID string) bool {
	_, ok := g.Members[memberID]
	return ok
}

// IsAdmin reports whether the given member holds the admin role.
func (g *Group) IsAdmin(memberID string) bool {
	m, ok := g.Members[memberID]
	return ok && m.Role == RoleAdmin
}
