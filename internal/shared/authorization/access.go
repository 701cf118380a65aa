package authorization

// TicketAccess is the view a ticket exposes for access checks.
type TicketAccess interface {
	GetCreatorID() uint
	GetAssigneeID() *uint
}

// CanAccessTicket grants access iff the requester created the ticket, is its
// assignee, or holds staff/admin privilege. There is no hierarchy beyond this.
func CanAccessTicket(userID uint, role UserRole, isStaff bool, t TicketAccess) bool {
	if t == nil {
		return false
	}
	if isStaff || role.IsAdmin() {
		return true
	}
	if t.GetCreatorID() == userID {
		return true
	}
	if assignee := t.GetAssigneeID(); assignee != nil && *assignee == userID {
		return true
	}
	return false
}

// CanAccessResourceByOwnerID is the generic owner-or-admin check used outside tickets.
func CanAccessResourceByOwnerID(userID uint, role UserRole, resourceOwnerID uint) bool {
	if role.IsAdmin() {
		return true
	}
	return userID == resourceOwnerID
}
