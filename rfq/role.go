package rfq

// Role is the part a user plays in one negotiation.
type Role uint8

const (
	RoleNone Role = iota
	RoleRequester
	RoleResponder

	numRoles
)

var roleNames = [numRoles]string{
	RoleNone:      "none",
	RoleRequester: "requester",
	RoleResponder: "responder",
}

func (r Role) String() string {
	if r >= numRoles {
		return "unknown"
	}
	return roleNames[r]
}

// capabilities[role][action] tells whether a user in role may issue action.
// Expiry is driven by the clock, never by a user.
var capabilities = [numRoles][numActions]bool{
	RoleRequester: {
		ActionCounter: true,
		ActionAccept:  true,
		ActionReject:  true,
		ActionCancel:  true,
	},
	RoleResponder: {
		ActionQuote:   true,
		ActionCounter: true,
		ActionAccept:  true,
		ActionReject:  true,
	},
}

func (r Role) Can(a Action) bool {
	if r >= numRoles || a >= numActions {
		return false
	}
	return capabilities[r][a]
}
