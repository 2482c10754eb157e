package membership

// MemberID is a unique cluster member identifier. Identifiers are compared by
// value, and their natural string ordering is used wherever members need to be
// sorted.
type MemberID string

func (id MemberID) String() string {
	return string(id)
}

type Role int

const (
	RoleSecondary Role = iota
	RolePrimary
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "PRIMARY"
	case RoleSecondary:
		return "SECONDARY"
	default:
		return ""
	}
}

type Member struct {
	// ID is the unique identifier of a cluster member.
	ID MemberID
	// Name is the human-readable name of the member.
	Name string
	// Addr is the address the member advertises to other members.
	Addr string
	// Role of the member in the group.
	Role Role
	// Version of the software the member is running.
	Version string
	// Incarnation is incremented by the member each time it restarts. A record
	// with a higher incarnation always supersedes the older one.
	Incarnation uint64
	// Status is the state of the member as seen by the local node.
	Status Status
}

// IsReachable returns true if the member takes part in the group.
func (m *Member) IsReachable() bool {
	return m.Status == StatusOnline || m.Status == StatusRecovering
}
