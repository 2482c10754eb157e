package membership

type Status int

const (
	StatusOnline Status = iota + 1
	StatusRecovering
	StatusOffline
	StatusError
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "ONLINE"
	case StatusRecovering:
		return "RECOVERING"
	case StatusOffline:
		return "OFFLINE"
	case StatusError:
		return "ERROR"
	case StatusUnreachable:
		return "UNREACHABLE"
	default:
		return ""
	}
}

func (s Status) IsValid() bool {
	return s >= StatusOnline && s <= StatusUnreachable
}

// AllStatuses lists every valid status, in declaration order.
var AllStatuses = []Status{
	StatusOnline,
	StatusRecovering,
	StatusOffline,
	StatusError,
	StatusUnreachable,
}
