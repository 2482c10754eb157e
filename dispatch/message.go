package dispatch

import (
	"fmt"

	"github.com/maxpoletaev/kivi-group/membership"
)

type MessageType uint32

const (
	MessageTransaction MessageType = iota + 1
	MessageCertification
	MessageRecovery
)

func (t MessageType) String() string {
	switch t {
	case MessageTransaction:
		return "transaction"
	case MessageCertification:
		return "certification"
	case MessageRecovery:
		return "recovery"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// Message is a unit delivered by the group transport. It is consumed once.
type Message struct {
	Type    MessageType
	Sender  membership.MemberID
	Payload []byte
}
