package node

//go:generate mockgen -source=facilities.go -destination=facilities_mock_test.go -package=node

import (
	"time"

	"github.com/maxpoletaev/kivi-group/dispatch"
)

// Transport is the group communication layer the node runs on.
type Transport interface {
	Bootstrap()
	Join(addrs []string) error
	Broadcast(msg dispatch.Message) error
	Leave(timeout time.Duration) error
}
