package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/kivi-group/dispatch"
	"github.com/maxpoletaev/kivi-group/internal/telemetry"
	"github.com/maxpoletaev/kivi-group/membership"
	"github.com/maxpoletaev/kivi-group/viewgate"
)

var (
	ErrJoinTimeout = errors.New("timed out waiting for the view to be installed")
	ErrNotInView   = errors.New("local member is not part of the installed view")
)

type Config struct {
	// JoinTimeout bounds the time spent waiting for the view that includes
	// the local member after bootstrapping or joining.
	JoinTimeout time.Duration

	// LeaveTimeout is how long to wait for the leave intent to propagate.
	LeaveTimeout time.Duration

	Logger kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		JoinTimeout:  30 * time.Second,
		LeaveTimeout: 5 * time.Second,
		Logger:       kitlog.NewNopLogger(),
	}
}

// Node ties the local member to a group. Entering the group is a view
// modification round: the gate is armed before the transport is asked to
// bootstrap or join, and the round completes when the dispatcher installs the
// resulting view.
type Node struct {
	registry  *membership.Registry
	gate      *viewgate.Gate
	transport Transport
	conf      Config
	logger    kitlog.Logger
}

func New(registry *membership.Registry, gate *viewgate.Gate, transport Transport, conf Config) *Node {
	logger := conf.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	return &Node{
		registry:  registry,
		gate:      gate,
		transport: transport,
		conf:      conf,
		logger:    logger,
	}
}

// Bootstrap starts a new group with the local member as the only member.
func (n *Node) Bootstrap(ctx context.Context) error {
	return n.enterGroup(ctx, func() error {
		n.transport.Bootstrap()
		return nil
	})
}

// Join joins the group one of the given members belongs to, and waits until
// the view including the local member is installed.
func (n *Node) Join(ctx context.Context, addrs []string) error {
	return n.enterGroup(ctx, func() error {
		return n.transport.Join(addrs)
	})
}

func (n *Node) enterGroup(ctx context.Context, enter func() error) error {
	if err := n.gate.Start(); err != nil {
		return err
	}

	// A view from an earlier timed out attempt may have been installed since.
	// The transport delivers no further view for an unchanged membership.
	if view := n.registry.CurrentView(); view.Has(n.registry.SelfID()) {
		n.gate.End()

		level.Info(n.logger).Log("msg", "already in group", "view", view)

		return nil
	}

	if err := enter(); err != nil {
		n.gate.End()
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.conf.JoinTimeout)
	defer cancel()

	if err := n.gate.WaitContext(ctx); err != nil {
		// The view may still arrive later, the dispatcher then installs it
		// as usual. Releasing the gate allows another attempt.
		n.gate.End()

		if errors.Is(err, context.DeadlineExceeded) {
			telemetry.ViewWaitTimeouts.Inc()
			return ErrJoinTimeout
		}

		return err
	}

	view := n.registry.CurrentView()
	if !view.Has(n.registry.SelfID()) {
		return ErrNotInView
	}

	self := n.registry.Self()

	level.Info(n.logger).Log(
		"msg", "entered group",
		"view", view,
		"status", self.Status,
	)

	return nil
}

// Broadcast sends a message of the given type to all group members.
func (n *Node) Broadcast(msgType dispatch.MessageType, payload []byte) error {
	return n.transport.Broadcast(dispatch.Message{
		Type:    msgType,
		Sender:  n.registry.SelfID(),
		Payload: payload,
	})
}

// Leave leaves the group and closes the registry. The local member record
// stays readable after the node has left.
func (n *Node) Leave(ctx context.Context) error {
	timeout := n.conf.LeaveTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	defer n.registry.Close()

	if err := n.transport.Leave(timeout); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}

	level.Info(n.logger).Log("msg", "left group")

	return nil
}
