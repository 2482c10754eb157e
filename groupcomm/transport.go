package groupcomm

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/memberlist"

	"github.com/maxpoletaev/kivi-group/dispatch"
	"github.com/maxpoletaev/kivi-group/internal/set"
	"github.com/maxpoletaev/kivi-group/internal/telemetry"
	"github.com/maxpoletaev/kivi-group/membership"
)

var (
	ErrClosed     = errors.New("transport is closed")
	ErrJoinFailed = errors.New("failed to contact any group member")
)

// Handler receives group events. Its methods are never called concurrently.
type Handler interface {
	OnMessageReceived(msg dispatch.Message)
	OnViewChanged(view *membership.View)
	OnData(payload []byte) error
}

// cluster is the subset of memberlist used by the transport.
type cluster interface {
	Join(existing []string) (int, error)
	Leave(timeout time.Duration) error
	Shutdown() error
	SendReliable(to *memberlist.Node, msg []byte) error
	LocalNode() *memberlist.Node
}

type event struct {
	msg  *dispatch.Message
	data []byte
}

// Transport adapts memberlist to the group event model. Memberlist callbacks
// arrive on arbitrary goroutines, the transport funnels them into a single
// delivery goroutine so the handler observes them one at a time and in order.
//
// Membership changes are debounced: a view is delivered once no join or leave
// has been observed for SettleDelay. Whenever a member is seen joining, the
// local member record is sent to it directly, so every pair of members
// exchanges state before the view they share is delivered. No views are
// delivered until the local member either bootstraps a group or joins one.
type Transport struct {
	selfID      membership.MemberID
	clusterMut  sync.Mutex
	cluster     cluster
	handler     Handler
	localState  func() membership.Member
	broadcasts  *memberlist.TransmitLimitedQueue
	settleDelay time.Duration
	logger      kitlog.Logger

	membersMut sync.Mutex
	members    set.Set[membership.MemberID]

	active    atomic.Bool
	events    chan event
	viewDirty chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	// Owned by the delivery goroutine.
	viewSeq  uint64
	lastView *membership.View
}

func newTransport(conf *Config) *Transport {
	logger := conf.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	t := &Transport{
		selfID:      conf.SelfID,
		handler:     conf.Handler,
		localState:  conf.LocalState,
		settleDelay: conf.SettleDelay,
		logger:      logger,
		members:     set.New[membership.MemberID](),
		events:      make(chan event, conf.QueueSize),
		viewDirty:   make(chan struct{}, 1),
		stop:        make(chan struct{}),
	}

	t.broadcasts = &memberlist.TransmitLimitedQueue{
		NumNodes:       t.numNodes,
		RetransmitMult: conf.RetransmitMult,
	}

	return t
}

// Start creates the memberlist instance and starts the delivery goroutine.
func Start(conf *Config) (*Transport, error) {
	t := newTransport(conf)

	mconf := memberlist.DefaultLANConfig()
	mconf.Name = string(conf.SelfID)
	mconf.BindAddr = conf.BindAddr
	mconf.BindPort = conf.BindPort
	mconf.AdvertiseAddr = conf.AdvertiseAddr
	mconf.AdvertisePort = conf.AdvertisePort
	mconf.Delegate = t
	mconf.Events = t
	mconf.LogOutput = kitlog.NewStdlibAdapter(level.Debug(kitlog.With(t.logger, "component", "memberlist")))

	mlist, err := memberlist.Create(mconf)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}

	t.setCluster(mlist)
	t.startLoop()

	return t, nil
}

func (t *Transport) startLoop() {
	t.wg.Add(1)

	go func() {
		defer t.wg.Done()
		t.run()
	}()
}

func (t *Transport) setCluster(c cluster) {
	t.clusterMut.Lock()
	t.cluster = c
	t.clusterMut.Unlock()
}

func (t *Transport) getCluster() cluster {
	t.clusterMut.Lock()
	defer t.clusterMut.Unlock()

	return t.cluster
}

// LocalAddr returns the address other members reach the local member at.
func (t *Transport) LocalAddr() string {
	return t.getCluster().LocalNode().Address()
}

func (t *Transport) numNodes() int {
	t.membersMut.Lock()
	defer t.membersMut.Unlock()

	return t.members.Len()
}

// Bootstrap starts a new group consisting only of the local member.
func (t *Transport) Bootstrap() {
	t.active.Store(true)
	t.markViewDirty()
}

// Join contacts the given members and joins their group. The view including
// the local member is delivered asynchronously.
func (t *Transport) Join(addrs []string) error {
	if t.isClosed() {
		return ErrClosed
	}

	t.active.Store(true)

	count, err := t.getCluster().Join(addrs)
	if count == 0 {
		t.active.Store(false)

		if err == nil {
			err = ErrJoinFailed
		}

		return fmt.Errorf("join %v: %w", addrs, err)
	}

	if err != nil {
		level.Warn(t.logger).Log("msg", "failed to contact some members", "err", err)
	}

	t.markViewDirty()

	return nil
}

// Broadcast sends the message to every group member, including the local one.
func (t *Transport) Broadcast(msg dispatch.Message) error {
	if t.isClosed() {
		return ErrClosed
	}

	msg.Sender = t.selfID
	t.broadcasts.QueueBroadcast(&messageBroadcast{msg: EncodeMessage(&msg)})
	t.enqueue(event{msg: &msg})

	return nil
}

// Leave gracefully leaves the group and stops the transport.
func (t *Transport) Leave(timeout time.Duration) error {
	if t.isClosed() {
		return ErrClosed
	}

	t.active.Store(false)

	var errs []error

	cl := t.getCluster()

	if err := cl.Leave(timeout); err != nil {
		errs = append(errs, fmt.Errorf("leave: %w", err))
	}

	if err := cl.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("shutdown: %w", err))
	}

	t.Close()

	return errors.Join(errs...)
}

// Close stops the delivery goroutine. Pending events are discarded.
func (t *Transport) Close() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})

	t.wg.Wait()
}

func (t *Transport) isClosed() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

func (t *Transport) enqueue(ev event) {
	select {
	case t.events <- ev:
	case <-t.stop:
	}
}

// tryEnqueue is used from memberlist callbacks, which must not block.
func (t *Transport) tryEnqueue(ev event) {
	select {
	case t.events <- ev:
	default:
		level.Warn(t.logger).Log("msg", "delivery queue is full, dropping event")
		telemetry.MessagesDropped.WithLabelValues("queue_full").Inc()
	}
}

func (t *Transport) markViewDirty() {
	select {
	case t.viewDirty <- struct{}{}:
	default:
	}
}

func (t *Transport) run() {
	var settle <-chan time.Time

	for {
		select {
		case <-t.stop:
			return
		case ev := <-t.events:
			t.deliver(ev)
		case <-t.viewDirty:
			if t.active.Load() {
				settle = time.After(t.settleDelay)
			}
		case <-settle:
			settle = nil

			t.deliverView()
		}
	}
}

func (t *Transport) deliver(ev event) {
	switch {
	case ev.msg != nil:
		t.handler.OnMessageReceived(*ev.msg)
	case ev.data != nil:
		if err := t.handler.OnData(ev.data); err != nil {
			level.Debug(t.logger).Log("msg", "exchange data rejected", "err", err)
		}
	}
}

func (t *Transport) deliverView() {
	t.membersMut.Lock()
	ids := t.members.Values()
	t.membersMut.Unlock()

	view := membership.NewView(t.viewSeq+1, t.lastView, ids...)

	if t.lastView != nil && t.lastView.SameMembers(view) {
		return
	}

	t.viewSeq++
	t.lastView = view

	level.Debug(t.logger).Log("msg", "delivering view", "view", view, "fingerprint", view.Fingerprint())

	t.handler.OnViewChanged(view)
}

// NodeMeta implements memberlist.Delegate.
func (t *Transport) NodeMeta(limit int) []byte {
	return nil
}

// NotifyMsg implements memberlist.Delegate.
func (t *Transport) NotifyMsg(b []byte) {
	env, err := decodeEnvelope(b)
	if err != nil {
		level.Warn(t.logger).Log("msg", "failed to decode group message", "err", err)
		return
	}

	if env.state != nil {
		t.tryEnqueue(event{data: env.state})
		return
	}

	t.tryEnqueue(event{msg: &env.msg})
}

// GetBroadcasts implements memberlist.Delegate.
func (t *Transport) GetBroadcasts(overhead, limit int) [][]byte {
	return t.broadcasts.GetBroadcasts(overhead, limit)
}

// LocalState implements memberlist.Delegate. Member state is exchanged with
// direct messages when members join, push/pull carries nothing extra.
func (t *Transport) LocalState(join bool) []byte {
	return nil
}

// MergeRemoteState implements memberlist.Delegate.
func (t *Transport) MergeRemoteState(buf []byte, join bool) {}

func (t *Transport) sendState(node *memberlist.Node) {
	self := t.localState()
	payload := EncodeState(t.selfID, membership.EncodeMember(&self))

	cl := t.getCluster()
	if cl == nil {
		return
	}

	if err := cl.SendReliable(node, payload); err != nil {
		level.Warn(t.logger).Log("msg", "failed to send state to joining member", "name", node.Name, "err", err)
		return
	}

	level.Debug(t.logger).Log("msg", "state sent to joining member", "name", node.Name, "status", self.Status)
}

// NotifyJoin implements memberlist.EventDelegate.
func (t *Transport) NotifyJoin(node *memberlist.Node) {
	t.membersMut.Lock()
	t.members.Add(membership.MemberID(node.Name))
	t.membersMut.Unlock()

	level.Debug(t.logger).Log("msg", "node joined", "name", node.Name, "addr", node.Address())
	t.markViewDirty()

	if membership.MemberID(node.Name) == t.selfID || t.isClosed() {
		return
	}

	peer := *node
	go t.sendState(&peer)
}

// NotifyLeave implements memberlist.EventDelegate.
func (t *Transport) NotifyLeave(node *memberlist.Node) {
	t.membersMut.Lock()
	t.members.Remove(membership.MemberID(node.Name))
	t.membersMut.Unlock()

	level.Debug(t.logger).Log("msg", "node left", "name", node.Name, "addr", node.Address())
	t.markViewDirty()
}

// NotifyUpdate implements memberlist.EventDelegate.
func (t *Transport) NotifyUpdate(node *memberlist.Node) {}

type messageBroadcast struct {
	msg []byte
}

func (b *messageBroadcast) Invalidates(other memberlist.Broadcast) bool { return false }
func (b *messageBroadcast) Message() []byte                             { return b.msg }
func (b *messageBroadcast) Finished()                                   {}

var (
	_ memberlist.Delegate      = &Transport{}
	_ memberlist.EventDelegate = &Transport{}
	_ memberlist.Broadcast     = &messageBroadcast{}
)
