package dispatch

import (
	"errors"
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/kivi-group/internal/multierror"
	"github.com/maxpoletaev/kivi-group/internal/set"
	"github.com/maxpoletaev/kivi-group/internal/telemetry"
	"github.com/maxpoletaev/kivi-group/membership"
	"github.com/maxpoletaev/kivi-group/viewgate"
)

var (
	ErrBadSnapshot         = errors.New("malformed exchange snapshot")
	ErrConflictingSnapshot = errors.New("conflicting exchange snapshots")
	ErrRecoveryStart       = errors.New("failed to start recovery")
)

type Config struct {
	Registry  *membership.Registry
	Gate      *viewgate.Gate
	Applier   Applier
	Certifier Certifier
	Recovery  Recovery
	Liveness  LivenessListener
	Listeners []StatusListener
	Logger    kitlog.Logger
}

// Dispatcher reacts to the events delivered by the group transport. It routes
// group messages to the collaborators, stages the member snapshots exchanged
// during a join and turns agreed views into membership registry updates.
//
// The transport must never invoke the callbacks concurrently.
type Dispatcher struct {
	selfID    membership.MemberID
	registry  *membership.Registry
	gate      *viewgate.Gate
	staging   *stagingSet
	applier   Applier
	certifier Certifier
	recovery  Recovery
	liveness  LivenessListener
	listeners []StatusListener
	logger    kitlog.Logger
}

func New(conf Config) *Dispatcher {
	logger := conf.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	return &Dispatcher{
		selfID:    conf.Registry.SelfID(),
		registry:  conf.Registry,
		gate:      conf.Gate,
		staging:   newStagingSet(),
		applier:   conf.Applier,
		certifier: conf.Certifier,
		recovery:  conf.Recovery,
		liveness:  conf.Liveness,
		listeners: conf.Listeners,
		logger:    logger,
	}
}

// OnMessageReceived hands the message over to the collaborator responsible for
// its type. Messages of unknown type are dropped.
func (d *Dispatcher) OnMessageReceived(msg Message) {
	var err error

	switch msg.Type {
	case MessageTransaction:
		err = d.applier.Enqueue(msg.Payload, msg.Sender)
	case MessageCertification:
		err = d.certifier.Enqueue(msg.Payload, msg.Sender)
	case MessageRecovery:
		err = d.recovery.HandleMessage(msg.Payload, msg.Sender)
	default:
		level.Warn(d.logger).Log("msg", "dropping message of unknown type", "type", msg.Type, "sender", msg.Sender)
		telemetry.MessagesDropped.WithLabelValues("unknown_type").Inc()

		return
	}

	if err != nil {
		level.Error(d.logger).Log("msg", "failed to deliver message", "type", msg.Type, "sender", msg.Sender, "err", err)
		telemetry.MessagesDropped.WithLabelValues("rejected").Inc()

		return
	}

	telemetry.MessagesRouted.WithLabelValues(msg.Type.String()).Inc()
}

// OnData stages a member snapshot received from a peer during the exchange that
// precedes a view installation. Only a malformed snapshot results in an error.
func (d *Dispatcher) OnData(payload []byte) error {
	snapshot, err := membership.DecodeMember(payload)
	if err != nil {
		level.Warn(d.logger).Log("msg", "failed to decode exchange snapshot", "err", err)
		telemetry.SnapshotsStaged.WithLabelValues("malformed").Inc()

		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}

	outcome := d.staging.put(snapshot)
	telemetry.SnapshotsStaged.WithLabelValues(outcome.String()).Inc()

	l := kitlog.With(d.logger, "member_id", snapshot.ID, "incarnation", snapshot.Incarnation)

	switch outcome {
	case stageConflict:
		level.Warn(l).Log("msg", "conflicting snapshots for the same incarnation")
	case stageStale:
		level.Debug(l).Log("msg", "ignoring snapshot from an older incarnation")
	default:
		level.Debug(l).Log("msg", "snapshot staged", "outcome", outcome)
	}

	return nil
}

// OnViewChanged installs the agreed view. Joining members are reconciled with
// their staged snapshots, the local member is either brought online or put into
// recovery, and the leaving members are dropped. Failures are confined to the
// member they concern. The staging set is always drained and the view gate is
// always released, whatever the outcome.
func (d *Dispatcher) OnViewChanged(view *membership.View) {
	defer d.gate.End()
	defer d.staging.clear()

	if view == nil {
		level.Error(d.logger).Log("msg", "received nil view")
		return
	}

	l := kitlog.With(d.logger, "view_id", view.ID)

	old := d.registry.CurrentView()
	if view.ID <= old.ID {
		level.Warn(l).Log("msg", "ignoring stale view", "current_view_id", old.ID)
		telemetry.ViewsRejected.Inc()

		return
	}

	joining, leaving := old.Delta(view)
	records := make(map[membership.MemberID]membership.Member, joining.Len())
	errs := multierror.New[membership.MemberID]()

	for _, id := range set.Sorted(joining) {
		if id == d.selfID {
			continue
		}

		member, err := d.reconcilePeer(id)
		errs.Add(id, err)

		records[id] = member
	}

	if joining.Has(d.selfID) {
		self, err := d.reconcileSelf(view)
		errs.Add(d.selfID, err)

		records[d.selfID] = self
	}

	changes, err := d.registry.ApplyViewTransition(view, records)
	if err != nil {
		level.Error(l).Log("msg", "failed to install view", "err", err)
		telemetry.ViewsRejected.Inc()

		return
	}

	telemetry.ViewsInstalled.Inc()
	telemetry.ReconcileErrors.Add(float64(errs.Len()))
	d.updateStatusGauge()

	if err := errs.Ret(); err != nil {
		level.Warn(l).Log("msg", "view installed with member errors", "err", err)
	}

	level.Info(l).Log(
		"msg", "view installed",
		"members", view.Len(),
		"joining", joining.Len(),
		"leaving", leaving.Len(),
	)

	if leaving.Len() > 0 && d.liveness != nil {
		d.liveness.OnMembersLeft(set.Sorted(leaving))
	}

	for _, change := range changes {
		level.Debug(l).Log(
			"msg", "member status changed",
			"member_id", change.ID,
			"old_status", change.OldStatus,
			"new_status", change.NewStatus,
		)

		for _, listener := range d.listeners {
			listener.OnMemberStatusChanged(change.ID, change.OldStatus, change.NewStatus)
		}
	}
}

func (d *Dispatcher) reconcilePeer(id membership.MemberID) (membership.Member, error) {
	staged, ok := d.staging.get(id)
	if !ok {
		level.Warn(d.logger).Log("msg", "no exchange snapshot for joining member", "member_id", id)

		return membership.Member{ID: id, Status: membership.StatusUnreachable}, nil
	}

	member := staged.member

	if staged.conflicted {
		member.Status = membership.StatusError
		return member, ErrConflictingSnapshot
	}

	member.Status = joinStatus(member.Status)

	return member, nil
}

func (d *Dispatcher) reconcileSelf(view *membership.View) (membership.Member, error) {
	self := d.registry.Self()

	// The first member of the group has nobody to recover from.
	if view.Len() == 1 {
		self.Status = membership.StatusOnline
		return self, nil
	}

	self.Status = membership.StatusRecovering

	if err := d.recovery.Start(view.Members()); err != nil {
		self.Status = membership.StatusError
		return self, fmt.Errorf("%w: %w", ErrRecoveryStart, err)
	}

	return self, nil
}

func (d *Dispatcher) updateStatusGauge() {
	counts := d.registry.StatusCounts()

	for _, status := range membership.AllStatuses {
		telemetry.MembersByStatus.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

// joinStatus infers the status of a joining peer from the status it reported
// about itself. Members that are not yet online need to go through recovery.
func joinStatus(reported membership.Status) membership.Status {
	switch reported {
	case membership.StatusOnline, membership.StatusError:
		return reported
	default:
		return membership.StatusRecovering
	}
}
