package dispatch

//go:generate mockgen -source=facilities.go -destination=facilities_mock_test.go -package=dispatch

import "github.com/maxpoletaev/kivi-group/membership"

// Applier ingests transactional messages. Enqueue must not block.
type Applier interface {
	Enqueue(payload []byte, sender membership.MemberID) error
}

// Certifier ingests conflict detection messages. Enqueue must not block.
type Certifier interface {
	Enqueue(payload []byte, sender membership.MemberID) error
}

// Recovery transfers state to the local member when it joins an existing group.
type Recovery interface {
	// Start begins catching up with the given group membership. It must return
	// without waiting for the state transfer to complete.
	Start(target []membership.MemberID) error
	HandleMessage(payload []byte, sender membership.MemberID) error
}

// StatusListener is notified about every member status transition.
type StatusListener interface {
	OnMemberStatusChanged(id membership.MemberID, oldStatus, newStatus membership.Status)
}

// LivenessListener is notified when members leave the group.
type LivenessListener interface {
	OnMembersLeft(ids []membership.MemberID)
}
