package membership

import (
	"errors"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/maxpoletaev/kivi-group/internal/generic"
)

var (
	ErrStaleView      = errors.New("view is not newer than the installed one")
	ErrInvalidView    = errors.New("invalid view")
	ErrRegistryClosed = errors.New("registry is closed")
)

// StatusChange describes a single member status transition produced by a view
// transition. Members that appear for the first time transition from OFFLINE.
type StatusChange struct {
	ID        MemberID
	OldStatus Status
	NewStatus Status
}

// Registry is the authoritative table of group members as seen by the local
// node. It is safe for concurrent use, readers always observe either the state
// before or after a view transition, never a partially applied one.
type Registry struct {
	mut     sync.RWMutex
	selfID  MemberID
	view    *View
	members map[MemberID]Member
	closed  bool
}

// NewRegistry creates a registry that only knows about the local member. The
// local member starts OFFLINE with an empty view until it joins a group.
func NewRegistry(self Member) *Registry {
	self.Status = StatusOffline

	members := make(map[MemberID]Member, 1)
	members[self.ID] = self

	return &Registry{
		selfID:  self.ID,
		view:    NewView(0, nil),
		members: members,
	}
}

// SelfID returns the ID of the local member.
func (r *Registry) SelfID() MemberID {
	return r.selfID
}

// Self returns the record of the local member. The local record is kept even
// when the local member is not part of the current view.
func (r *Registry) Self() Member {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return r.members[r.selfID]
}

// CurrentView returns the last installed view.
func (r *Registry) CurrentView() *View {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return r.view
}

// Member returns the record of the member with the given ID, if it exists.
func (r *Registry) Member(id MemberID) (Member, bool) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	member, ok := r.members[id]

	return member, ok
}

// Members returns all known member records sorted by ID.
func (r *Registry) Members() []Member {
	r.mut.RLock()
	defer r.mut.RUnlock()

	members := make([]Member, 0, len(r.members))
	for _, id := range generic.SortedKeys(r.members) {
		members = append(members, r.members[id])
	}

	return members
}

// StatusCounts returns the number of known members in each status.
func (r *Registry) StatusCounts() map[Status]int {
	r.mut.RLock()
	defer r.mut.RUnlock()

	counts := make(map[Status]int, len(AllStatuses))
	for _, m := range r.members {
		counts[m.Status]++
	}

	return counts
}

// ApplyViewTransition installs the view as current and replaces the member
// table in a single step. Each view member takes its record from records if
// present, otherwise keeps its current one. Members absent from the view are
// dropped, except for the local member which is kept as OFFLINE. The returned
// changes list every status transition in member ID order.
func (r *Registry) ApplyViewTransition(view *View, records map[MemberID]Member) ([]StatusChange, error) {
	if view == nil {
		return nil, ErrInvalidView
	}

	r.mut.Lock()
	defer r.mut.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	if view.ID <= r.view.ID {
		return nil, ErrStaleView
	}

	next := make(map[MemberID]Member, view.Len()+1)
	changes := make([]StatusChange, 0)

	track := func(id MemberID, old Status) {
		if curr := next[id].Status; curr != old {
			changes = append(changes, StatusChange{ID: id, OldStatus: old, NewStatus: curr})
		}
	}

	for _, id := range view.Members() {
		curr, exists := r.members[id]

		if rec, ok := records[id]; ok {
			rec.ID = id
			next[id] = rec
		} else if exists {
			next[id] = curr
		} else {
			next[id] = Member{ID: id, Status: StatusUnreachable}
		}

		oldStatus := StatusOffline
		if exists {
			oldStatus = curr.Status
		}

		track(id, oldStatus)
	}

	for _, id := range generic.SortedKeys(r.members) {
		if view.Has(id) {
			continue
		}

		curr := r.members[id]

		if id == r.selfID {
			self := curr
			self.Status = StatusOffline
			next[id] = self
			track(id, curr.Status)

			continue
		}

		if curr.Status != StatusOffline {
			changes = append(changes, StatusChange{ID: id, OldStatus: curr.Status, NewStatus: StatusOffline})
		}
	}

	sortChanges(changes)

	r.members = next
	r.view = view

	return changes, nil
}

// Close tears down the registry. Further view transitions fail, reads keep
// returning the last installed state.
func (r *Registry) Close() {
	r.mut.Lock()
	r.closed = true
	r.mut.Unlock()
}

func sortChanges(changes []StatusChange) {
	slices.SortStableFunc(changes, func(a, b StatusChange) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}
