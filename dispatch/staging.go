package dispatch

import "github.com/maxpoletaev/kivi-group/membership"

type stageOutcome int

const (
	stageInserted stageOutcome = iota
	stageReplaced
	stageDuplicate
	stageStale
	stageConflict
)

func (o stageOutcome) String() string {
	switch o {
	case stageInserted:
		return "inserted"
	case stageReplaced:
		return "replaced"
	case stageDuplicate:
		return "duplicate"
	case stageStale:
		return "stale"
	case stageConflict:
		return "conflict"
	default:
		return ""
	}
}

type stagedSnapshot struct {
	member     membership.Member
	conflicted bool
}

// stagingSet holds the member snapshots exchanged before a view is installed.
// It is only accessed from the delivery goroutine and needs no locking.
//
// When the same member is reported more than once, the snapshot with the
// higher incarnation wins and a lower one is discarded as stale. Two different
// snapshots with the same incarnation cannot be ordered, so the first one is
// kept and the entry is flagged as conflicted.
type stagingSet struct {
	entries map[membership.MemberID]*stagedSnapshot
}

func newStagingSet() *stagingSet {
	return &stagingSet{
		entries: make(map[membership.MemberID]*stagedSnapshot),
	}
}

func (s *stagingSet) put(m membership.Member) stageOutcome {
	curr, ok := s.entries[m.ID]

	switch {
	case !ok:
		s.entries[m.ID] = &stagedSnapshot{member: m}
		return stageInserted
	case m.Incarnation > curr.member.Incarnation:
		s.entries[m.ID] = &stagedSnapshot{member: m}
		return stageReplaced
	case m.Incarnation < curr.member.Incarnation:
		return stageStale
	case m == curr.member:
		return stageDuplicate
	default:
		curr.conflicted = true
		return stageConflict
	}
}

func (s *stagingSet) get(id membership.MemberID) (stagedSnapshot, bool) {
	entry, ok := s.entries[id]
	if !ok {
		return stagedSnapshot{}, false
	}

	return *entry, true
}

func (s *stagingSet) len() int {
	return len(s.entries)
}

func (s *stagingSet) clear() {
	s.entries = make(map[membership.MemberID]*stagedSnapshot)
}
