package membership

import (
	"fmt"
	"strings"

	"github.com/twmb/murmur3"

	"github.com/maxpoletaev/kivi-group/internal/set"
)

// View is an agreed snapshot of the group membership. Views are never modified
// after creation, a new view always supersedes the previous one. All methods
// are safe to call on a nil view, which is treated as an empty one.
type View struct {
	// ID is a monotonically increasing view number assigned by the transport.
	ID uint64
	// Previous is the view this one was derived from, if known. Only one
	// level of history is kept, Previous.Previous is always nil.
	Previous *View

	members set.Set[MemberID]
}

// NewView creates a view with the given members. The members slice is copied.
func NewView(id uint64, prev *View, members ...MemberID) *View {
	v := &View{
		ID:      id,
		members: set.FromSlice(members),
	}

	if prev != nil {
		v.Previous = &View{ID: prev.ID, members: prev.members}
	}

	return v
}

// Members returns the view members sorted by their ID.
func (v *View) Members() []MemberID {
	if v == nil {
		return []MemberID{}
	}

	return set.Sorted(v.members)
}

// MemberSet returns a copy of the view members as a set.
func (v *View) MemberSet() set.Set[MemberID] {
	if v == nil {
		return set.New[MemberID]()
	}

	return v.members.Copy()
}

func (v *View) Has(id MemberID) bool {
	if v == nil {
		return false
	}

	return v.members.Has(id)
}

func (v *View) Len() int {
	if v == nil {
		return 0
	}

	return v.members.Len()
}

// Delta returns the members that are present in the next view but not in this
// one (joining), and the members that are present in this view but not in the
// next one (leaving).
func (v *View) Delta(next *View) (joining, leaving set.Set[MemberID]) {
	curr := v.MemberSet()
	upcoming := next.MemberSet()

	return upcoming.Diff(curr), curr.Diff(upcoming)
}

// SameMembers returns true if both views consist of the same members.
func (v *View) SameMembers(other *View) bool {
	return v.MemberSet().Equals(other.MemberSet())
}

// Fingerprint returns a hash of the view membership. Two views with the same
// members always have the same fingerprint, regardless of their IDs.
func (v *View) Fingerprint() uint64 {
	h := murmur3.New64()

	for _, id := range v.Members() {
		_, _ = h.Write([]byte(id))
		_, _ = h.Write([]byte{0})
	}

	return h.Sum64()
}

func (v *View) String() string {
	if v == nil {
		return "view(nil)"
	}

	ids := make([]string, 0, v.Len())
	for _, id := range v.Members() {
		ids = append(ids, string(id))
	}

	return fmt.Sprintf("view(%d){%s}", v.ID, strings.Join(ids, ","))
}
