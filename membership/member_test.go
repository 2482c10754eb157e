package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberID_String(t *testing.T) {
	assert.Equal(t, "node1", MemberID("node1").String())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "PRIMARY", RolePrimary.String())
	assert.Equal(t, "SECONDARY", RoleSecondary.String())
	assert.Equal(t, "", Role(7).String())
}

func TestMember_IsReachable(t *testing.T) {
	tests := map[Status]bool{
		StatusOnline:      true,
		StatusRecovering:  true,
		StatusOffline:     false,
		StatusError:       false,
		StatusUnreachable: false,
		Status(0):         false,
	}

	for status, want := range tests {
		m := &Member{Status: status}
		assert.Equal(t, want, m.IsReachable(), status.String())
	}
}
