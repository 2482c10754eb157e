package membership

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrInvalidMember = errors.New("invalid member record")

// Field numbers of an encoded member record. The layout is compatible with a
// protobuf message, so records may be inspected with standard tooling.
const (
	fieldID          protowire.Number = 1
	fieldName        protowire.Number = 2
	fieldAddr        protowire.Number = 3
	fieldRole        protowire.Number = 4
	fieldVersion     protowire.Number = 5
	fieldIncarnation protowire.Number = 6
	fieldStatus      protowire.Number = 7
)

// EncodeMember serializes the member record using protobuf wire encoding.
func EncodeMember(m *Member) []byte {
	b := make([]byte, 0, 64)

	b = protowire.AppendTag(b, fieldID, protowire.BytesType)
	b = protowire.AppendString(b, string(m.ID))

	if m.Name != "" {
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, m.Name)
	}

	if m.Addr != "" {
		b = protowire.AppendTag(b, fieldAddr, protowire.BytesType)
		b = protowire.AppendString(b, m.Addr)
	}

	b = protowire.AppendTag(b, fieldRole, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Role))

	if m.Version != "" {
		b = protowire.AppendTag(b, fieldVersion, protowire.BytesType)
		b = protowire.AppendString(b, m.Version)
	}

	b = protowire.AppendTag(b, fieldIncarnation, protowire.VarintType)
	b = protowire.AppendVarint(b, m.Incarnation)

	b = protowire.AppendTag(b, fieldStatus, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Status))

	return b
}

// DecodeMember parses a member record produced by EncodeMember. Unknown fields
// are skipped. The record must carry a non-empty ID and a valid status.
func DecodeMember(b []byte) (Member, error) {
	var m Member

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Member{}, fmt.Errorf("%w: failed to read tag: %w", ErrInvalidMember, protowire.ParseError(n))
		}

		b = b[n:]

		switch {
		case num == fieldID && typ == protowire.BytesType:
			var v string
			v, n = protowire.ConsumeString(b)
			m.ID = MemberID(v)
		case num == fieldName && typ == protowire.BytesType:
			m.Name, n = protowire.ConsumeString(b)
		case num == fieldAddr && typ == protowire.BytesType:
			m.Addr, n = protowire.ConsumeString(b)
		case num == fieldVersion && typ == protowire.BytesType:
			m.Version, n = protowire.ConsumeString(b)
		case num == fieldRole && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			m.Role = Role(v)
		case num == fieldIncarnation && typ == protowire.VarintType:
			m.Incarnation, n = protowire.ConsumeVarint(b)
		case num == fieldStatus && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			m.Status = Status(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return Member{}, fmt.Errorf("%w: failed to read field %d: %w", ErrInvalidMember, num, protowire.ParseError(n))
		}

		b = b[n:]
	}

	if m.ID == "" {
		return Member{}, fmt.Errorf("%w: missing id", ErrInvalidMember)
	}

	if !m.Status.IsValid() {
		return Member{}, fmt.Errorf("%w: unknown status %d", ErrInvalidMember, m.Status)
	}

	return m, nil
}
