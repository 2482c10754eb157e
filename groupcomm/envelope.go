package groupcomm

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/maxpoletaev/kivi-group/dispatch"
	"github.com/maxpoletaev/kivi-group/membership"
)

var ErrInvalidEnvelope = errors.New("invalid message envelope")

const (
	fieldType    protowire.Number = 1
	fieldSender  protowire.Number = 2
	fieldPayload protowire.Number = 3
	fieldState   protowire.Number = 4
)

// envelope is either a group message or a member snapshot sent to a joining
// member, the latter is marked by a non-nil state.
type envelope struct {
	msg   dispatch.Message
	state []byte
}

// EncodeMessage wraps the message into an envelope carrying its type and sender.
func EncodeMessage(msg *dispatch.Message) []byte {
	b := make([]byte, 0, len(msg.Payload)+len(msg.Sender)+16)

	b = protowire.AppendTag(b, fieldType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(msg.Type))

	b = protowire.AppendTag(b, fieldSender, protowire.BytesType)
	b = protowire.AppendString(b, string(msg.Sender))

	b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, msg.Payload)

	return b
}

// EncodeState wraps an encoded member snapshot into an envelope. Such
// envelopes are only sent directly to a member that is joining the group.
func EncodeState(sender membership.MemberID, snapshot []byte) []byte {
	b := make([]byte, 0, len(snapshot)+len(sender)+8)

	b = protowire.AppendTag(b, fieldSender, protowire.BytesType)
	b = protowire.AppendString(b, string(sender))

	b = protowire.AppendTag(b, fieldState, protowire.BytesType)
	b = protowire.AppendBytes(b, snapshot)

	return b
}

// DecodeMessage unwraps a message envelope. The message type is not validated
// here, routing unknown types is up to the handler.
func DecodeMessage(b []byte) (dispatch.Message, error) {
	env, err := decodeEnvelope(b)
	if err != nil {
		return dispatch.Message{}, err
	}

	if env.state != nil {
		return dispatch.Message{}, fmt.Errorf("%w: state envelope", ErrInvalidEnvelope)
	}

	return env.msg, nil
}

func decodeEnvelope(b []byte) (envelope, error) {
	var (
		env       envelope
		hasSender bool
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return envelope{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, protowire.ParseError(n))
		}

		b = b[n:]

		switch {
		case num == fieldType && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			env.msg.Type = dispatch.MessageType(v)
		case num == fieldSender && typ == protowire.BytesType:
			var v string
			v, n = protowire.ConsumeString(b)
			env.msg.Sender = membership.MemberID(v)
			hasSender = true
		case num == fieldPayload && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			env.msg.Payload = append([]byte(nil), v...)
		case num == fieldState && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			env.state = append(make([]byte, 0, len(v)), v...)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return envelope{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, protowire.ParseError(n))
		}

		b = b[n:]
	}

	if !hasSender {
		return envelope{}, fmt.Errorf("%w: missing sender", ErrInvalidEnvelope)
	}

	return env, nil
}
