package flyweight

import (
	"encoding/binary"

	"github.com/alexhholmes/flyweight/errors"
	"github.com/alexhholmes/flyweight/plan"
)

// WireHeader is the decoded header prefix of a message.
type WireHeader struct {
	MessageLength   uint32
	EncodingType    uint16
	ProtocolID      uint16
	ProtocolVersion uint16
}

// PeekHeader decodes the header at offset without binding a view, so a
// receiver can dispatch on ProtocolID before choosing a plan.
func PeekHeader(buf DirectBuffer, offset int) (WireHeader, error) {
	if offset < 0 || buf.Capacity() < offset+plan.HeaderLength {
		return WireHeader{}, errors.TooSmall([]string{"header"}, offset+plan.HeaderLength, buf.Capacity())
	}
	return decodeHeader(buf.Bytes()[offset:]), nil
}

func decodeHeader(b []byte) WireHeader {
	return WireHeader{
		MessageLength:   binary.LittleEndian.Uint32(b[plan.MessageLengthOffset:]),
		EncodingType:    binary.LittleEndian.Uint16(b[plan.EncodingTypeOffset:]),
		ProtocolID:      binary.LittleEndian.Uint16(b[plan.ProtocolIDOffset:]),
		ProtocolVersion: binary.LittleEndian.Uint16(b[plan.ProtocolVersionOffset:]),
	}
}

// WriteHeader writes the message length, encoding type, protocol id and
// version into the header prefix.
func (v *View) WriteHeader() error {
	if !v.bound {
		return errors.NotBound([]string{v.plan.Name})
	}
	if v.plan.Header == nil {
		return errors.New(errors.KindWrite, errors.ReasonNoHeader).
			Path(v.plan.Name).
			Detail("message has no header").
			Build()
	}
	if !v.mutable {
		return errors.New(errors.KindBind, errors.ReasonReadOnly).
			Path(v.plan.Name).
			Detail("cannot write a header through a read-only binding").
			Build()
	}

	b := v.b[v.offset:]
	binary.LittleEndian.PutUint32(b[plan.MessageLengthOffset:], uint32(v.plan.CoreLength))
	binary.LittleEndian.PutUint16(b[plan.EncodingTypeOffset:], plan.EncodingType)
	binary.LittleEndian.PutUint16(b[plan.ProtocolIDOffset:], v.plan.Header.ProtocolID)
	binary.LittleEndian.PutUint16(b[plan.ProtocolVersionOffset:], v.plan.Header.ProtocolVersion)
	return nil
}

// BindWriteHeader binds the view and writes the header in one step.
func (v *View) BindWriteHeader(buf DirectBuffer, offset int) error {
	if err := v.Bind(buf, offset); err != nil {
		return err
	}
	return v.WriteHeader()
}

// ValidateHeader reports whether the header matches this plan. Checks run in
// order encoding type, protocol id, version, message length and stop at the
// first mismatch. An unbound view or a plan without a header never
// validates.
func (v *View) ValidateHeader() bool {
	if !v.bound || v.plan.Header == nil {
		return false
	}
	h := decodeHeader(v.b[v.offset:])
	if h.EncodingType != plan.EncodingType {
		return false
	}
	if h.ProtocolID != v.plan.Header.ProtocolID {
		return false
	}
	if h.ProtocolVersion != v.plan.Header.ProtocolVersion {
		return false
	}
	return h.MessageLength == uint32(v.plan.CoreLength)
}

// Header decodes the header of the current binding.
func (v *View) Header() (WireHeader, bool) {
	if !v.bound || v.plan.Header == nil {
		return WireHeader{}, false
	}
	return decodeHeader(v.b[v.offset:]), true
}
