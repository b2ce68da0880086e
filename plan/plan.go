// Package plan holds compiled layouts: the byte offset and length of every
// field, the optional wire header, and the geometry of the repeated-record
// region. Plans are produced by the compiler and are immutable; the flyweight
// runtime and generated accessors only read them.
package plan

import (
	"fmt"

	"github.com/alexhholmes/flyweight/schema"
)

// Wire header layout. The header always occupies the first bytes of a
// message and every sub-field is little-endian.
const (
	MessageLengthOffset   = 0
	EncodingTypeOffset    = 4
	ProtocolIDOffset      = 6
	ProtocolVersionOffset = 8
	HeaderLength          = 10
)

// EncodingType is written into every header and checked on validation.
const EncodingType uint16 = 0x1DE1

// CountLength is the width of the repeated-record count slot.
const CountLength = 4

// Slot is one placed field.
type Slot struct {
	Name   string           `json:"name" msgpack:"name"`
	Type   schema.FieldType `json:"type" msgpack:"type"`
	Offset int              `json:"offset" msgpack:"offset"`
	Length int              `json:"length" msgpack:"length"`
}

// End returns the first byte after the slot.
func (s Slot) End() int {
	return s.Offset + s.Length
}

// Header carries the values written into the wire header.
type Header struct {
	ProtocolID      uint16 `json:"protocolId" msgpack:"protocol_id"`
	ProtocolVersion uint16 `json:"protocolVersion" msgpack:"protocol_version"`
}

// Repeated describes the variable-count region placed after all fixed fields.
type Repeated struct {
	Field         string `json:"field" msgpack:"field"`
	CountOffset   int    `json:"countOffset" msgpack:"count_offset"`
	RecordStart   int    `json:"recordStart" msgpack:"record_start"`
	ElementLength int    `json:"elementLength" msgpack:"element_length"`
	Element       *Plan  `json:"element" msgpack:"element"`
}

// ElementOffset returns the offset of element i relative to the message start.
func (r *Repeated) ElementOffset(i int) int {
	return r.RecordStart + i*r.ElementLength
}

// Plan is the compiled layout of one message or record.
type Plan struct {
	Name       string    `json:"name" msgpack:"name"`
	ID         uint16    `json:"id" msgpack:"id"`
	Version    uint16    `json:"version" msgpack:"version"`
	Fields     []Slot    `json:"fields" msgpack:"fields"`
	CoreLength int       `json:"coreLength" msgpack:"core_length"`
	Header     *Header   `json:"header,omitempty" msgpack:"header,omitempty"`
	Repeated   *Repeated `json:"repeated,omitempty" msgpack:"repeated,omitempty"`
}

// Fixed reports whether the plan has no repeated region, in which case
// CoreLength is the full message length.
func (p *Plan) Fixed() bool {
	return p.Repeated == nil
}

// PrecomputeLength returns the bytes needed to hold count elements. Callers
// use it to reserve space before any writes.
func (p *Plan) PrecomputeLength(count int) int {
	if p.Repeated == nil {
		return p.CoreLength
	}
	return p.CoreLength + count*p.Repeated.ElementLength
}

// CommittedLength returns the bytes in use given the live element count.
func (p *Plan) CommittedLength(committed int) int {
	return p.PrecomputeLength(committed)
}

// Field returns the slot with the given name.
func (p *Plan) Field(name string) (Slot, bool) {
	for _, s := range p.Fields {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// MustField is like Field but panics when the name is not in the plan.
func (p *Plan) MustField(name string) Slot {
	s, ok := p.Field(name)
	if !ok {
		panic(fmt.Sprintf("plan %s: no field %q", p.Name, name))
	}
	return s
}

// Verify checks that a plan loaded from outside the compiler is internally
// consistent: the header carries the plan's id and version, and slots are
// contiguous and end at the core length.
func (p *Plan) Verify() error {
	cursor := 0
	if h := p.Header; h != nil {
		if h.ProtocolID != p.ID || h.ProtocolVersion != p.Version {
			return fmt.Errorf("plan %s: header carries id %d version %d, plan is id %d version %d",
				p.Name, h.ProtocolID, h.ProtocolVersion, p.ID, p.Version)
		}
		cursor = HeaderLength
	}
	for _, s := range p.Fields {
		if s.Offset != cursor {
			return fmt.Errorf("plan %s: field %s at offset %d, expected %d", p.Name, s.Name, s.Offset, cursor)
		}
		want, ok := s.Type.Width()
		if s.Type == schema.FixedString {
			ok = s.Length >= 0
			want = s.Length
		}
		if !ok || want != s.Length {
			return fmt.Errorf("plan %s: field %s has length %d for type %s", p.Name, s.Name, s.Length, s.Type)
		}
		cursor += s.Length
	}
	if p.Repeated != nil {
		r := p.Repeated
		if r.CountOffset != cursor {
			return fmt.Errorf("plan %s: count slot at %d, expected %d", p.Name, r.CountOffset, cursor)
		}
		cursor += CountLength
		if r.RecordStart != cursor {
			return fmt.Errorf("plan %s: records start at %d, expected %d", p.Name, r.RecordStart, cursor)
		}
		if r.Element == nil {
			return fmt.Errorf("plan %s: repeated field %s has no element plan", p.Name, r.Field)
		}
		if r.Element.Repeated != nil || r.Element.Header != nil {
			return fmt.Errorf("plan %s: element %s must be a plain record", p.Name, r.Element.Name)
		}
		if err := r.Element.Verify(); err != nil {
			return err
		}
		if r.ElementLength != r.Element.CoreLength {
			return fmt.Errorf("plan %s: element length %d, element plan is %d", p.Name, r.ElementLength, r.Element.CoreLength)
		}
	}
	if p.CoreLength != cursor {
		return fmt.Errorf("plan %s: core length %d, expected %d", p.Name, p.CoreLength, cursor)
	}
	return nil
}
