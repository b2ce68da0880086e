package flyweight

import (
	"encoding/binary"
	"math"

	"github.com/alexhholmes/flyweight/errors"
)

func (v *View) noRepeated() error {
	return errors.New(errors.KindWrite, errors.ReasonNoRepeated).
		Path(v.plan.Name).
		Detail("message has no repeated record").
		Build()
}

// Resize sets the number of committed elements and writes it into the count
// slot. The buffer must have room for every committed element.
func (v *View) Resize(count int) error {
	if !v.bound {
		return errors.NotBound([]string{v.plan.Name})
	}
	r := v.plan.Repeated
	if r == nil {
		return v.noRepeated()
	}
	if !v.mutable {
		return errors.ReadOnly([]string{v.plan.Name, r.Field})
	}
	if count < 0 || uint64(count) > math.MaxUint32 {
		return errors.New(errors.KindWrite, errors.ReasonOutOfRange).
			Path(v.plan.Name, r.Field).
			Value(count).
			Detail("count %d does not fit the count slot", count).
			Build()
	}
	required := v.offset + v.plan.CommittedLength(count)
	if v.buf.Capacity() < required {
		return errors.TooSmall([]string{v.plan.Name, r.Field}, required, v.buf.Capacity())
	}

	binary.LittleEndian.PutUint32(v.b[v.offset+r.CountOffset:], uint32(count))
	v.committed = count
	return nil
}

// ReadSize reads the count slot, caches it as the committed count and
// returns it. The buffer is the source of truth: another writer may have
// changed the count since Bind. Plans without a repeated region report 0.
func (v *View) ReadSize() int {
	r := v.plan.Repeated
	if !v.bound || r == nil {
		return 0
	}
	v.committed = int(binary.LittleEndian.Uint32(v.b[v.offset+r.CountOffset:]))
	return v.committed
}

// Committed returns the cached committed count without touching the buffer.
func (v *View) Committed() int {
	return v.committed
}

// CommittedLength returns the bytes in use for the committed count.
func (v *View) CommittedLength() int {
	return v.plan.CommittedLength(v.committed)
}

// RecordAt binds the shared element view to element index and returns it.
// The returned view aliases the buffer and is moved by the next RecordAt
// call; copy values out before asking for another index.
func (v *View) RecordAt(index int) (*View, error) {
	if !v.bound {
		return nil, errors.NotBound([]string{v.plan.Name})
	}
	r := v.plan.Repeated
	if r == nil {
		return nil, v.noRepeated()
	}
	if index < 0 || index >= v.committed {
		return nil, errors.OutOfRange([]string{v.plan.Name, r.Field}, index, v.committed)
	}
	if err := v.element.Bind(v.buf, v.offset+r.ElementOffset(index)); err != nil {
		return nil, err
	}
	return v.element, nil
}
