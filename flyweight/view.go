package flyweight

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/alexhholmes/flyweight/errors"
	"github.com/alexhholmes/flyweight/plan"
	"github.com/alexhholmes/flyweight/schema"
)

// Pad is the byte PutStringPadded fills with.
const Pad = ' '

// View is a rebindable window onto one message or record in a buffer.
type View struct {
	plan      *plan.Plan
	buf       DirectBuffer
	b         []byte
	offset    int
	mutable   bool
	bound     bool
	committed int
	element   *View
}

// NewView creates an unbound view for p. If p has a repeated region the
// element view used by RecordAt is created here, so nothing is allocated
// once the view is in use.
func NewView(p *plan.Plan) *View {
	v := &View{plan: p}
	if p.Repeated != nil {
		v.element = &View{plan: p.Repeated.Element}
	}
	return v
}

// Plan returns the layout the view interprets.
func (v *View) Plan() *plan.Plan {
	return v.plan
}

// Offset returns the start offset of the current binding.
func (v *View) Offset() int {
	return v.offset
}

// Bound reports whether the last Bind succeeded.
func (v *View) Bound() bool {
	return v.bound
}

// Mutable reports whether the current binding accepts writes.
func (v *View) Mutable() bool {
	return v.mutable
}

// Buffer returns the buffer of the current binding.
func (v *View) Buffer() DirectBuffer {
	return v.buf
}

// Bind points the view at buf starting at offset, replacing any previous
// binding and resetting the committed element count to zero. The buffer
// must hold at least the plan's core length past offset. A failed Bind
// leaves the view unbound.
func (v *View) Bind(buf DirectBuffer, offset int) error {
	required := offset + v.plan.CoreLength
	if offset < 0 || buf.Capacity() < required {
		v.unbind()
		return errors.TooSmall([]string{v.plan.Name}, required, buf.Capacity())
	}

	v.buf = buf
	if m, ok := buf.(MutableDirectBuffer); ok {
		v.b = m.MutableBytes()
		v.mutable = true
	} else {
		v.b = buf.Bytes()
		v.mutable = false
	}
	v.offset = offset
	v.committed = 0
	v.bound = true
	return nil
}

func (v *View) unbind() {
	v.buf = nil
	v.b = nil
	v.offset = 0
	v.mutable = false
	v.committed = 0
	v.bound = false
	if v.element != nil {
		v.element.unbind()
	}
}

// at returns the absolute position of s. Reading an unbound view or a slot
// of another type is a programming error and panics.
func (v *View) at(s plan.Slot, t schema.FieldType) int {
	if !v.bound {
		panic(fmt.Sprintf("flyweight: read of %s.%s on an unbound view", v.plan.Name, s.Name))
	}
	if s.Type != t {
		panic(fmt.Sprintf("flyweight: %s.%s is %s, not %s", v.plan.Name, s.Name, s.Type, t))
	}
	return v.offset + s.Offset
}

// writable returns the absolute position of s or the reason it cannot be
// written.
func (v *View) writable(s plan.Slot, t schema.FieldType) (int, error) {
	if !v.bound {
		return 0, errors.NotBound([]string{v.plan.Name, s.Name})
	}
	if !v.mutable {
		return 0, errors.ReadOnly([]string{v.plan.Name, s.Name})
	}
	if s.Type != t {
		return 0, errors.New(errors.KindWrite, errors.ReasonTypeMismatch).
			Path(v.plan.Name, s.Name).
			Detail("field is %s, not %s", s.Type, t).
			Build()
	}
	return v.offset + s.Offset, nil
}

func (v *View) Int16(s plan.Slot) int16 {
	pos := v.at(s, schema.Int16)
	return int16(binary.LittleEndian.Uint16(v.b[pos:]))
}

func (v *View) PutInt16(s plan.Slot, val int16) error {
	pos, err := v.writable(s, schema.Int16)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(v.b[pos:], uint16(val))
	return nil
}

func (v *View) Int32(s plan.Slot) int32 {
	pos := v.at(s, schema.Int32)
	return int32(binary.LittleEndian.Uint32(v.b[pos:]))
}

func (v *View) PutInt32(s plan.Slot, val int32) error {
	pos, err := v.writable(s, schema.Int32)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(v.b[pos:], uint32(val))
	return nil
}

func (v *View) Int64(s plan.Slot) int64 {
	pos := v.at(s, schema.Int64)
	return int64(binary.LittleEndian.Uint64(v.b[pos:]))
}

func (v *View) PutInt64(s plan.Slot, val int64) error {
	pos, err := v.writable(s, schema.Int64)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(v.b[pos:], uint64(val))
	return nil
}

func (v *View) Double(s plan.Slot) float64 {
	pos := v.at(s, schema.Double)
	return math.Float64frombits(binary.LittleEndian.Uint64(v.b[pos:]))
}

func (v *View) PutDouble(s plan.Slot, val float64) error {
	pos, err := v.writable(s, schema.Double)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(v.b[pos:], math.Float64bits(val))
	return nil
}

// Bool reports whether the stored byte is 0x01.
func (v *View) Bool(s plan.Slot) bool {
	pos := v.at(s, schema.Boolean)
	return v.b[pos] == 1
}

func (v *View) PutBool(s plan.Slot, val bool) error {
	pos, err := v.writable(s, schema.Boolean)
	if err != nil {
		return err
	}
	var b byte
	if val {
		b = 1
	}
	v.b[pos] = b
	return nil
}

// StringBytes returns the stored text without trailing pad. The slice
// aliases the buffer.
func (v *View) StringBytes(s plan.Slot) []byte {
	pos := v.at(s, schema.FixedString)
	field := v.b[pos : pos+s.Length]
	end := len(field)
	for end > 0 && (field[end-1] == Pad || field[end-1] == 0) {
		end--
	}
	return field[:end]
}

// String returns a copy of the stored text without trailing pad.
func (v *View) String(s plan.Slot) string {
	return string(v.StringBytes(s))
}

// PutString writes val into the field, one byte per character. Bytes past
// the value are left as they are; use PutStringPadded for a deterministic
// fill. Non-ASCII characters are stored as a single '?'.
func (v *View) PutString(s plan.Slot, val string) error {
	_, err := v.putString(s, val)
	return err
}

// PutStringPadded writes val and fills the rest of the field with spaces.
func (v *View) PutStringPadded(s plan.Slot, val string) error {
	n, err := v.putString(s, val)
	if err != nil {
		return err
	}
	pos := v.offset + s.Offset
	tail := v.b[pos+n : pos+s.Length]
	for i := range tail {
		tail[i] = Pad
	}
	return nil
}

// putString returns the number of bytes written.
func (v *View) putString(s plan.Slot, val string) (int, error) {
	pos, err := v.writable(s, schema.FixedString)
	if err != nil {
		return 0, err
	}
	n := utf8.RuneCountInString(val)
	if n > s.Length {
		return 0, errors.TooLong([]string{v.plan.Name, s.Name}, n, s.Length)
	}
	dst := v.b[pos : pos+n]
	i := 0
	for _, r := range val {
		if r > 0x7F {
			r = '?'
		}
		dst[i] = byte(r)
		i++
	}
	return n, nil
}
