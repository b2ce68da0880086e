// Package flyweight reads and writes compiled layouts directly against
// caller-owned memory.
//
// A View interprets the bytes at some offset of a DirectBuffer as the fields
// of one plan.Plan. Views are created once per logical slot and bound again
// and again as the caller moves through a ring buffer, arena or receive
// buffer; binding never copies and never allocates.
//
//	v := flyweight.NewView(orderPlan)
//	buf := flyweight.NewMutableBuffer(ring)
//	if err := v.Bind(buf, claimOffset); err != nil {
//	    return err
//	}
//	err := v.PutInt64(orderPlan.MustField("correlationId"), 42)
//
// # Mutability
//
// Bind classifies the buffer: a MutableDirectBuffer gives a writable view,
// any other DirectBuffer a read-only one. Writes to a read-only view fail
// with a write error. Reads work in both modes.
//
// # Encoding
//
// Everything is little-endian. Booleans are one byte, 0x01 for true. Fixed
// strings occupy exactly maxLength bytes of ASCII, one byte per character
// with non-ASCII characters stored as '?'; PutString leaves bytes past
// the value untouched, PutStringPadded fills them with spaces, and reads trim
// trailing spaces and NULs.
//
// # Repeated records
//
// A plan with a repeated region has a 4-byte count slot after its fixed
// fields and contiguous elements after that. Resize sets the count, ReadSize
// re-reads it from the buffer, and RecordAt binds the view's single element
// view to one element and returns it. The element view is shared: calling
// RecordAt again moves it.
//
// # Concurrency
//
// Views are not safe for concurrent use. A buffer region must have a single
// writer at a time; that discipline belongs to the caller.
//
// # Errors
//
// Failures carry a Kind from the errors package: bind for capacity, unbound
// views and header writes through a read-only binding; write for field and
// count writes through a read-only binding and for oversized strings; read
// for element indexes beyond the committed count. A failed Bind leaves the
// view unbound, and reading an unbound view panics. Writes are not atomic
// across fields: a failed write leaves earlier writes in place.
package flyweight
