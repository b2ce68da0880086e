package flyweight

import (
	"github.com/alexhholmes/flyweight/errors"
	"github.com/alexhholmes/flyweight/plan"
	"github.com/alexhholmes/flyweight/schema"
)

// Get reads s as an interface value: int16, int32, int64, float64, bool or
// string. It allocates and is meant for tooling, not the hot path.
func (v *View) Get(s plan.Slot) any {
	switch s.Type {
	case schema.Int16:
		return v.Int16(s)
	case schema.Int32:
		return v.Int32(s)
	case schema.Int64:
		return v.Int64(s)
	case schema.Double:
		return v.Double(s)
	case schema.Boolean:
		return v.Bool(s)
	case schema.FixedString:
		return v.String(s)
	}
	return nil
}

// Set writes val, which must have the Go type Get returns for s. Strings are
// written padded.
func (v *View) Set(s plan.Slot, val any) error {
	switch x := val.(type) {
	case int16:
		return v.PutInt16(s, x)
	case int32:
		return v.PutInt32(s, x)
	case int64:
		return v.PutInt64(s, x)
	case float64:
		return v.PutDouble(s, x)
	case bool:
		return v.PutBool(s, x)
	case string:
		return v.PutStringPadded(s, x)
	}
	return errors.New(errors.KindWrite, errors.ReasonTypeMismatch).
		Path(v.plan.Name, s.Name).
		Value(val).
		Detail("cannot store %T in %s field", val, s.Type).
		Build()
}

// Each calls fn with every fixed field of the plan and its current value.
func (v *View) Each(fn func(s plan.Slot, val any)) {
	for _, s := range v.plan.Fields {
		fn(s, v.Get(s))
	}
}
