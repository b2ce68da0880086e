// Package compiler turns message and record schemas into layout plans.
//
// Layout policy is fixed: an optional 10-byte wire header first, then every
// non-repeated field in declaration order, then, if the message has a
// repeated-record field, a 4-byte count slot followed by the element region.
// The repeated field is always deferred to the end regardless of where it
// was declared.
package compiler

import (
	"math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alexhholmes/flyweight/errors"
	"github.com/alexhholmes/flyweight/plan"
	"github.com/alexhholmes/flyweight/schema"
)

// Compile computes the layout plan for one message. records supplies the
// element schemas that repeated fields refer to by name. msg.ID must be set;
// CompileBatch assigns ids for messages that leave it as schema.AutoID.
func Compile(msg schema.Message, records []schema.Record) (*plan.Plan, error) {
	if msg.ID == schema.AutoID {
		return nil, errors.Schema(errors.ReasonIDRange, []string{msg.Name},
			"message id is not assigned; compile it as part of a batch")
	}
	c := newCompilation(records)
	return c.message(msg, msg.ID)
}

// CompileRecord computes the layout plan for one repeated-record element.
func CompileRecord(rec schema.Record) (*plan.Plan, error) {
	return compileRecord(rec)
}

// CompileBatch compiles every record and message of a batch. A message that
// fails does not stop the others; the returned set holds every plan that
// compiled and the error combines every failure.
func CompileBatch(b schema.Batch) (*plan.Set, error) {
	c := newCompilation(b.Records)
	ids := newIDAllocator(b.Messages)
	set := &plan.Set{}
	var errs error

	// Phase 1: records, in declaration order
	for _, rec := range b.Records {
		ids.advance()
		p, err := c.record(rec.Name)
		if err != nil {
			Logger().Warn("record layout rejected", zap.String("record", rec.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		set.Records = append(set.Records, p)
	}

	// Phase 2: messages, with wire ids threaded through the allocator
	for _, msg := range b.Messages {
		ids.advance()
		id, err := ids.assign(msg)
		if err != nil {
			Logger().Warn("message id rejected", zap.String("message", msg.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		p, err := c.message(msg, id)
		if err != nil {
			Logger().Warn("message layout rejected", zap.String("message", msg.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		set.Messages = append(set.Messages, p)
	}

	return set, errs
}

// compilation memoizes record plans so each element schema is compiled once
// per batch.
type compilation struct {
	records map[string]schema.Record
	plans   map[string]*plan.Plan
	failed  map[string]error
}

func newCompilation(records []schema.Record) *compilation {
	c := &compilation{
		records: make(map[string]schema.Record, len(records)),
		plans:   make(map[string]*plan.Plan, len(records)),
		failed:  make(map[string]error),
	}
	for _, r := range records {
		c.records[r.Name] = r
	}
	return c
}

func (c *compilation) record(name string) (*plan.Plan, error) {
	if p, ok := c.plans[name]; ok {
		return p, nil
	}
	if err, ok := c.failed[name]; ok {
		return nil, err
	}
	rec, ok := c.records[name]
	if !ok {
		return nil, errors.Schema(errors.ReasonUnknownRecord, []string{name}, "no record schema named %q", name)
	}
	p, err := compileRecord(rec)
	if err != nil {
		c.failed[name] = err
		return nil, err
	}
	c.plans[name] = p
	return p, nil
}

func (c *compilation) message(msg schema.Message, id int) (*plan.Plan, error) {
	if id < 0 || id > math.MaxUint16 {
		return nil, errors.New(errors.KindSchema, errors.ReasonIDRange).
			Path(msg.Name).Value(id).Detail("wire id %d does not fit 16 bits", id).Build()
	}
	if msg.Version < 0 || msg.Version > math.MaxUint16 {
		return nil, errors.New(errors.KindSchema, errors.ReasonIDRange).
			Path(msg.Name).Value(msg.Version).Detail("version %d does not fit 16 bits", msg.Version).Build()
	}

	// Phase 1: size every field and find the repeated one
	lengths, repeated, err := measure(msg.Name, msg.Fields, msg.FixedLength)
	if err != nil {
		return nil, err
	}

	var element *plan.Plan
	if repeated != nil {
		name := repeated.Annotations.RecordType()
		if name == "" {
			return nil, errors.Schema(errors.ReasonUnknownRecord, []string{msg.Name, repeated.Name},
				"repeated field has no record type")
		}
		element, err = c.record(name)
		if err != nil {
			return nil, errors.New(errors.KindSchema, errors.ReasonUnknownRecord).
				Path(msg.Name, repeated.Name).
				Detail("record %s", name).
				Cause(err).
				Build()
		}
	}

	// Phase 2: place fields with a running cursor
	p := &plan.Plan{
		Name:    msg.Name,
		ID:      uint16(id),
		Version: uint16(msg.Version),
	}
	cursor := 0
	if msg.HasHeader {
		p.Header = &plan.Header{ProtocolID: p.ID, ProtocolVersion: p.Version}
		cursor += plan.HeaderLength
	}
	cursor = place(p, msg.Fields, lengths, cursor)

	// Phase 3: count slot and element region after every fixed field
	if repeated != nil {
		p.Repeated = &plan.Repeated{
			Field:         repeated.Name,
			CountOffset:   cursor,
			RecordStart:   cursor + plan.CountLength,
			ElementLength: element.CoreLength,
			Element:       element,
		}
		cursor += plan.CountLength
	}
	p.CoreLength = cursor

	Logger().Debug("compiled message",
		zap.String("message", p.Name),
		zap.Uint16("id", p.ID),
		zap.Int("fields", len(p.Fields)),
		zap.Int("core_length", p.CoreLength),
		zap.Bool("header", p.Header != nil),
		zap.Bool("repeated", p.Repeated != nil))

	return p, nil
}

func compileRecord(rec schema.Record) (*plan.Plan, error) {
	lengths, repeated, err := measure(rec.Name, rec.Fields, true)
	if err != nil {
		return nil, err
	}
	if repeated != nil {
		return nil, errors.Schema(errors.ReasonNestedRepeated, []string{rec.Name, repeated.Name},
			"records cannot contain repeated records")
	}

	p := &plan.Plan{Name: rec.Name}
	p.CoreLength = place(p, rec.Fields, lengths, 0)

	Logger().Debug("compiled record",
		zap.String("record", p.Name),
		zap.Int("element_length", p.CoreLength))

	return p, nil
}

// measure sizes every field and returns the single repeated field, if any.
// All field errors of the schema are reported together.
func measure(owner string, fields []schema.Field, fixedLength bool) ([]int, *schema.Field, error) {
	lengths := make([]int, len(fields))
	seen := make(map[string]bool, len(fields))
	var repeated *schema.Field
	var errs error

	for i := range fields {
		f := &fields[i]
		if seen[f.Name] {
			errs = multierr.Append(errs, errors.Schema(errors.ReasonDuplicateField,
				[]string{owner, f.Name}, "duplicate field name"))
			continue
		}
		seen[f.Name] = true

		if f.Type == schema.RepeatableRecord {
			if repeated != nil {
				errs = multierr.Append(errs, errors.Schema(errors.ReasonMultipleRepeated,
					[]string{owner, f.Name}, "only one repeated record is supported, already have %s", repeated.Name))
				continue
			}
			repeated = f
			continue
		}

		n, err := ByteLength(owner, *f, fixedLength)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		lengths[i] = n
	}

	if errs != nil {
		return nil, nil, errs
	}
	return lengths, repeated, nil
}

// place appends a slot per non-repeated field starting at cursor and
// returns the cursor after the last one.
func place(p *plan.Plan, fields []schema.Field, lengths []int, cursor int) int {
	p.Fields = make([]plan.Slot, 0, len(fields))
	for i, f := range fields {
		if f.Type == schema.RepeatableRecord {
			continue
		}
		p.Fields = append(p.Fields, plan.Slot{
			Name:   f.Name,
			Type:   f.Type,
			Offset: cursor,
			Length: lengths[i],
		})
		cursor += lengths[i]
	}
	return cursor
}

// idAllocator hands out wire ids for messages that do not declare one.
// The counter advances once per schema in batch order, records included, and
// skips ids that some message in the batch claims explicitly.
type idAllocator struct {
	seq      int
	explicit map[int]bool
	claimed  map[int]string
}

func newIDAllocator(msgs []schema.Message) *idAllocator {
	a := &idAllocator{
		explicit: make(map[int]bool),
		claimed:  make(map[int]string),
	}
	for _, m := range msgs {
		if m.ID != schema.AutoID {
			a.explicit[m.ID] = true
		}
	}
	return a
}

func (a *idAllocator) advance() {
	a.seq++
}

func (a *idAllocator) taken(id int) bool {
	if a.explicit[id] {
		return true
	}
	_, ok := a.claimed[id]
	return ok
}

func (a *idAllocator) assign(msg schema.Message) (int, error) {
	if msg.ID != schema.AutoID {
		if owner, ok := a.claimed[msg.ID]; ok {
			return 0, errors.New(errors.KindSchema, errors.ReasonDuplicateID).
				Path(msg.Name).
				Value(msg.ID).
				Detail("wire id %d already used by %s", msg.ID, owner).
				Build()
		}
		a.claimed[msg.ID] = msg.Name
		return msg.ID, nil
	}

	id := a.seq
	for a.taken(id) {
		id++
	}
	a.claimed[id] = msg.Name
	return id, nil
}
