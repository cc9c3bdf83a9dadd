package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"weak"

	"nested-models/core/events"

	"go.uber.org/zap"
)

// Collection is an ordered list of member models.
type Collection struct {
	rt     *Runtime
	typ    *CollectionType
	cid    string
	models []*Model
	bus    events.Bus
	log    *zap.Logger
	parent weak.Pointer[Model]
}

// NewCollection builds a collection of type ct on the default runtime.
func NewCollection(ct *CollectionType, items []any) (*Collection, error) {
	return defaultRuntime.NewCollection(ct, items)
}

// NewCollection builds a collection of type ct seeded with items. Items that
// cannot become members are skipped; their errors are joined into the returned
// error while the collection is still returned.
func (rt *Runtime) NewCollection(ct *CollectionType, items []any) (*Collection, error) {
	c := rt.collection(ct, nil)
	_, err := c.add(items, Options{Silent: true})
	c.initialize()
	return c, err
}

func (rt *Runtime) collection(ct *CollectionType, parent *Model) *Collection {
	c := &Collection{rt: rt, typ: ct, cid: rt.newCID()}
	c.log = rt.entityLogger(ct.name(), c.cid)
	if parent != nil {
		c.parent = weak.Make(parent)
	}
	return c
}

// newCollection builds a relation collection owned by parent.
func (rt *Runtime) newCollection(ct *CollectionType, items []any, parent *Model) *Collection {
	c := rt.collection(ct, parent)
	if _, err := c.add(items, Options{Silent: true}); err != nil {
		c.log.Debug("skipped invalid members", zap.Error(err))
	}
	c.initialize()
	return c
}

func (c *Collection) initialize() {
	if c.typ != nil && c.typ.Initialize != nil {
		c.typ.Initialize(c)
	}
}

// Type returns the collection type.
func (c *Collection) Type() *CollectionType {
	return c.typ
}

// CID returns the client-side identifier.
func (c *Collection) CID() string {
	return c.cid
}

// Len returns the number of members.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

// At returns the member at index i, or nil when out of range.
func (c *Collection) At(i int) *Model {
	if i < 0 || i >= len(c.models) {
		return nil
	}
	return c.models[i]
}

// Models returns the members in order.
func (c *Collection) Models() []*Model {
	return slices.Clone(c.models)
}

// Get returns the first member whose identity matches id, or whose CID equals id.
func (c *Collection) Get(id any) *Model {
	if isAbsent(id) {
		return nil
	}
	for _, m := range c.models {
		if sameIdentity(m.ID(), id) {
			return m
		}
		if cid, ok := id.(string); ok && m.cid == cid {
			return m
		}
	}
	return nil
}

// IndexOf returns the position of m, or -1.
func (c *Collection) IndexOf(m *Model) int {
	return slices.Index(c.models, m)
}

// Parent returns the model holding this collection, or nil. The link is weak.
func (c *Collection) Parent() *Model {
	return c.parent.Value()
}

// On registers fn for events named name. Member events are re-delivered here.
func (c *Collection) On(name string, fn events.Handler) events.Subscription {
	return c.bus.On(name, fn)
}

// Once registers fn for the next event named name.
func (c *Collection) Once(name string, fn events.Handler) events.Subscription {
	return c.bus.Once(name, fn)
}

// Off removes a handler.
func (c *Collection) Off(sub events.Subscription) bool {
	return c.bus.Off(sub)
}

func (c *Collection) trigger(e events.Event) {
	c.rt.metrics.ObserveNotification(e.Name)
	c.bus.Trigger(e)
}

// Add appends items as new members. Items already in the collection are
// ignored. Raw items are built as members of the collection's model type. A
// model that belongs to another collection is moved: it is removed from that
// collection first, so it is never a member of two collections.
func (c *Collection) Add(items []any, opts Options) ([]*Model, error) {
	return c.add(items, opts)
}

func (c *Collection) add(items []any, opts Options) ([]*Model, error) {
	var (
		added []*Model
		errs  []error
	)
	for _, item := range items {
		member, err := c.prepare(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if c.IndexOf(member) >= 0 {
			continue
		}
		if prev := member.collection.Value(); prev != nil && prev != c {
			prev.remove([]*Model{member}, opts)
		}
		member.collection = weak.Make(c)
		c.models = append(c.models, member)
		added = append(added, member)
	}
	if !opts.Silent {
		for _, member := range added {
			c.trigger(events.Event{Name: events.Add, Target: c, Value: member})
		}
	}
	return added, errors.Join(errs...)
}

// prepare turns an incoming item into a member model.
func (c *Collection) prepare(item any) (*Model, error) {
	t := c.typ.memberType()
	if m, ok := item.(*Model); ok && m != nil {
		if m.typ == t || c.typ == nil || c.typ.Model == nil {
			return m, nil
		}
		return c.rt.construct(t, BatchOf(m.ToJSON()), linkage{collection: c})
	}
	attrs, ok := objectBatch(item)
	if !ok {
		return nil, fmt.Errorf("%s: cannot build a member from %T", c.typ.name(), item)
	}
	return c.rt.construct(t, attrs, linkage{collection: c})
}

// Remove drops the given members and clears their collection link.
func (c *Collection) Remove(models []*Model, opts Options) []*Model {
	return c.remove(models, opts)
}

func (c *Collection) remove(models []*Model, opts Options) []*Model {
	var removed []*Model
	for _, m := range models {
		i := c.IndexOf(m)
		if i < 0 {
			continue
		}
		c.models = slices.Delete(c.models, i, i+1)
		c.release(m)
		removed = append(removed, m)
		if !opts.Silent {
			c.trigger(events.Event{Name: events.Remove, Target: c, Value: m})
		}
	}
	return removed
}

// release clears the member's link to c.
func (c *Collection) release(m *Model) {
	if m.collection.Value() == c {
		m.collection = weak.Pointer[Collection]{}
	}
}

// Reset replaces the members wholesale. Unless silent it emits "reset" on this
// collection and then on every collection nested in its new members.
func (c *Collection) Reset(items []any, opts Options) error {
	previous := c.models
	for _, m := range previous {
		c.release(m)
	}
	c.models = nil
	_, err := c.add(items, Options{Silent: true})
	if !opts.Silent {
		c.trigger(events.Event{Name: events.Reset, Target: c, Value: previous})
		c.propagateReset()
	}
	return err
}

// MarshalJSON encodes the serialized snapshot.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToJSON())
}
