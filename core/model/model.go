package model

import (
	"encoding/json"
	"maps"
	"weak"

	"nested-models/core/events"

	"go.uber.org/zap"
)

// Options tune a single Set call.
type Options struct {
	// Unset removes the batch keys instead of assigning them.
	Unset bool
	// Silent suppresses notifications for this call and the nested merges it
	// triggers.
	Silent bool
}

// Model is a reactive attribute container.
type Model struct {
	rt         *Runtime
	typ        *Type
	cid        string
	attributes map[string]any
	bus        events.Bus
	log        *zap.Logger

	parent     weak.Pointer[Model]
	collection weak.Pointer[Collection]

	// tx is the open transaction while a Set is in progress.
	tx *txn
	// last is the most recently completed transaction.
	last *txn

	validationErr error
}

// linkage carries the back-references a model receives before its initial Set.
type linkage struct {
	parent     *Model
	collection *Collection
}

// New constructs a model of type t on the default runtime.
func New(t *Type, attrs Attrs) (*Model, error) {
	return defaultRuntime.New(t, attrs)
}

// New constructs a model of type t. The type's defaults are applied under attrs.
// A validation failure returns nil and the error.
func (rt *Runtime) New(t *Type, attrs Attrs) (*Model, error) {
	return rt.construct(t, BatchOf(attrs), linkage{})
}

// NewFromBatch is New with an ordered initial batch.
func (rt *Runtime) NewFromBatch(t *Type, b *Batch) (*Model, error) {
	return rt.construct(t, b, linkage{})
}

func (rt *Runtime) construct(t *Type, attrs *Batch, link linkage) (*Model, error) {
	if t == nil {
		t = anonymousType
	}
	m := &Model{
		rt:         rt,
		typ:        t,
		cid:        rt.newCID(),
		attributes: make(map[string]any),
	}
	m.log = rt.entityLogger(t.name(), m.cid)
	if link.parent != nil {
		m.parent = weak.Make(link.parent)
	}
	if link.collection != nil {
		m.collection = weak.Make(link.collection)
	}

	initial := NewBatch()
	for _, key := range sortedKeys(t.Defaults) {
		initial.Put(key, t.Defaults[key])
	}
	attrs.Each(func(key string, value any) {
		initial.Put(key, value)
	})
	// nobody can listen yet
	if _, err := m.apply(initial, Options{Silent: true}); err != nil {
		return nil, err
	}
	m.last = nil

	if t.Initialize != nil {
		t.Initialize(m)
	}
	return m, nil
}

// Type returns the model type.
func (m *Model) Type() *Type {
	return m.typ
}

// CID returns the client-side identifier, unique per instance.
func (m *Model) CID() string {
	return m.cid
}

// IDAttribute returns the name of the identity attribute.
func (m *Model) IDAttribute() string {
	return m.typ.idAttribute(m.rt)
}

// ID returns the identity attribute's value, or nil.
func (m *Model) ID() any {
	if m == nil {
		return nil
	}
	return m.attributes[m.IDAttribute()]
}

// Get returns the value of key.
func (m *Model) Get(key string) any {
	return m.attributes[key]
}

// Lookup returns the value of key and whether it is present.
func (m *Model) Lookup(key string) (any, bool) {
	v, ok := m.attributes[key]
	return v, ok
}

// Has reports whether key holds a non-nil value.
func (m *Model) Has(key string) bool {
	return !isAbsent(m.attributes[key])
}

// Attributes returns a shallow copy of the attribute mapping.
func (m *Model) Attributes() Attrs {
	return maps.Clone(m.attributes)
}

// Len returns the number of attributes.
func (m *Model) Len() int {
	return len(m.attributes)
}

// Parent returns the model holding this one, directly through a relation or
// through the collection this model belongs to. The link is weak: it reads nil
// once the parent is no longer referenced elsewhere.
func (m *Model) Parent() *Model {
	if p := m.parent.Value(); p != nil {
		return p
	}
	if c := m.collection.Value(); c != nil {
		return c.Parent()
	}
	return nil
}

// Collection returns the collection this model belongs to, or nil.
func (m *Model) Collection() *Collection {
	return m.collection.Value()
}

// ValidationError returns the error of the last rejected Set, or nil.
func (m *Model) ValidationError() error {
	return m.validationErr
}

// On registers fn for events named name.
func (m *Model) On(name string, fn events.Handler) events.Subscription {
	return m.bus.On(name, fn)
}

// Once registers fn for the next event named name.
func (m *Model) Once(name string, fn events.Handler) events.Subscription {
	return m.bus.Once(name, fn)
}

// Off removes a handler.
func (m *Model) Off(sub events.Subscription) bool {
	return m.bus.Off(sub)
}

// trigger delivers e to the model's handlers, then to its collection.
func (m *Model) trigger(e events.Event) {
	m.rt.metrics.ObserveNotification(e.Name)
	m.bus.Trigger(e)
	if c := m.collection.Value(); c != nil {
		c.bus.Trigger(e)
	}
}

// MarshalJSON encodes the serialized snapshot.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToJSON())
}

func sortedKeys(attrs Attrs) []string {
	return BatchOf(attrs).Keys()
}
