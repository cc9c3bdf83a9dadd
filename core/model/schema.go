package model

import (
	"fmt"
	"sort"
)

// Kind is the relation kind of a schema attribute.
type Kind int

const (
	// KindPlain attributes store whatever they are given.
	KindPlain Kind = iota
	// KindOne attributes hold a related model.
	KindOne
	// KindMany attributes hold a related collection.
	KindMany
	// KindCustom attributes are converted from raw data on every assignment.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindOne:
		return "one"
	case KindMany:
		return "many"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "plain", "list":
		return KindPlain, nil
	case "one", "related":
		return KindOne, nil
	case "many":
		return KindMany, nil
	case "custom":
		return KindCustom, nil
	default:
		return KindPlain, fmt.Errorf("unknown relation kind %q", name)
	}
}

// Converter builds a typed value from raw data, e.g. a time from a string.
type Converter func(raw any) (any, error)

// Relation declares how one attribute is resolved.
type Relation struct {
	Kind       Kind
	Model      *Type
	Collection *CollectionType
	Convert    Converter
}

// Plain declares a plain attribute.
func Plain() Relation {
	return Relation{Kind: KindPlain}
}

// One declares a related model of type t.
func One(t *Type) Relation {
	return Relation{Kind: KindOne, Model: t}
}

// Many declares a related collection of type ct.
func Many(ct *CollectionType) Relation {
	return Relation{Kind: KindMany, Collection: ct}
}

// Custom declares an attribute converted by fn.
func Custom(fn Converter) Relation {
	return Relation{Kind: KindCustom, Convert: fn}
}

// hasFactory reports whether the relation can construct anything.
func (r Relation) hasFactory() bool {
	switch r.Kind {
	case KindOne:
		return r.Model != nil
	case KindMany:
		return r.Collection != nil
	case KindCustom:
		return r.Convert != nil
	default:
		return false
	}
}

// related reports whether values of this attribute are tracked sub-entities.
func (r Relation) related() bool {
	return r.Kind == KindOne || r.Kind == KindMany
}

// owns reports whether v is already an instance of the relation's target type.
func (r Relation) owns(v any) bool {
	switch r.Kind {
	case KindOne:
		m, ok := v.(*Model)
		return ok && m != nil && m.typ == r.Model
	case KindMany:
		c, ok := v.(*Collection)
		return ok && c != nil && c.typ == r.Collection
	default:
		return false
	}
}

// Schema maps attribute names to relation declarations.
type Schema map[string]Relation

// Keys returns the declared attribute names, sorted.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Type describes a kind of model.
type Type struct {
	// Name identifies the type in logs and metrics.
	Name string
	// IDAttribute overrides the runtime identity attribute.
	IDAttribute string
	// Schema declares the relation attributes.
	Schema Schema
	// Validator, when set, gates every Set.
	Validator Validator
	// Defaults are applied under the initial attributes on construction.
	Defaults Attrs
	// Initialize runs once after construction.
	Initialize func(m *Model)
}

// anonymousType backs models constructed without a type.
var anonymousType = &Type{}

func (t *Type) idAttribute(rt *Runtime) string {
	if t != nil && t.IDAttribute != "" {
		return t.IDAttribute
	}
	return rt.idAttribute
}

func (t *Type) name() string {
	if t == nil || t.Name == "" {
		return "model"
	}
	return t.Name
}

// CollectionType describes a kind of collection.
type CollectionType struct {
	// Name identifies the collection type in logs and metrics.
	Name string
	// Model is the member type.
	Model *Type
	// Initialize runs once after construction.
	Initialize func(c *Collection)
}

func (ct *CollectionType) name() string {
	if ct == nil || ct.Name == "" {
		return "collection"
	}
	return ct.Name
}

func (ct *CollectionType) memberType() *Type {
	if ct == nil || ct.Model == nil {
		return anonymousType
	}
	return ct.Model
}
