// Package model implements schema-aware reactive models whose attributes may hold
// related sub-models and ordered collections of sub-models.
//
// A Model is a mapping of named attributes with change notification. Its Type
// carries a Schema declaring which attributes are relations. When a model is
// bulk-updated with plain data, the package keeps the nested structure
// synchronized instead of overwriting it:
//
//   - a related model receives the incoming fields through its own Set (merge in
//     place, identity preserved);
//   - a related collection is reconciled by identity against the incoming
//     sequence (core/reconcile): matching members are updated, missing ones are
//     removed, new ones are appended;
//   - absent relations are constructed from object-like data on first
//     assignment; scalars never construct relations and never overwrite an
//     established one.
//
// # Notifications
//
// Set emits one "change:<attr>" event per changed attribute in batch order after
// the whole batch is committed, then, at the outermost call only, an aggregate
// "change" event once per wave of changes. Nested merges and reentrant Set calls
// from handlers join the wave instead of producing their own aggregate on the
// parent.
//
// # Back-references
//
// Sub-models and collections stored in relation attributes point back to the
// holding model through weak, non-owning links (Parent). Collection members
// derive their parent from their collection. Links are cleared whenever the
// value leaves its role (unset, replacement, removal from a collection).
//
// # Collaborators
//
// The Runtime injects the logger, equality primitive and metrics recorder; each
// Type may carry a Validator. Models are not safe for concurrent use: a model
// graph belongs to one goroutine.
//
// # Usage
//
//	person := &model.Type{Name: "person"}
//	page := &model.Type{Name: "page"}
//	book := &model.Type{Name: "book", Schema: model.Schema{
//	    "author": model.One(person),
//	    "pages":  model.Many(&model.CollectionType{Name: "pages", Model: page}),
//	}}
//
//	b, _ := model.New(book, nil)
//	_ = b.Set(model.Attrs{"author": map[string]any{"name": "Heber"}}, model.Options{})
//	b.Get("author").(*model.Model).Parent() // == b
package model
