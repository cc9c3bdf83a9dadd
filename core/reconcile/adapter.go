package reconcile

// Adapter defines container-specific key extraction.
type Adapter interface {
	// Name returns the name of the container kind (e.g. the collection type).
	Name() string

	// MemberKey returns the identity of an existing member. ok is false when
	// the member has none, which excludes it from reconciliation.
	MemberKey(member Item) (key any, ok bool)

	// IncomingKey returns the identity carried by an incoming raw item. ok is
	// false when the item has none; such items can only be added.
	IncomingKey(item Item) (key any, ok bool)

	// SameKey compares two keys returned by the methods above.
	SameKey(a, b any) bool
}

// Mutator applies reconcile actions to a container.
type Mutator interface {
	// Update merges the incoming item into the member.
	Update(member, incoming Item) error

	// Remove detaches the member from the container.
	Remove(member Item) error

	// Add appends the incoming item as a new member.
	Add(incoming Item) error
}

// BatchRemover is implemented by mutators that can remove many members at once.
type BatchRemover interface {
	RemoveBatch(members []Item) error
}

// BatchAdder is implemented by mutators that can add many items at once.
type BatchAdder interface {
	AddBatch(items []Item) error
}
