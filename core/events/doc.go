// Package events provides the publish/subscribe bus used by models and
// collections to announce mutations.
//
// The bus is synchronous: Trigger calls every matching handler on the calling
// goroutine before returning, in subscription order. Handlers may subscribe,
// unsubscribe or trigger further events while being invoked; the handler list is
// snapshotted per Trigger call.
//
// # Event Names
//
//   - change:<attr>  one attribute of a model changed
//   - change         aggregate notification, once per wave of changes
//   - add, remove    collection membership changed
//   - reset          collection contents were replaced wholesale
//
// Handlers registered under All receive every event after the specific
// handlers ran.
//
// The bus is not safe for concurrent use; a model graph belongs to one goroutine.
package events
