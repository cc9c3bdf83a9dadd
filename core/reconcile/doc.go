// Package reconcile provides a generic, identity-keyed reconciliation engine for
// ordered member lists.
//
// Given the members a container currently holds and an incoming sequence of raw
// items, the engine decides which members are updated in place, which are
// removed, and which incoming items are appended as new members. Membership
// identity is preserved: a member that matches an incoming item by key is never
// replaced, only updated.
//
// # Architecture
//
// The reconcile system consists of three parts:
//
// 1. Engine: BuildPlan scans existing members in order, matches each against the
// incoming sequence by key, and produces a ReconcilePlan. It never mutates.
//
// 2. Adapter: container-specific key extraction. Adapters say how to read the
// identity of an existing member and of an incoming raw item, and how to compare
// two keys.
//
// 3. Mutator: container-specific application. ApplyPlan executes updates first,
// then removals, then additions, using batch methods when the mutator offers
// them.
//
// # Matching Rules
//
//   - A member without a key is skipped: never updated, never removed.
//   - The first incoming item (in incoming order) whose key equals the member's
//     key is the match. The matched item is consumed and will not be added.
//   - Members with a key and no match are removed.
//   - Unconsumed incoming items, including items without a key, are added in
//     incoming order.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(adapter, existing, incoming)
//	executed, err := reconcile.ApplyPlan(plan, mutator, reconcile.ReconcileOptions{})
//
// # Creating Adapters
//
// See core/model, where the collection adapter keys members by the model's
// identity attribute and the mutator merges, removes and constructs members.
package reconcile
