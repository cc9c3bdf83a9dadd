package reconcile

import "fmt"

// BuildPlan matches existing members against the incoming items and returns the
// plan. It does NOT execute actions; use ApplyPlan for that.
func BuildPlan(adapter Adapter, existing []Item, incoming []Item) *ReconcilePlan {
	plan := &ReconcilePlan{
		Summary: PlanSummary{
			Existing: len(existing),
			Incoming: len(incoming),
		},
	}

	keys := indexIncoming(adapter, incoming)
	consumed := make([]bool, len(incoming))

	var (
		updates  []Action
		removals []Action
		skips    []Action
	)

	for i, member := range existing {
		key, ok := adapter.MemberKey(member)
		if !ok {
			skips = append(skips, Action{
				Type:   ActionSkip,
				Index:  i,
				Reason: "member has no identity",
				Member: member,
			})
			continue
		}

		j := findMatch(adapter, key, keys, consumed)
		if j < 0 {
			removals = append(removals, Action{
				Type:   ActionRemove,
				Index:  i,
				Key:    key,
				Reason: fmt.Sprintf("identity %v not in incoming set", key),
				Member: member,
			})
			continue
		}

		consumed[j] = true
		updates = append(updates, Action{
			Type:     ActionUpdate,
			Index:    i,
			Key:      key,
			Reason:   fmt.Sprintf("matched incoming item %d", j),
			Member:   member,
			Incoming: incoming[j],
		})
	}

	var additions []Action
	for j, item := range incoming {
		if consumed[j] {
			continue
		}
		action := Action{
			Type:     ActionAdd,
			Index:    j,
			Reason:   "no existing member with this identity",
			Incoming: item,
		}
		if keys[j].ok {
			action.Key = keys[j].key
		} else {
			action.Reason = "incoming item has no identity"
		}
		additions = append(additions, action)
	}

	plan.Summary.Updates = len(updates)
	plan.Summary.Removals = len(removals)
	plan.Summary.Additions = len(additions)
	plan.Summary.Skipped = len(skips)

	plan.Actions = make([]Action, 0, len(updates)+len(removals)+len(additions)+len(skips))
	plan.Actions = append(plan.Actions, updates...)
	plan.Actions = append(plan.Actions, removals...)
	plan.Actions = append(plan.Actions, additions...)
	plan.Actions = append(plan.Actions, skips...)

	return plan
}

type incomingKey struct {
	key any
	ok  bool
}

// indexIncoming extracts every incoming key once.
func indexIncoming(adapter Adapter, incoming []Item) []incomingKey {
	keys := make([]incomingKey, len(incoming))
	for j, item := range incoming {
		key, ok := adapter.IncomingKey(item)
		keys[j] = incomingKey{key: key, ok: ok}
	}
	return keys
}

// findMatch returns the first unconsumed incoming position whose key equals key,
// or -1. Duplicate incoming keys resolve to the earliest item; a matched item
// leaves the pool, so two members sharing a key never merge the same item.
func findMatch(adapter Adapter, key any, keys []incomingKey, consumed []bool) int {
	for j, k := range keys {
		if consumed[j] {
			continue
		}
		if k.ok && adapter.SameKey(key, k.key) {
			return j
		}
	}
	return -1
}
