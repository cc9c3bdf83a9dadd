package reconcile

import (
	"fmt"
)

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Updates run first, in member order, then removals, then additions in incoming
// order. Skip actions are informational and never executed.
func ApplyPlan(plan *ReconcilePlan, mutator Mutator, opts ReconcileOptions) (executed int, err error) {
	if plan == nil || opts.DryRun {
		return 0, nil
	}
	if mutator == nil {
		return 0, fmt.Errorf("reconcile: no mutator supplied")
	}

	var (
		updates  []Action
		removals []Item
		adds     []Item
	)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionUpdate:
			updates = append(updates, action)
		case ActionRemove:
			removals = append(removals, action.Member)
		case ActionAdd:
			adds = append(adds, action.Incoming)
		}
	}

	for _, action := range updates {
		if err := mutator.Update(action.Member, action.Incoming); err != nil {
			return executed, fmt.Errorf("failed to update member %v: %w", action.Key, err)
		}
		executed++
	}

	if len(removals) > 0 {
		// Try batch removal first
		if batch, ok := mutator.(BatchRemover); ok {
			if err := batch.RemoveBatch(removals); err != nil {
				return executed, fmt.Errorf("failed to batch remove members: %w", err)
			}
			executed += len(removals)
		} else {
			for _, member := range removals {
				if err := mutator.Remove(member); err != nil {
					return executed, fmt.Errorf("failed to remove member: %w", err)
				}
				executed++
			}
		}
	}

	if len(adds) > 0 {
		if batch, ok := mutator.(BatchAdder); ok {
			if err := batch.AddBatch(adds); err != nil {
				return executed, fmt.Errorf("failed to batch add items: %w", err)
			}
			executed += len(adds)
		} else {
			for _, item := range adds {
				if err := mutator.Add(item); err != nil {
					return executed, fmt.Errorf("failed to add item: %w", err)
				}
				executed++
			}
		}
	}

	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and applies actions.
// It returns the plan, number of actions executed, and any error.
func ReconcileAndApply(adapter Adapter, mutator Mutator, existing, incoming []Item, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan := BuildPlan(adapter, existing, incoming)
	executed, err := ApplyPlan(plan, mutator, opts)
	return plan, executed, err
}
