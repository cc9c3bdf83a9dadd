package model

import (
	"nested-models/core/reconcile"

	"go.uber.org/zap"
)

// memberAdapter exposes a collection to the reconcile engine.
type memberAdapter struct {
	c *Collection
}

func (a memberAdapter) Name() string {
	return a.c.typ.name()
}

func (a memberAdapter) MemberKey(member reconcile.Item) (any, bool) {
	id := member.(*Model).ID()
	return id, !isAbsent(id)
}

func (a memberAdapter) IncomingKey(item reconcile.Item) (any, bool) {
	id := incomingID(item, a.c.typ.memberType().idAttribute(a.c.rt))
	return id, !isAbsent(id)
}

func (a memberAdapter) SameKey(x, y any) bool {
	return sameIdentity(x, y)
}

// memberMutator applies reconcile actions to a collection and records whether
// anything changed.
type memberMutator struct {
	c       *Collection
	opts    Options
	changed bool
}

func (mu *memberMutator) Update(member, incoming reconcile.Item) error {
	m := member.(*Model)
	var attrs *Batch
	if in, ok := incoming.(*Model); ok {
		if in == m {
			return nil
		}
		attrs = BatchOf(in.ToJSON())
	} else {
		b, ok := objectBatch(incoming)
		if !ok {
			return nil
		}
		attrs = b
	}
	changed, err := m.apply(attrs, mu.opts)
	if err != nil {
		mu.c.log.Debug("member update rejected", zap.Any("id", m.ID()), zap.Error(err))
		return nil
	}
	mu.changed = mu.changed || changed
	return nil
}

func (mu *memberMutator) Remove(member reconcile.Item) error {
	return mu.RemoveBatch([]reconcile.Item{member})
}

func (mu *memberMutator) RemoveBatch(members []reconcile.Item) error {
	models := make([]*Model, len(members))
	for i, item := range members {
		models[i] = item.(*Model)
	}
	if len(mu.c.remove(models, mu.opts)) > 0 {
		mu.changed = true
	}
	return nil
}

func (mu *memberMutator) Add(incoming reconcile.Item) error {
	return mu.AddBatch([]reconcile.Item{incoming})
}

func (mu *memberMutator) AddBatch(items []reconcile.Item) error {
	raw := make([]any, len(items))
	for i, item := range items {
		raw[i] = item
	}
	added, err := mu.c.add(raw, mu.opts)
	if err != nil {
		mu.c.log.Debug("skipped invalid members", zap.Error(err))
	}
	if len(added) > 0 {
		mu.changed = true
	}
	return nil
}

// Reconcile synchronizes the members with items by identity: matching members
// are merged in place, members without a match are removed and unmatched items
// are appended. Members without identity are left alone.
func (c *Collection) Reconcile(items []any, opts Options) reconcile.PlanSummary {
	summary, _ := c.reconcile(items, opts)
	return summary
}

func (c *Collection) reconcile(items []any, opts Options) (reconcile.PlanSummary, bool) {
	plan := c.Plan(items)
	mu := &memberMutator{c: c, opts: opts}
	if _, err := reconcile.ApplyPlan(plan, mu, reconcile.ReconcileOptions{}); err != nil {
		c.log.Warn("reconcile aborted", zap.Error(err))
	}

	c.rt.metrics.ObserveReconcile(string(reconcile.ActionUpdate), plan.Summary.Updates)
	c.rt.metrics.ObserveReconcile(string(reconcile.ActionRemove), plan.Summary.Removals)
	c.rt.metrics.ObserveReconcile(string(reconcile.ActionAdd), plan.Summary.Additions)
	c.log.Debug("reconciled",
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("removals", plan.Summary.Removals),
		zap.Int("additions", plan.Summary.Additions),
		zap.Int("skipped", plan.Summary.Skipped))
	return plan.Summary, mu.changed
}

// narrow keeps only the members matching obj's identity and merges obj into
// them. Members without identity are left alone; nothing is added.
func (c *Collection) narrow(obj *Batch, opts Options) bool {
	id := incomingID(obj, c.typ.memberType().idAttribute(c.rt))
	changed := false
	var drop []*Model
	for _, m := range c.models {
		mid := m.ID()
		switch {
		case isAbsent(mid):
		case sameIdentity(mid, id):
			ok, err := m.apply(obj, opts)
			if err != nil {
				c.log.Debug("member update rejected", zap.Any("id", mid), zap.Error(err))
			}
			changed = changed || ok
		default:
			drop = append(drop, m)
		}
	}
	if len(c.remove(drop, opts)) > 0 {
		changed = true
	}
	return changed
}

// Plan returns the actions Reconcile would take for items without applying
// them.
func (c *Collection) Plan(items []any) *reconcile.ReconcilePlan {
	existing := make([]reconcile.Item, len(c.models))
	for i, m := range c.models {
		existing[i] = m
	}
	incoming := make([]reconcile.Item, len(items))
	for i, item := range items {
		incoming[i] = item
	}
	return reconcile.BuildPlan(memberAdapter{c: c}, existing, incoming)
}
