package reconcile

// Item is an existing member or an incoming raw item. Adapters define the
// concrete types.
type Item any

// ActionType represents the type of reconcile action.
type ActionType string

const (
	// ActionUpdate merges an incoming item into a matching member.
	ActionUpdate ActionType = "update"
	// ActionRemove removes a member that has no incoming match.
	ActionRemove ActionType = "remove"
	// ActionAdd appends an unmatched incoming item as a new member.
	ActionAdd ActionType = "add"
	// ActionSkip records a member excluded from reconciliation (no key).
	ActionSkip ActionType = "skip"
)

// Action represents a planned mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Index is the position in the existing members for update, remove and
	// skip actions, and in the incoming sequence for add actions.
	Index int `json:"index"`

	// Key is the identity the decision was based on, if any.
	Key any `json:"key,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Member is the existing member. Nil for add actions.
	Member Item `json:"-"`

	// Incoming is the incoming item. Nil for remove and skip actions.
	Incoming Item `json:"-"`
}

// ReconcilePlan contains the planned actions in execution order.
type ReconcilePlan struct {
	// Actions lists updates, then removals, then additions, then skips.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// Existing is the number of members before reconciliation.
	Existing int `json:"existing"`

	// Incoming is the number of incoming items.
	Incoming int `json:"incoming"`

	// Updates counts members merged in place.
	Updates int `json:"updates"`

	// Removals counts members to remove.
	Removals int `json:"removals"`

	// Additions counts incoming items appended as new members.
	Additions int `json:"additions"`

	// Skipped counts members without a key.
	Skipped int `json:"skipped"`
}

// Changes reports whether applying the plan touches anything.
func (s PlanSummary) Changes() bool {
	return s.Updates+s.Removals+s.Additions > 0
}

// ReconcileOptions controls plan execution.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
