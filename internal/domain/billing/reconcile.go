package billing

// Plan is the operation set that brings a persisted item collection in
// line with an edited one. Consumers must execute ToDelete first, then
// ToCreate, then ToUpdate, so transient identity collisions cannot occur
// at the store.
type Plan struct {
	ToCreate []LineItem
	ToUpdate []LineItem
	ToDelete []LineItem
}

// Empty reports whether the plan contains no operations at all.
func (p Plan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToUpdate) == 0 && len(p.ToDelete) == 0
}

// Reconcile diffs the edited item set against the original one.
//
// Identity is the sole basis of equality: an edited item without an ID
// is new, an original ID missing from the edited set is deleted, and
// every edited item that carries an ID is proposed for update whether or
// not its fields changed (updates are idempotent and cheap, so no
// field-level dirty tracking is done). Items with equal names but
// distinct IDs are never merged.
//
// The function is pure and deterministic; output preserves input order.
func Reconcile(original, edited []LineItem) Plan {
	kept := make(map[int64]bool, len(edited))
	for _, it := range edited {
		if it.ID != 0 {
			kept[it.ID] = true
		}
	}

	var plan Plan
	for _, it := range original {
		if !kept[it.ID] {
			plan.ToDelete = append(plan.ToDelete, it)
		}
	}
	for _, it := range edited {
		if it.ID == 0 {
			plan.ToCreate = append(plan.ToCreate, it)
		} else {
			plan.ToUpdate = append(plan.ToUpdate, it)
		}
	}
	return plan
}
