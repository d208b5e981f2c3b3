package billing

import (
	"context"
	"fmt"
	"strings"
)

// ItemOp names one item-level store call.
type ItemOp string

const (
	OpCreate ItemOp = "create"
	OpUpdate ItemOp = "update"
	OpDelete ItemOp = "delete"
)

// ItemRef identifies an item in sync results. ID is zero for items that
// were never persisted.
type ItemRef struct {
	ID   int64
	Name string
}

// HeaderPersistError means the transaction header could not be created
// or updated. When it is returned, zero item-level calls were made.
type HeaderPersistError struct {
	Op  string // "create" or "update"
	Err error
}

func (e *HeaderPersistError) Error() string {
	return fmt.Sprintf("persist header (%s): %v", e.Op, e.Err)
}

func (e *HeaderPersistError) Unwrap() error { return e.Err }

// ItemSyncError is one failed item operation with its cause.
type ItemSyncError struct {
	Op   ItemOp
	Item ItemRef
	Err  error
}

func (e *ItemSyncError) Error() string {
	return fmt.Sprintf("%s item %q (id=%d): %v", e.Op, e.Item.Name, e.Item.ID, e.Err)
}

func (e *ItemSyncError) Unwrap() error { return e.Err }

// AppliedOp records one item operation that succeeded before or between
// failures. Together with Failed it lets a caller retry exactly the
// failed subset.
type AppliedOp struct {
	Op   ItemOp
	Item ItemRef
}

// PartialSyncError is returned when the header persisted but one or more
// item operations failed. Applied operations are not rolled back.
type PartialSyncError struct {
	Applied []AppliedOp
	Failed  []*ItemSyncError
}

func (e *PartialSyncError) Error() string {
	msgs := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("item sync incomplete (%d applied, %d failed): %s",
		len(e.Applied), len(e.Failed), strings.Join(msgs, "; "))
}

// Draft is a transaction header plus its full edited item set, as
// submitted by a caller.
type Draft struct {
	Transaction Transaction
	Items       []LineItem
}

// Coordinator drives the two-phase persistence protocol: header first,
// then the reconciled item operations. It holds no mutable state and
// performs no retries; any timeout or cancel policy lives in the ctx the
// caller passes in.
type Coordinator struct {
	store Store
}

func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// Persist validates the draft, creates or updates the header, then
// executes the reconciliation plan against originalItems (the item set
// fetched before editing began; nil for a fresh create).
//
// Item operations run sequentially: deletes, then creates, then updates.
// They are not transactional — on a partial failure the applied subset
// stays applied and a *PartialSyncError reports both sides.
func (c *Coordinator) Persist(ctx context.Context, owner Owner, draft Draft, originalItems []LineItem) (Transaction, error) {
	if err := ValidateTransaction(draft.Transaction); err != nil {
		return Transaction{}, err
	}
	if err := ValidateItems(draft.Items); err != nil {
		return Transaction{}, err
	}

	tx := draft.Transaction
	tx.OwnerID = owner.ID
	totals := TransactionTotals(draft.Items, tx.TaxPercentage, tx.IsTaxed, tx.TransitCharges)
	tx.Subtotal = totals.Subtotal
	tx.Tax = totals.Tax
	tx.GrandTotal = totals.GrandTotal

	if tx.ID == 0 {
		id, err := c.store.CreateTransaction(ctx, owner, tx)
		if err != nil {
			return Transaction{}, &HeaderPersistError{Op: "create", Err: err}
		}
		tx.ID = id
	} else {
		if err := c.store.UpdateTransaction(ctx, owner, tx); err != nil {
			return Transaction{}, &HeaderPersistError{Op: "update", Err: err}
		}
	}

	plan := Reconcile(originalItems, draft.Items)

	var applied []AppliedOp
	var failed []*ItemSyncError

	for _, it := range plan.ToDelete {
		ref := ItemRef{ID: it.ID, Name: it.Name}
		if err := c.store.DeleteItem(ctx, tx.ID, it.ID); err != nil {
			failed = append(failed, &ItemSyncError{Op: OpDelete, Item: ref, Err: err})
			continue
		}
		applied = append(applied, AppliedOp{Op: OpDelete, Item: ref})
	}
	for _, it := range plan.ToCreate {
		it.TransactionID = tx.ID
		it.LineTotal = LineTotal(it.Quantity, it.UnitPrice)
		ref := ItemRef{Name: it.Name}
		id, err := c.store.CreateItem(ctx, tx.ID, it)
		if err != nil {
			failed = append(failed, &ItemSyncError{Op: OpCreate, Item: ref, Err: err})
			continue
		}
		ref.ID = id
		applied = append(applied, AppliedOp{Op: OpCreate, Item: ref})
	}
	for _, it := range plan.ToUpdate {
		it.TransactionID = tx.ID
		it.LineTotal = LineTotal(it.Quantity, it.UnitPrice)
		ref := ItemRef{ID: it.ID, Name: it.Name}
		if err := c.store.UpdateItem(ctx, tx.ID, it); err != nil {
			failed = append(failed, &ItemSyncError{Op: OpUpdate, Item: ref, Err: err})
			continue
		}
		applied = append(applied, AppliedOp{Op: OpUpdate, Item: ref})
	}

	if len(failed) > 0 {
		return tx, &PartialSyncError{Applied: applied, Failed: failed}
	}
	return tx, nil
}

// Delete removes a transaction header; the store cascades the items.
func (c *Coordinator) Delete(ctx context.Context, owner Owner, id int64) error {
	return c.store.DeleteTransaction(ctx, owner, id)
}
