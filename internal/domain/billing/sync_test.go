package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

var errStoreDown = errors.New("store unreachable")

// fakeStore records every call in order and can be told to fail the
// header phase or specific item names.
type fakeStore struct {
	ops []string

	failHeader  bool
	failCreates map[string]bool
	failDeletes map[int64]bool

	nextID int64
	items  map[int64]LineItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, items: map[int64]LineItem{}}
}

func (f *fakeStore) record(format string, args ...any) {
	f.ops = append(f.ops, fmt.Sprintf(format, args...))
}

func (f *fakeStore) CreateTransaction(_ context.Context, _ Owner, _ Transaction) (int64, error) {
	f.record("header.create")
	if f.failHeader {
		return 0, errStoreDown
	}
	id := f.nextID
	f.nextID++
	return id, nil
}

func (f *fakeStore) UpdateTransaction(_ context.Context, _ Owner, _ Transaction) error {
	f.record("header.update")
	if f.failHeader {
		return errStoreDown
	}
	return nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, _ Owner, id int64) error {
	f.record("header.delete %d", id)
	return nil
}

func (f *fakeStore) GetTransaction(_ context.Context, _ Owner, id int64) (Transaction, error) {
	return Transaction{ID: id}, nil
}

func (f *fakeStore) ListTransactions(_ context.Context, _ Owner) ([]Transaction, error) {
	return nil, nil
}

func (f *fakeStore) CreateItem(_ context.Context, _ int64, it LineItem) (int64, error) {
	f.record("item.create %s", it.Name)
	if f.failCreates[it.Name] {
		return 0, errStoreDown
	}
	id := f.nextID
	f.nextID++
	it.ID = id
	f.items[id] = it
	return id, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, _ int64, it LineItem) error {
	f.record("item.update %d", it.ID)
	f.items[it.ID] = it
	return nil
}

func (f *fakeStore) DeleteItem(_ context.Context, _ int64, itemID int64) error {
	f.record("item.delete %d", itemID)
	if f.failDeletes[itemID] {
		return errStoreDown
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeStore) ListItems(_ context.Context, _ int64) ([]LineItem, error) {
	return nil, nil
}

func (f *fakeStore) itemCalls() int {
	n := 0
	for _, op := range f.ops {
		if len(op) > 5 && op[:5] == "item." {
			n++
		}
	}
	return n
}

func draft(txID int64, items ...LineItem) Draft {
	return Draft{
		Transaction: Transaction{ID: txID, ClientID: 7, TaxPercentage: dec("10"), TransitCharges: dec("10")},
		Items:       items,
	}
}

func TestPersistHeaderFailureAbortsBeforeItems(t *testing.T) {
	store := newFakeStore()
	store.failHeader = true
	c := NewCoordinator(store)

	_, err := c.Persist(context.Background(), Owner{ID: 1}, draft(0, fresh("a"), fresh("b")), nil)

	var hpe *HeaderPersistError
	if !errors.As(err, &hpe) {
		t.Fatalf("want HeaderPersistError, got %v", err)
	}
	if hpe.Op != "create" {
		t.Errorf("Op = %q, want create", hpe.Op)
	}
	if !errors.Is(err, errStoreDown) {
		t.Error("cause should be preserved through Unwrap")
	}
	if n := store.itemCalls(); n != 0 {
		t.Errorf("item calls after header failure: got %d, want 0", n)
	}
}

func TestPersistValidationPrecedesStoreCalls(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"bad quantity", draft(0, item("0", "10")), ErrQuantityTooSmall},
		{"missing name", draft(0, LineItem{Unit: "pcs", Quantity: dec("1")}), ErrNameRequired},
		{"missing unit", draft(0, LineItem{Name: "a", Quantity: dec("1")}), ErrUnitRequired},
		{"negative price", draft(0, item("1", "-10")), ErrNegativeUnitPrice},
		{
			"paid quotation",
			Draft{Transaction: Transaction{ClientID: 7, IsQuotation: true, IsPaid: true}},
			ErrQuotationPaid,
		},
		{
			"tax percentage out of range",
			Draft{Transaction: Transaction{ClientID: 7, TaxPercentage: dec("120")}},
			ErrTaxOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			c := NewCoordinator(store)
			_, err := c.Persist(context.Background(), Owner{ID: 1}, tt.draft, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("want ValidationError, got %T", err)
			}
			if len(store.ops) != 0 {
				t.Errorf("store calls before validation passed: %v", store.ops)
			}
		})
	}
}

func TestPersistPartialCreateFailure(t *testing.T) {
	store := newFakeStore()
	store.failCreates = map[string]bool{"b": true}
	c := NewCoordinator(store)

	_, err := c.Persist(context.Background(), Owner{ID: 1},
		draft(0, fresh("a"), fresh("b"), fresh("c")), nil)

	var pse *PartialSyncError
	if !errors.As(err, &pse) {
		t.Fatalf("want PartialSyncError, got %v", err)
	}
	if len(pse.Failed) != 1 {
		t.Fatalf("Failed: got %d, want 1", len(pse.Failed))
	}
	if pse.Failed[0].Op != OpCreate || pse.Failed[0].Item.Name != "b" {
		t.Errorf("unexpected failed op: %+v", pse.Failed[0])
	}
	if len(pse.Applied) != 2 {
		t.Errorf("Applied: got %d, want 2", len(pse.Applied))
	}
}

func TestPersistOrdersDeletesBeforeCreatesBeforeUpdates(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store)

	original := []LineItem{saved(10, "old"), saved(11, "kept")}
	edited := []LineItem{saved(11, "kept"), fresh("new")}
	_, err := c.Persist(context.Background(), Owner{ID: 1}, draft(5, edited...), original)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"header.update", "item.delete 10", "item.create new", "item.update 11"}
	if len(store.ops) != len(want) {
		t.Fatalf("ops: got %v, want %v", store.ops, want)
	}
	for i := range want {
		if store.ops[i] != want[i] {
			t.Errorf("op %d: got %q, want %q", i, store.ops[i], want[i])
		}
	}
}

func TestPersistComputesTotalsLocally(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store)

	d := draft(0, item("2", "100"), item("1", "50"))
	// Totals from the wire are never trusted.
	d.Transaction.Subtotal = dec("999")
	d.Transaction.GrandTotal = dec("999")

	tx, err := c.Persist(context.Background(), Owner{ID: 1}, d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !tx.Subtotal.Equal(dec("250")) || !tx.Tax.Equal(dec("25")) || !tx.GrandTotal.Equal(dec("285")) {
		t.Errorf("totals = %s / %s / %s, want 250 / 25 / 285", tx.Subtotal, tx.Tax, tx.GrandTotal)
	}
	if tx.ID == 0 {
		t.Error("assigned identity should be carried back on the result")
	}
	for _, it := range store.items {
		if !it.LineTotal.Equal(LineTotal(it.Quantity, it.UnitPrice)) {
			t.Errorf("persisted line total not recomputed: %+v", it)
		}
	}
}

func TestPersistNoRetries(t *testing.T) {
	store := newFakeStore()
	store.failDeletes = map[int64]bool{10: true}
	c := NewCoordinator(store)

	_, err := c.Persist(context.Background(), Owner{ID: 1}, draft(5), []LineItem{saved(10, "gone")})

	var pse *PartialSyncError
	if !errors.As(err, &pse) {
		t.Fatalf("want PartialSyncError, got %v", err)
	}
	deletes := 0
	for _, op := range store.ops {
		if op == "item.delete 10" {
			deletes++
		}
	}
	if deletes != 1 {
		t.Errorf("delete attempted %d times, want exactly 1 (no retries)", deletes)
	}
}
