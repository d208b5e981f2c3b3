package billing

import (
	"reflect"
	"testing"
)

func saved(id int64, name string) LineItem {
	it := item("1", "10")
	it.ID = id
	it.Name = name
	return it
}

func fresh(name string) LineItem {
	it := item("1", "10")
	it.Name = name
	return it
}

func ids(items []LineItem) []int64 {
	var out []int64
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		original   []LineItem
		edited     []LineItem
		wantCreate int
		wantUpdate []int64
		wantDelete []int64
	}{
		{
			name:       "unchanged set still proposes every item for update",
			original:   []LineItem{saved(1, "a"), saved(2, "b")},
			edited:     []LineItem{saved(1, "a"), saved(2, "b")},
			wantUpdate: []int64{1, 2},
		},
		{
			name:       "new items have no identity",
			original:   []LineItem{saved(1, "a")},
			edited:     []LineItem{saved(1, "a"), fresh("b"), fresh("c")},
			wantCreate: 2,
			wantUpdate: []int64{1},
		},
		{
			name:       "missing identities are deleted",
			original:   []LineItem{saved(1, "a"), saved(2, "b"), saved(3, "c")},
			edited:     []LineItem{saved(2, "b")},
			wantUpdate: []int64{2},
			wantDelete: []int64{1, 3},
		},
		{
			name:       "full replacement",
			original:   []LineItem{saved(1, "a")},
			edited:     []LineItem{fresh("a")},
			wantCreate: 1,
			wantDelete: []int64{1},
		},
		{
			name:       "equal names with distinct identities are never merged",
			original:   []LineItem{saved(1, "cable"), saved(2, "cable")},
			edited:     []LineItem{saved(1, "cable"), saved(2, "cable"), fresh("cable")},
			wantCreate: 1,
			wantUpdate: []int64{1, 2},
		},
		{
			name:     "both empty",
			original: nil,
			edited:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Reconcile(tt.original, tt.edited)
			if len(plan.ToCreate) != tt.wantCreate {
				t.Errorf("ToCreate: got %d, want %d", len(plan.ToCreate), tt.wantCreate)
			}
			if got := ids(plan.ToUpdate); !reflect.DeepEqual(got, tt.wantUpdate) {
				t.Errorf("ToUpdate ids: got %v, want %v", got, tt.wantUpdate)
			}
			if got := ids(plan.ToDelete); !reflect.DeepEqual(got, tt.wantDelete) {
				t.Errorf("ToDelete ids: got %v, want %v", got, tt.wantDelete)
			}
		})
	}
}

func TestReconcileDeterministic(t *testing.T) {
	original := []LineItem{saved(1, "a"), saved(2, "b"), saved(3, "c")}
	edited := []LineItem{saved(2, "b"), fresh("d"), saved(3, "c2"), fresh("e")}

	first := Reconcile(original, edited)
	second := Reconcile(original, edited)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated diff differs:\n%+v\n%+v", first, second)
	}
}

func TestReconcileConvergedState(t *testing.T) {
	original := []LineItem{saved(1, "a"), saved(2, "b")}
	edited := []LineItem{saved(1, "a"), fresh("c")}
	plan := Reconcile(original, edited)

	// Apply the plan: deletions drop out, creates gain identities.
	var state []LineItem
	state = append(state, plan.ToUpdate...)
	nextID := int64(100)
	for _, it := range plan.ToCreate {
		it.ID = nextID
		nextID++
		state = append(state, it)
	}

	replan := Reconcile(state, state)
	if len(replan.ToCreate) != 0 || len(replan.ToDelete) != 0 {
		t.Errorf("re-diffing a converged state should only yield updates, got %+v", replan)
	}
	if len(replan.ToUpdate) != len(state) {
		t.Errorf("ToUpdate: got %d, want %d", len(replan.ToUpdate), len(state))
	}
}
